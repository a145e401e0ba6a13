// File: staticfs/staticfs.go
// Package staticfs is the static-file handler collaborator spec §4.9/§6
// lists as external: unmatched routes fall through to it when a static
// root is configured, with directory-listing, follow-symlinks, and
// jail-to-root knobs. Grounded on rivaas-dev-rivaas/router/static.go's
// http.Dir/http.FileServer wiring, extended with the knobs http.FileServer
// itself doesn't expose.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package staticfs

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/riftwave/riftwave/httpctx"
)

// Config controls one Handler's behavior.
type Config struct {
	// Root is the directory files are served from.
	Root string
	// DirectoryListing serves a generated index when a request resolves
	// to a directory; otherwise such requests 404.
	DirectoryListing bool
	// FollowSymlinks serves a requested path that is itself a symlink by
	// resolving it; otherwise any such request 404s. With JailToRoot, a
	// symlink whose target lies outside Root still 404s.
	FollowSymlinks bool
	// JailToRoot rejects any resolved path that escapes Root even absent
	// a symlink (defence against "../" traversal surviving upstream
	// cleaning). Default true in practice; left explicit per spec §6.
	JailToRoot bool
}

// Handler serves files under Config.Root, falling through to 404 on any
// miss or disallowed access.
type Handler struct {
	cfg Config
}

// New builds a Handler for cfg.
func New(cfg Config) *Handler {
	return &Handler{cfg: cfg}
}

// Serve resolves req's path against the configured root and writes the
// file (or a directory listing, or 404) to res. It never returns an
// error: every failure mode is expressed as a response.
func (h *Handler) Serve(req *httpctx.Request, res *httpctx.Response) {
	rel := strings.TrimPrefix(req.Path(), "/")
	full := filepath.Join(h.cfg.Root, filepath.FromSlash(rel))

	if !h.withinRoot(full) {
		res.Status(http.StatusNotFound)
		res.Close()
		return
	}

	info, err := os.Lstat(full)
	if err != nil {
		res.Status(http.StatusNotFound)
		res.Close()
		return
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !h.cfg.FollowSymlinks {
			res.Status(http.StatusNotFound)
			res.Close()
			return
		}
		resolved, err := filepath.EvalSymlinks(full)
		if err != nil || !h.withinRoot(resolved) {
			res.Status(http.StatusNotFound)
			res.Close()
			return
		}
		full = resolved
		if info, err = os.Stat(full); err != nil {
			res.Status(http.StatusNotFound)
			res.Close()
			return
		}
	}

	if info.IsDir() {
		h.serveDir(full, req, res)
		return
	}

	_ = res.SendFile(full)
}

func (h *Handler) serveDir(dir string, req *httpctx.Request, res *httpctx.Response) {
	if index := filepath.Join(dir, "index.html"); fileExists(index) {
		_ = res.SendFile(index)
		return
	}
	if !h.cfg.DirectoryListing {
		res.Status(http.StatusNotFound)
		res.Close()
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		res.Status(http.StatusNotFound)
		res.Close()
		return
	}

	var b strings.Builder
	b.WriteString("<html><body><ul>\n")
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		b.WriteString("<li><a href=\"" + name + "\">" + name + "</a></li>\n")
	}
	b.WriteString("</ul></body></html>\n")

	res.Header("Content-Type", "text/html; charset=utf-8")
	_ = res.Send(b.String())
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// withinRoot reports whether path, once cleaned, lies inside Config.Root —
// the jail-to-root knob. Always enforced when JailToRoot is true; when
// false, only lexical traversal via Join's own cleaning still applies.
func (h *Handler) withinRoot(path string) bool {
	if !h.cfg.JailToRoot {
		return true
	}
	root, err := filepath.Abs(h.cfg.Root)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
