// File: httpctx/response.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package httpctx

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

// Response owns the response writer. It is mutable until Close runs;
// Close is idempotent at the design level — only the first call flushes
// and invokes the dispose callback (spec §3).
type Response struct {
	mu        sync.Mutex
	w         http.ResponseWriter
	status    int
	closed    bool
	onClose   func()
	wroteHead bool
}

// NewResponse wraps w. onClose, if non-nil, runs exactly once, the first
// time Close is called.
func NewResponse(w http.ResponseWriter, onClose func()) *Response {
	return &Response{w: w, status: http.StatusOK, onClose: onClose}
}

// Status sets the status code to use on the next write. It must be called
// before any body-writing method.
func (r *Response) Status(code int) *Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = code
	return r
}

// Header sets a response header. It must be called before the headers
// are flushed (i.e. before the first body write).
func (r *Response) Header(key, value string) *Response {
	r.w.Header().Set(key, value)
	return r
}

// Cookie appends a Set-Cookie header.
func (r *Response) Cookie(c *http.Cookie) *Response {
	http.SetCookie(r.w, c)
	return r
}

func (r *Response) writeHead() {
	if !r.wroteHead {
		r.w.WriteHeader(r.status)
		r.wroteHead = true
	}
}

// Send writes body as the response and closes the response.
func (r *Response) Send(body string) error {
	return r.Write([]byte(body))
}

// Write writes raw bytes as the response body and closes the response.
func (r *Response) Write(body []byte) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.writeHead()
	_, err := r.w.Write(body)
	r.mu.Unlock()
	r.Close()
	return err
}

// JSON marshals v and writes it as an application/json response, then
// closes the response.
func (r *Response) JSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.Header("Content-Type", "application/json")
	return r.Write(data)
}

// SendFile streams the file at path as the response body (spec §4.9's
// static-file collaborator uses this directly; handlers may call it too).
// A missing file responds 404 and closes, per spec §7.
func (r *Response) SendFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		r.Status(http.StatusNotFound)
		return r.Send("Not Found")
	}
	defer f.Close()

	if ct := mimeTypeFor(path); ct != "" {
		r.Header("Content-Type", ct)
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.writeHead()
	_, err = io.Copy(r.w, f)
	r.mu.Unlock()
	r.Close()
	return err
}

// mimeTypeFor is the MIME-lookup collaborator spec §2 lists as external;
// callers needing a richer table can layer one in front of SendFile via
// an explicit Header("Content-Type", ...) call before it.
func mimeTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".svg":
		return "image/svg+xml"
	default:
		return ""
	}
}

// Close flushes the response writer if nothing has been written yet and
// runs the dispose callback. Only the first call has any effect.
func (r *Response) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.writeHead()
	cb := r.onClose
	r.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Closed reports whether Close has already run.
func (r *Response) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
