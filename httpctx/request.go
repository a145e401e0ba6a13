// File: httpctx/request.go
// Package httpctx implements the request/response wrappers of spec §4.8 /
// §3's RequestCtx and ResponseCtx: parsing helpers and a response builder
// used by every middleware and handler in the request pipeline.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package httpctx

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/riftwave/riftwave/bodyparse"
)

// Request owns a reference to the underlying *http.Request and the path
// parameters matched against it by the route trie.
type Request struct {
	raw    *http.Request
	params map[string]string

	bodyOnce sync.Once
	bodyVal  any
	bodyOK   bool
	bodyErr  error

	attrsMu sync.RWMutex
	attrs   map[string]any
}

// NewRequest wraps raw with the parameters captured by routetrie.Result.
func NewRequest(raw *http.Request, params map[string]string) *Request {
	return &Request{raw: raw, params: params}
}

// Raw exposes the underlying *http.Request for callers that need it
// directly (e.g. to hand to http.Hijacker for a WS upgrade).
func (r *Request) Raw() *http.Request { return r.raw }

// Method returns the HTTP method as parsed off the wire, unaffected by
// the upgrade-detection override route.Router.Dispatch applies separately.
func (r *Request) Method() string { return r.raw.Method }

// Path returns the request path.
func (r *Request) Path() string { return r.raw.URL.Path }

// Param returns a captured path parameter, e.g. Param("id") for route
// pattern "/user/:id".
func (r *Request) Param(name string) string { return r.params[name] }

// Params returns every captured path parameter.
func (r *Request) Params() map[string]string { return r.params }

// Header returns a request header value.
func (r *Request) Header(name string) string { return r.raw.Header.Get(name) }

// Cookie returns a named cookie, or an error if absent.
func (r *Request) Cookie(name string) (*http.Cookie, error) { return r.raw.Cookie(name) }

// Query returns the parsed query string.
func (r *Request) Query() url.Values { return r.raw.URL.Query() }

// QueryParam returns a single query parameter.
func (r *Request) QueryParam(name string) string { return r.raw.URL.Query().Get(name) }

// ContentType returns the request's declared content type, without any
// parameters (charset, boundary, ...).
func (r *Request) ContentType() string {
	ct := r.raw.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

// IsUpgrade reports whether this request carries "Connection: upgrade",
// case-insensitively — spec §4.8 step 3's effective-method detection.
func (r *Request) IsUpgrade() bool {
	return strings.EqualFold(strings.TrimSpace(r.raw.Header.Get("Connection")), "upgrade")
}

// Set stores a per-request attribute, e.g. a request id a middleware
// assigns for later handlers/loggers to read via Get.
func (r *Request) Set(key string, value any) {
	r.attrsMu.Lock()
	defer r.attrsMu.Unlock()
	if r.attrs == nil {
		r.attrs = make(map[string]any)
	}
	r.attrs[key] = value
}

// Get retrieves a per-request attribute set by Set.
func (r *Request) Get(key string) (any, bool) {
	r.attrsMu.RLock()
	defer r.attrsMu.RUnlock()
	v, ok := r.attrs[key]
	return v, ok
}

// Payload lazily parses and caches the request body per spec §6's
// Content-Type dispatch table. Subsequent calls return the cached result
// without re-reading the body.
func (r *Request) Payload() (any, bool, error) {
	r.bodyOnce.Do(func() {
		r.bodyVal, r.bodyOK, r.bodyErr = bodyparse.Parse(r.raw)
	})
	return r.bodyVal, r.bodyOK, r.bodyErr
}
