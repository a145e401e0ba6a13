// File: route/router.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package route

import (
	"strings"

	"github.com/riftwave/riftwave/internal/obslog"
	"github.com/riftwave/riftwave/middleware"
	"github.com/riftwave/riftwave/routetrie"
	"github.com/riftwave/riftwave/wsconn"
)

// Router owns one RouteTree per worker (spec §5: workers share no heap
// state, so each gets its own Router) and the global middleware chain run
// ahead of every route's own.
type Router struct {
	tree       *routetrie.Tree[*Binding]
	global     middleware.Chain
	hasWSRoute bool
	log        *obslog.Logger
}

// New builds an empty router. log may be nil.
func New(log *obslog.Logger) *Router {
	if log == nil {
		log = obslog.Disabled()
	}
	return &Router{tree: routetrie.NewTree[*Binding](), log: log}
}

// Use appends global middleware, run before any route-local middleware.
func (rt *Router) Use(mw ...middleware.Func) {
	rt.global = rt.global.Append(mw...)
}

// HasWSRoute reports whether any WS route has been registered — spec
// §4.9's WSPortRequiredError check consults this at bind time.
func (rt *Router) HasWSRoute() bool { return rt.hasWSRoute }

// Handle registers an HTTP-bound route.
func (rt *Router) Handle(method Method, pattern string, handler HTTPHandler, mw ...middleware.Func) {
	rt.tree.Register(pattern, &Binding{Method: method, HTTP: handler, Middleware: mw})
}

// Get, Post, Put, Delete, Patch register the corresponding HTTP method.
func (rt *Router) Get(pattern string, h HTTPHandler, mw ...middleware.Func) {
	rt.Handle(GET, pattern, h, mw...)
}
func (rt *Router) Post(pattern string, h HTTPHandler, mw ...middleware.Func) {
	rt.Handle(POST, pattern, h, mw...)
}
func (rt *Router) Put(pattern string, h HTTPHandler, mw ...middleware.Func) {
	rt.Handle(PUT, pattern, h, mw...)
}
func (rt *Router) Delete(pattern string, h HTTPHandler, mw ...middleware.Func) {
	rt.Handle(DELETE, pattern, h, mw...)
}
func (rt *Router) Patch(pattern string, h HTTPHandler, mw ...middleware.Func) {
	rt.Handle(PATCH, pattern, h, mw...)
}
func (rt *Router) Options(pattern string, h HTTPHandler, mw ...middleware.Func) {
	rt.Handle(OPTIONS, pattern, h, mw...)
}

// HandleWS registers a WebSocket-bound route with a dedicated manager
// (spec §9: one SocketManager per RouteHandler).
func (rt *Router) HandleWS(pattern string, handler WSHandler, mw ...middleware.Func) *wsconn.Manager {
	mgr := wsconn.NewManager(rt.log)
	rt.tree.Register(pattern, &Binding{
		Method:     WS,
		WS:         handler,
		Middleware: mw,
		manager:    mgr,
	})
	rt.hasWSRoute = true
	return mgr
}

// match resolves path to its binding and captured parameters.
func (rt *Router) match(path string) (*Binding, routetrie.Result, bool) {
	return rt.tree.Match(path)
}

// HasRoute reports whether path matches a registered route, without
// running its pipeline — used by callers (package server's static-file
// fallback) that need to know before deciding whether to dispatch here or
// elsewhere.
func (rt *Router) HasRoute(path string) bool {
	_, _, ok := rt.match(path)
	return ok
}

// Group returns a route group rooted at prefix (spec §9 supplement, same
// joinPrefix behavior the teacher's highlevel.RouteGroup uses).
func (rt *Router) Group(prefix string) *Group {
	return &Group{router: rt, prefix: prefix}
}

// Group scopes route registration under a path prefix and an additional
// middleware set applied ahead of each route's own.
type Group struct {
	router *Router
	prefix string
	mw     middleware.Chain
}

// Use appends middleware run for every route registered through this group
// (and its sub-groups), ahead of the route's own middleware.
func (g *Group) Use(mw ...middleware.Func) {
	g.mw = g.mw.Append(mw...)
}

// Group returns a nested group whose prefix extends this one's.
func (g *Group) Group(prefix string) *Group {
	return &Group{router: g.router, prefix: g.joinPrefix(prefix), mw: g.mw}
}

func (g *Group) joinPrefix(pattern string) string {
	if g.prefix == "" {
		return pattern
	}
	switch {
	case strings.HasSuffix(g.prefix, "/") && strings.HasPrefix(pattern, "/"):
		return g.prefix + pattern[1:]
	case !strings.HasSuffix(g.prefix, "/") && !strings.HasPrefix(pattern, "/"):
		return g.prefix + "/" + pattern
	default:
		return g.prefix + pattern
	}
}

func (g *Group) Get(pattern string, h HTTPHandler, mw ...middleware.Func) {
	g.router.Handle(GET, g.joinPrefix(pattern), h, g.mw.Append(mw...)...)
}
func (g *Group) Post(pattern string, h HTTPHandler, mw ...middleware.Func) {
	g.router.Handle(POST, g.joinPrefix(pattern), h, g.mw.Append(mw...)...)
}
func (g *Group) Put(pattern string, h HTTPHandler, mw ...middleware.Func) {
	g.router.Handle(PUT, g.joinPrefix(pattern), h, g.mw.Append(mw...)...)
}
func (g *Group) Delete(pattern string, h HTTPHandler, mw ...middleware.Func) {
	g.router.Handle(DELETE, g.joinPrefix(pattern), h, g.mw.Append(mw...)...)
}
func (g *Group) Patch(pattern string, h HTTPHandler, mw ...middleware.Func) {
	g.router.Handle(PATCH, g.joinPrefix(pattern), h, g.mw.Append(mw...)...)
}

// HandleWS registers a WS route under this group's prefix.
func (g *Group) HandleWS(pattern string, handler WSHandler, mw ...middleware.Func) *wsconn.Manager {
	return g.router.HandleWS(g.joinPrefix(pattern), handler, g.mw.Append(mw...)...)
}
