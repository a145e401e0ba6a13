// File: route/binding.go
// Package route implements RouteHandler (spec §4.8): binding a method and
// either an HTTP or WS callback to a path pattern, and the dispatch pipeline
// that runs middlewares then picks HTTP handling, WS upgrade, or a 404/400
// per spec §4.8's method-mismatch rules.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package route

import (
	"github.com/riftwave/riftwave/httpctx"
	"github.com/riftwave/riftwave/middleware"
	"github.com/riftwave/riftwave/wsconn"
)

// Method is an HTTP verb, or WS for a WebSocket-bound route — spec §3's
// handler-binding method set.
type Method string

const (
	GET     Method = "GET"
	POST    Method = "POST"
	PUT     Method = "PUT"
	DELETE  Method = "DELETE"
	PATCH   Method = "PATCH"
	OPTIONS Method = "OPTIONS"
	HEAD    Method = "HEAD"
	CONNECT Method = "CONNECT"
	TRACE   Method = "TRACE"
	WS      Method = "WS"
)

// HTTPHandler handles a matched HTTP request.
type HTTPHandler func(req *httpctx.Request, res *httpctx.Response)

// WSHandler handles a newly upgraded WebSocket session.
type WSHandler func(c *wsconn.Conn)

// Binding is the tagged record spec §3 calls {method, payload}: exactly one
// of http or ws is set, selected by method.
type Binding struct {
	Method     Method
	HTTP       HTTPHandler
	WS         WSHandler
	Middleware middleware.Chain
	manager    *wsconn.Manager
}
