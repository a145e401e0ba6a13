// File: route/dispatch.go
// Dispatch implements spec §4.8's per-request pipeline end to end: match,
// run middlewares, detect the effective method (HTTP vs WS-via-upgrade),
// enforce the method-mismatch and ws_only rules, and either invoke the HTTP
// callback or perform the WebSocket upgrade and invoke the WS callback.
//
// is_ws_listener and ws_only are worker-role flags (spec §4.9), not route
// properties: in compatibility mode a single listener dispatches with
// is_ws_listener=true, ws_only=false; in performance mode regular HTTP
// workers dispatch with both false, and the dedicated WS worker dispatches
// with is_ws_listener=true, ws_only=true (spec §4.9: "this worker handles
// only requests whose method is WS and responds 400 to other requests").
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package route

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/riftwave/riftwave/httpctx"
	"github.com/riftwave/riftwave/internal/obslog"
	"github.com/riftwave/riftwave/wsconn"
)

// upgrader is shared across every WS binding. Its CheckOrigin accepts
// every origin (gorilla/websocket's default would reject cross-origin
// upgrades); CORS, if wanted ahead of the upgrade, runs as ordinary HTTP
// middleware on the route.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ServeHTTP implements http.Handler in compatibility-mode terms: a single
// listener that is both the WS and the HTTP role.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.Dispatch(w, r, true, false)
}

// Dispatch runs the spec §4.8 pipeline for one request under the given
// worker role.
func (rt *Router) Dispatch(w http.ResponseWriter, r *http.Request, isWSListener, wsOnly bool) {
	binding, result, ok := rt.match(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	req := httpctx.NewRequest(r, result.Params)
	res := httpctx.NewResponse(w, nil)

	defer recoverInto(res, rt.log)

	if !rt.global.Run(req, res) {
		return
	}
	if !binding.Middleware.Run(req, res) {
		return
	}

	effectiveWS := req.IsUpgrade()
	effectiveMethod := Method(req.Method())
	if effectiveWS {
		effectiveMethod = WS
	}

	if binding.Method != effectiveMethod {
		res.Status(http.StatusNotFound)
		res.Close()
		return
	}

	if effectiveWS {
		if !isWSListener {
			res.Status(http.StatusNotFound)
			res.Close()
			return
		}
		rt.serveWS(binding, w, r)
		return
	}

	if wsOnly {
		res.Status(http.StatusBadRequest)
		res.Close()
		return
	}
	binding.HTTP(req, res)
}

func (rt *Router) serveWS(b *Binding, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		rt.log.Warn("ws upgrade failed", "path", r.URL.Path, "err", err)
		return
	}
	wsc := b.manager.Accept(wsconn.NewGorillaTransport(conn))
	b.WS(wsc)
	wsc.Serve()
}

// recoverInto implements spec §7's "Handler exception" fallback: force-
// close the response with 500 if a panic unwound past the handler and
// nothing has been written yet.
func recoverInto(res *httpctx.Response, log *obslog.Logger) {
	if rec := recover(); rec != nil {
		log.Error("handler panic recovered", "recover", rec)
		if !res.Closed() {
			res.Status(http.StatusInternalServerError)
			res.Close()
		}
	}
}
