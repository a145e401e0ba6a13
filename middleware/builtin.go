// File: middleware/builtin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Built-in middleware specified for parity (spec §4.7): ordinary Func
// values, nothing the request pipeline treats specially. Adapted from the
// teacher's highlevel/server.go LoggingMiddleware/RecoveryMiddleware shape
// (a function wrapping the next handler) to this chain's continue/stop
// style instead of next-handler wrapping.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/riftwave/riftwave/httpctx"
)

// SecurityHeaders sets the fixed header set spec §4.7 lists for parity.
func SecurityHeaders() Func {
	return func(req *httpctx.Request, res *httpctx.Response) bool {
		res.Header("X-XSS-Protection", "1; mode=block")
		res.Header("X-Content-Type-Options", "nosniff")
		res.Header("X-Frame-Options", "SAMEORIGIN")
		res.Header("Referrer-Policy", "same-origin")
		res.Header("Content-Security-Policy", "default-src 'self'")
		return true
	}
}

// CORSConfig configures CORS.
type CORSConfig struct {
	AllowOrigin      string
	AllowMethods     string
	AllowHeaders     string
	AllowCredentials bool
}

// DefaultCORSConfig mirrors spec §8 scenario 3.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}
}

// CORS sets Access-Control-Allow-* headers from cfg and short-circuits
// with 204 on OPTIONS requests.
func CORS(cfg CORSConfig) Func {
	return func(req *httpctx.Request, res *httpctx.Response) bool {
		res.Header("Access-Control-Allow-Origin", cfg.AllowOrigin)
		res.Header("Access-Control-Allow-Methods", cfg.AllowMethods)
		res.Header("Access-Control-Allow-Headers", cfg.AllowHeaders)
		if cfg.AllowCredentials {
			res.Header("Access-Control-Allow-Credentials", "true")
		}
		if req.Method() == http.MethodOptions {
			res.Status(http.StatusNoContent)
			res.Close()
			return false
		}
		return true
	}
}

// RequestID stamps every request with a fresh UUID, echoed back via the
// X-Request-Id header, so the logging middleware and handler logs can be
// correlated for one request.
func RequestID() Func {
	return func(req *httpctx.Request, res *httpctx.Response) bool {
		id := uuid.NewString()
		req.Set("request_id", id)
		res.Header("X-Request-Id", id)
		return true
	}
}

// Logging logs one line per request (method, path, remote address) through
// logf when the stage runs, before the handler; nothing is logged after the
// handler. Adapted from the teacher's LoggingMiddleware (RemoteAddr logging
// around next()).
func Logging(logf func(format string, args ...any)) Func {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return func(req *httpctx.Request, res *httpctx.Response) bool {
		logf("request %s %s from %s", req.Method(), req.Path(), req.Raw().RemoteAddr)
		return true
	}
}

// Recovery is a no-op stage that always continues. Panic recovery for spec
// §7's "Handler exception" policy (force-close with 500) is not done here:
// a middleware Func cannot wrap "the rest of the chain" by itself, so
// route.Router.Dispatch defers the equivalent recover() around the whole
// pipeline. This stage remains for parity with the teacher's
// RecoveryMiddleware and for handlers that want a middleware-shaped hook
// point (e.g. tests asserting it is present in the chain).
func Recovery() Func {
	return func(req *httpctx.Request, res *httpctx.Response) bool {
		return true
	}
}
