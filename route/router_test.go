package route

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftwave/riftwave/httpctx"
)

func TestDispatchGETRoot(t *testing.T) {
	rt := New(nil)
	rt.Get("/", func(req *httpctx.Request, res *httpctx.Response) {
		_ = res.Send("Hello World!")
	})

	rec := httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/", nil), true, false)

	require.Equal(t, 200, rec.Code)
	require.Equal(t, "Hello World!", rec.Body.String())
}

func TestDispatchParamCapture(t *testing.T) {
	rt := New(nil)
	var captured string
	rt.Get("/user/:id", func(req *httpctx.Request, res *httpctx.Response) {
		captured = req.Param("id")
		_ = res.Send("ok")
	})

	rec := httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/user/42", nil), true, false)

	require.Equal(t, "42", captured)
	require.Equal(t, 200, rec.Code)
}

func TestDispatchRouteMiss404(t *testing.T) {
	rt := New(nil)
	rt.Get("/", func(req *httpctx.Request, res *httpctx.Response) { _ = res.Send("ok") })

	rec := httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/nope", nil), true, false)

	require.Equal(t, 404, rec.Code)
}

func TestDispatchMethodMismatch404(t *testing.T) {
	rt := New(nil)
	rt.Get("/thing", func(req *httpctx.Request, res *httpctx.Response) { _ = res.Send("ok") })

	raw := httptest.NewRequest(http.MethodGet, "/thing", nil)
	raw.Header.Set("Connection", "upgrade")
	rec := httptest.NewRecorder()
	rt.Dispatch(rec, raw, true, false)

	require.Equal(t, 404, rec.Code)
}

func TestDispatchVerbMismatch404(t *testing.T) {
	rt := New(nil)
	var ran bool
	rt.Post("/users", func(req *httpctx.Request, res *httpctx.Response) {
		ran = true
		_ = res.Send("created")
	})

	rec := httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/users", nil), true, false)

	require.False(t, ran, "a POST-only binding must not answer GET")
	require.Equal(t, 404, rec.Code)

	rec = httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodPut, "/users", nil), true, false)
	require.False(t, ran, "a POST-only binding must not answer PUT")
	require.Equal(t, 404, rec.Code)

	rec = httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodPost, "/users", nil), true, false)
	require.True(t, ran)
	require.Equal(t, 200, rec.Code)
}

func TestDispatchWSOnlyWorkerRejectsHTTP(t *testing.T) {
	rt := New(nil)
	rt.Get("/thing", func(req *httpctx.Request, res *httpctx.Response) { _ = res.Send("ok") })

	rec := httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/thing", nil), true, true)

	require.Equal(t, 400, rec.Code)
}

func TestDispatchHandlerPanicForceCloses500(t *testing.T) {
	rt := New(nil)
	rt.Get("/boom", func(req *httpctx.Request, res *httpctx.Response) {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/boom", nil), true, false)

	require.Equal(t, 500, rec.Code)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	rt := New(nil)
	var ranMW bool
	g := rt.Group("/api")
	g.Use(func(req *httpctx.Request, res *httpctx.Response) bool {
		ranMW = true
		return true
	})
	g.Get("/widgets", func(req *httpctx.Request, res *httpctx.Response) {
		_ = res.Send("widgets")
	})

	rec := httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/api/widgets", nil), true, false)

	require.True(t, ranMW)
	require.Equal(t, "widgets", rec.Body.String())
}

func TestGlobalMiddlewareShortCircuit(t *testing.T) {
	rt := New(nil)
	rt.Use(func(req *httpctx.Request, res *httpctx.Response) bool {
		res.Status(401).Close()
		return false
	})
	handlerRan := false
	rt.Get("/", func(req *httpctx.Request, res *httpctx.Response) {
		handlerRan = true
	})

	rec := httptest.NewRecorder()
	rt.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/", nil), true, false)

	require.False(t, handlerRan)
	require.Equal(t, 401, rec.Code)
}
