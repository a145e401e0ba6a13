package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riftwave/riftwave/httpctx"
	"github.com/riftwave/riftwave/route"
	"github.com/riftwave/riftwave/wsconn"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestListenSamePortError(t *testing.T) {
	rt := route.New(nil)
	cfg := DefaultConfig()
	cfg.ServerMode = Performance
	cfg.Port = 8080
	cfg.WSPort = 8080

	s := New(cfg, rt, nil)
	require.ErrorIs(t, s.Listen(), ErrSamePort)
}

func TestListenWSPortRequiredError(t *testing.T) {
	rt := route.New(nil)
	rt.HandleWS("/chat", func(c *wsconn.Conn) {})
	cfg := DefaultConfig()
	cfg.ServerMode = Performance

	s := New(cfg, rt, nil)
	require.ErrorIs(t, s.Listen(), ErrWSPortRequired)
}

func TestListenOKInCompatibilityModeWithoutWSPort(t *testing.T) {
	rt := route.New(nil)
	rt.HandleWS("/chat", func(c *wsconn.Conn) {})
	cfg := DefaultConfig()
	cfg.ServerMode = Compatibility

	s := New(cfg, rt, nil)
	require.NoError(t, s.Listen())
}

func TestServeCompatibilityServesRequests(t *testing.T) {
	rt := route.New(nil)
	rt.Get("/", func(req *httpctx.Request, res *httpctx.Response) {
		_ = res.Send("Hello World!")
	})

	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = freePort(t)
	s := New(cfg, rt, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	addr := fmt.Sprintf("http://127.0.0.1:%d/", cfg.Port)
	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get(addr)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, "Hello World!", string(body))

	cancel()
	require.NoError(t, <-done)
}
