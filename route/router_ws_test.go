package route

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/riftwave/riftwave/httpctx"
	"github.com/riftwave/riftwave/wsconn"
)

func TestWSUpgradeEchoesViaManager(t *testing.T) {
	rt := New(nil)
	rt.HandleWS("/chat", func(c *wsconn.Conn) {
		c.OnMessage(func(data []byte) {
			c.Send(append([]byte("echo:"), data...))
		})
	})

	srv := httptest.NewServer(rt)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hi")))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "echo:hi", string(msg))
}

func TestNonWSRouteRejectsUpgrade(t *testing.T) {
	rt := New(nil)
	rt.Get("/plain", func(req *httpctx.Request, res *httpctx.Response) {})

	srv := httptest.NewServer(rt)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/plain"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	if resp != nil {
		require.Equal(t, 404, resp.StatusCode)
	}
}
