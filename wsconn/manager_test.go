package wsconn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftwave/riftwave/wsconn/wsconntest"
)

func newTestConn(t *testing.T, m *Manager) (*Conn, *wsconntest.FakeTransport) {
	t.Helper()
	tr := wsconntest.NewFakeTransport()
	return m.Accept(tr), tr
}

func TestRoomFanoutSendVsBroadcast(t *testing.T) {
	m := NewManager(nil)
	a, trA := newTestConn(t, m)
	b, trB := newTestConn(t, m)
	_, trC := newTestConn(t, m)

	require.True(t, a.Join("r"))
	require.True(t, b.Join("r"))

	a.SendToRoom("r", []byte("m1"))
	require.Equal(t, [][]byte{[]byte("m1")}, trA.Sent(), "sendToRoom includes the sender")
	require.Equal(t, [][]byte{[]byte("m1")}, trB.Sent())
	require.Empty(t, trC.Sent())

	a.BroadcastToRoom("r", []byte("m2"))
	require.Equal(t, [][]byte{[]byte("m1")}, trA.Sent(), "broadcastToRoom excludes the sender")
	require.Equal(t, [][]byte{[]byte("m1"), []byte("m2")}, trB.Sent())
}

func TestDisconnectDropsRoomMembership(t *testing.T) {
	m := NewManager(nil)
	a, _ := newTestConn(t, m)
	b, trB := newTestConn(t, m)

	require.True(t, a.Join("r"))
	require.True(t, b.Join("r"))

	require.NoError(t, a.Close())

	require.ElementsMatch(t, []*Conn{b}, m.RoomMembers("r"))

	b.SendToRoom("r", []byte("after"))
	require.Equal(t, [][]byte{[]byte("after")}, trB.Sent())
}

func TestCloseIdempotent(t *testing.T) {
	m := NewManager(nil)
	a, _ := newTestConn(t, m)
	require.NoError(t, a.Close())
	require.NoError(t, a.Close(), "second close is a no-op")
}

func TestSendAfterCloseFails(t *testing.T) {
	m := NewManager(nil)
	a, _ := newTestConn(t, m)
	require.NoError(t, a.Close())

	err := a.Send([]byte("x"))
	require.ErrorIs(t, err, ErrClosedSocket)
}

func TestBroadcastExcludesSenderSendToAllIncludes(t *testing.T) {
	m := NewManager(nil)
	a, trA := newTestConn(t, m)
	_, trB := newTestConn(t, m)

	a.Broadcast([]byte("b"))
	require.Empty(t, trA.Sent())
	require.Equal(t, [][]byte{[]byte("b")}, trB.Sent())

	a.SendToAll([]byte("all"))
	require.Equal(t, [][]byte{[]byte("all")}, trA.Sent())
	require.Equal(t, [][]byte{[]byte("b"), []byte("all")}, trB.Sent())
}

func TestByIDLookup(t *testing.T) {
	m := NewManager(nil)
	a, _ := newTestConn(t, m)

	got, ok := m.ByID(a.ID())
	require.True(t, ok)
	require.Same(t, a, got)

	_, ok = m.ByID(ID(999999))
	require.False(t, ok)
}
