// File: wsconn/manager.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package wsconn

import (
	"sync"

	"github.com/riftwave/riftwave/internal/obslog"
	"github.com/riftwave/riftwave/relate"
)

// Manager is the process-local registry of live sockets and rooms for one
// route tree, per spec §4.6. Spec §9: the repo creates one Manager per
// RouteHandler, so WS routes at different paths have disjoint room
// namespaces — preserved here as a design decision, not an accident.
type Manager struct {
	mu      sync.RWMutex
	sockets map[ID]*Conn
	rooms   *relate.Map[*Conn, string]
	log     *obslog.Logger
}

// NewManager builds an empty manager. log may be nil, in which case a
// disabled logger is used.
func NewManager(log *obslog.Logger) *Manager {
	if log == nil {
		log = obslog.Disabled()
	}
	return &Manager{
		sockets: make(map[ID]*Conn),
		rooms:   relate.New[*Conn, string](),
		log:     log,
	}
}

// Accept wraps an upgraded transport in a new Conn and registers it.
func (m *Manager) Accept(t Transport) *Conn {
	c := newConn(nextID(), t, m)
	m.mu.Lock()
	m.sockets[c.id] = c
	m.mu.Unlock()
	return c
}

// onDisconnect removes c from the socket set and drops every room
// membership it held. Idempotent — a repeated call on an already-removed
// connection is a no-op.
func (m *Manager) onDisconnect(c *Conn) {
	m.mu.Lock()
	delete(m.sockets, c.id)
	m.mu.Unlock()
	m.rooms.DropKey(c)
}

// join adds c to room. Returns true iff the membership was newly created.
// If room had zero members beforehand, a "room created" event is logged
// (observability only, per spec §4.6 — it does not change behavior).
func (m *Manager) join(c *Conn, room string) bool {
	hadMembers := m.rooms.HasValue(room)
	added := m.rooms.Relate(c, room)
	if added && !hadMembers {
		m.log.Debug("room created", "room", room)
	}
	return added
}

// leave removes c from room.
func (m *Manager) leave(c *Conn, room string) bool {
	return m.rooms.Unrelate(c, room)
}

// ByID looks up the connection with the given id in the socket map.
func (m *Manager) ByID(id ID) (*Conn, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.sockets[id]
	return c, ok
}

// Count returns the number of currently registered connections.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sockets)
}

// RoomMembers returns a snapshot of the connections currently joined to
// room.
func (m *Manager) RoomMembers(room string) []*Conn {
	return m.rooms.KeysOf(room)
}

func (m *Manager) all() []*Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Conn, 0, len(m.sockets))
	for _, c := range m.sockets {
		out = append(out, c)
	}
	return out
}

// sendToAll writes msg to every live connection, including any sender.
// Per spec §5, a concurrent disconnect mid-fanout is tolerated: a failed
// write to a departed peer is silently dropped.
func (m *Manager) sendToAll(msg []byte) {
	fanout(m.all(), func(c *Conn) error { return c.Send(msg) })
}

func (m *Manager) emitToAll(event string, data any) {
	fanout(m.all(), func(c *Conn) error { return c.Emit(event, data) })
}

func (m *Manager) broadcastExcept(sender *Conn, msg []byte) {
	fanout(except(m.all(), sender), func(c *Conn) error { return c.Send(msg) })
}

func (m *Manager) broadcastEventExcept(sender *Conn, event string, data any) {
	fanout(except(m.all(), sender), func(c *Conn) error { return c.Emit(event, data) })
}

// sendToRoom delivers to every member of room, regardless of whether the
// sender itself belongs to it — spec §4.6's documented, intentional
// simplification over a prior membership-required variant (§9).
func (m *Manager) sendToRoom(room string, msg []byte) {
	fanout(m.RoomMembers(room), func(c *Conn) error { return c.Send(msg) })
}

func (m *Manager) emitToRoom(event, room string, data any) {
	fanout(m.RoomMembers(room), func(c *Conn) error { return c.Emit(event, data) })
}

func (m *Manager) broadcastToRoomExcept(sender *Conn, room string, msg []byte) {
	fanout(except(m.RoomMembers(room), sender), func(c *Conn) error { return c.Send(msg) })
}

func (m *Manager) broadcastEventToRoomExcept(sender *Conn, event, room string, data any) {
	fanout(except(m.RoomMembers(room), sender), func(c *Conn) error { return c.Emit(event, data) })
}

func except(conns []*Conn, sender *Conn) []*Conn {
	out := make([]*Conn, 0, len(conns))
	for _, c := range conns {
		if c != sender {
			out = append(out, c)
		}
	}
	return out
}
