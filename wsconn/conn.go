// File: wsconn/conn.go
// Package wsconn implements a single WebSocket session (spec §4.5) and its
// manager-wide registry with rooms and fan-out (spec §4.6). The two live in
// one package because a Conn holds a non-owning reference back to the
// Manager that owns it — the weak-back-reference design from spec §9,
// expressed in Go as an unexported field rather than a borrow-checked
// pointer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package wsconn

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/riftwave/riftwave/wsnotify"
)

// ID identifies a connection uniquely within the owning process for as
// long as it is live. Spec §6 prefers a monotonic counter over deriving
// the id from the transport's identity hash.
type ID uint64

var idCounter uint64

func nextID() ID {
	return ID(atomic.AddUint64(&idCounter, 1))
}

// envelope is the typed-event wire format, spec §6.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Conn wraps a single WebSocket transport. It exclusively owns the
// transport; the Manager is a shared, non-owning reference.
type Conn struct {
	id        ID
	transport Transport
	manager   *Manager
	notifier  *wsnotify.Notifier

	attrsMu sync.RWMutex
	attrs   map[string]any

	closed int32
}

func newConn(id ID, t Transport, m *Manager) *Conn {
	return &Conn{
		id:        id,
		transport: t,
		manager:   m,
		notifier:  wsnotify.New(),
		attrs:     make(map[string]any),
	}
}

// ID returns the connection's stable, process-unique integer id.
func (c *Conn) ID() ID { return c.id }

// Disposed reports whether Close has already run.
func (c *Conn) Disposed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

// Set stores a user attribute for the lifetime of the connection.
func (c *Conn) Set(key string, value any) {
	c.attrsMu.Lock()
	defer c.attrsMu.Unlock()
	c.attrs[key] = value
}

// Get retrieves a user attribute.
func (c *Conn) Get(key string) (any, bool) {
	c.attrsMu.RLock()
	defer c.attrsMu.RUnlock()
	v, ok := c.attrs[key]
	return v, ok
}

// Send writes a raw frame to this peer.
func (c *Conn) Send(msg []byte) error {
	if c.Disposed() {
		return ErrClosedSocket
	}
	return c.transport.WriteMessage(websocket.TextMessage, msg)
}

// Emit sends a JSON {"type":event,"data":data} frame to this peer.
func (c *Conn) Emit(event string, data any) error {
	if c.Disposed() {
		return ErrClosedSocket
	}
	payload, err := json.Marshal(envelope{Type: event, Data: data})
	if err != nil {
		return err
	}
	return c.transport.WriteMessage(websocket.TextMessage, payload)
}

// Join adds this connection to room via the owning manager.
func (c *Conn) Join(room string) bool {
	return c.manager.join(c, room)
}

// Leave removes this connection from room via the owning manager.
func (c *Conn) Leave(room string) bool {
	return c.manager.leave(c, room)
}

// Broadcast sends msg to every live peer except this one.
func (c *Conn) Broadcast(msg []byte) {
	c.manager.broadcastExcept(c, msg)
}

// BroadcastEvent emits event/data to every live peer except this one.
func (c *Conn) BroadcastEvent(event string, data any) {
	c.manager.broadcastEventExcept(c, event, data)
}

// SendToAll sends msg to every live peer, including this one.
func (c *Conn) SendToAll(msg []byte) {
	c.manager.sendToAll(msg)
}

// EmitToAll emits event/data to every live peer, including this one.
func (c *Conn) EmitToAll(event string, data any) {
	c.manager.emitToAll(event, data)
}

// SendToRoom sends msg to every member of room, this connection included
// when it is a member. The sender does not need to be a member itself.
func (c *Conn) SendToRoom(room string, msg []byte) {
	c.manager.sendToRoom(room, msg)
}

// EmitToRoom emits event/data to every member of room, canonical argument
// order (event, room, payload) per spec §9.
func (c *Conn) EmitToRoom(event, room string, data any) {
	c.manager.emitToRoom(event, room, data)
}

// BroadcastToRoom sends msg to every member of room except this one.
func (c *Conn) BroadcastToRoom(room string, msg []byte) {
	c.manager.broadcastToRoomExcept(c, room, msg)
}

// BroadcastEventToRoom emits event/data to every member of room except
// this one.
func (c *Conn) BroadcastEventToRoom(event, room string, data any) {
	c.manager.broadcastEventToRoomExcept(c, event, room, data)
}

// On subscribes fn to the named typed event.
func (c *Conn) On(event string, fn wsnotify.EventFunc) {
	c.notifier.On(event, fn)
}

// OnMessage subscribes fn to every raw inbound message.
func (c *Conn) OnMessage(fn wsnotify.DataFunc) {
	c.notifier.OnMessage(fn)
}

// OnOpen runs fn immediately: by the time a Conn exists, the transport has
// already completed its upgrade, so there is no separate later "open"
// instant to defer to.
func (c *Conn) OnOpen(fn func(*Conn)) {
	fn(c)
}

// OnClose subscribes fn to fire once, when the connection is closed by
// Close or by the peer. A transport error fires OnError callbacks instead.
func (c *Conn) OnClose(fn wsnotify.CloseFunc) {
	c.notifier.OnClose(fn)
}

// OnError subscribes fn to fire once, on a transport-level error.
func (c *Conn) OnError(fn wsnotify.ErrorFunc) {
	c.notifier.OnError(fn)
}

// Close closes the transport, drops every room membership, and
// deregisters from the manager. Idempotent.
func (c *Conn) Close(args ...any) error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	code, reason := closeArgs(args)
	err := c.transport.Close()
	c.manager.onDisconnect(c)
	c.notifier.Close(code, reason)
	return err
}

func closeArgs(args []any) (int, string) {
	code := websocket.CloseNormalClosure
	reason := ""
	if len(args) > 0 {
		if v, ok := args[0].(int); ok {
			code = v
		}
	}
	if len(args) > 1 {
		if v, ok := args[1].(string); ok {
			reason = v
		}
	}
	return code, reason
}

// dispatch feeds an inbound frame to this connection's notifier. The
// owning accept loop calls this for each message it reads off Transport.
func (c *Conn) dispatch(raw []byte) {
	c.notifier.Dispatch(raw)
}

// fail tears the connection down after a read error. A close frame from
// the peer is reported to the close callbacks with its code and reason;
// any other transport error is reported to the error callbacks.
func (c *Conn) fail(err error) {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		_ = c.Close(ce.Code, ce.Text)
		return
	}
	c.notifier.Error(err)
	_ = c.Close()
}

// Serve runs the connection's blocking read loop: each inbound frame is
// handed to Dispatch, and a read error (including ordinary peer-initiated
// close) tears the connection down via fail. It returns once the loop
// exits. route.Router's WS upgrade path calls it directly on the request's
// goroutine; net/http gives every connection its own goroutine, so a slow
// reader never blocks a worker's other connections (spec §5, "Suspension
// points").
func (c *Conn) Serve() {
	for {
		_, data, err := c.transport.ReadMessage()
		if err != nil {
			c.fail(err)
			return
		}
		c.dispatch(data)
	}
}
