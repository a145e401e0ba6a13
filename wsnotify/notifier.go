// File: wsnotify/notifier.go
// Package wsnotify implements the per-connection WebSocket event dispatcher:
// raw message/close/error callbacks plus JSON typed-event routing.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package wsnotify

import (
	"encoding/json"
	"sync"
)

// DataFunc handles a raw inbound message.
type DataFunc func(data []byte)

// CloseFunc handles a connection close, optionally carrying a code/reason.
type CloseFunc func(code int, reason string)

// ErrorFunc handles a transport-level error.
type ErrorFunc func(err error)

// EventFunc handles a decoded typed event's payload.
type EventFunc func(data json.RawMessage)

// typedEnvelope is the wire shape described in spec §6: exactly the keys
// "type" (string) and "data" (any JSON value).
type typedEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Notifier dispatches events for a single connection. It is safe for
// concurrent use. Once disposed (on close or error) it clears every
// callback list and further registrations are no-ops, per spec §4.4.
type Notifier struct {
	mu       sync.Mutex
	data     []DataFunc
	closers  []CloseFunc
	errors   []ErrorFunc
	typed    map[string][]EventFunc
	disposed bool
}

// New builds an empty notifier.
func New() *Notifier {
	return &Notifier{typed: make(map[string][]EventFunc)}
}

// OnMessage registers fn to receive every raw inbound message.
func (n *Notifier) OnMessage(fn DataFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return
	}
	n.data = append(n.data, fn)
}

// OnClose registers fn to run once, at disposal via Close.
func (n *Notifier) OnClose(fn CloseFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return
	}
	n.closers = append(n.closers, fn)
}

// OnError registers fn to run once, at disposal via Error.
func (n *Notifier) OnError(fn ErrorFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return
	}
	n.errors = append(n.errors, fn)
}

// On registers fn for the named typed event.
func (n *Notifier) On(event string, fn EventFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return
	}
	n.typed[event] = append(n.typed[event], fn)
}

// Dispatch delivers an inbound message: first to every raw data callback
// unchanged, then — if it decodes as {"type":string,"data":any} — to the
// handlers registered for that type. Decode failures are swallowed for
// typed dispatch only; the raw callbacks still fire.
func (n *Notifier) Dispatch(raw []byte) {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return
	}
	dataCbs := append([]DataFunc(nil), n.data...)
	n.mu.Unlock()

	for _, cb := range dataCbs {
		cb(raw)
	}

	var env typedEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Type == "" {
		return
	}

	n.mu.Lock()
	cbs := append([]EventFunc(nil), n.typed[env.Type]...)
	n.mu.Unlock()

	for _, cb := range cbs {
		cb(env.Data)
	}
}

// Close fires every close callback once, then disposes the notifier.
// Subsequent calls are no-ops.
func (n *Notifier) Close(code int, reason string) {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return
	}
	cbs := n.closers
	n.mu.Unlock()

	for _, cb := range cbs {
		cb(code, reason)
	}
	n.dispose()
}

// Error fires every error callback once, then disposes the notifier.
func (n *Notifier) Error(err error) {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return
	}
	cbs := n.errors
	n.mu.Unlock()

	for _, cb := range cbs {
		cb(err)
	}
	n.dispose()
}

func (n *Notifier) dispose() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.disposed = true
	n.data = nil
	n.closers = nil
	n.errors = nil
	n.typed = make(map[string][]EventFunc)
}

// Disposed reports whether the notifier has already fired its lifecycle
// callbacks and cleared its state.
func (n *Notifier) Disposed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.disposed
}
