// File: wsconn/wsconntest/fake_transport.go
// Package wsconntest provides a fake Transport for exercising wsconn and
// higher layers without a real socket. Adapted from the teacher's
// fake/transport.go (its fake implementations of api.Transport), trimmed
// to the read/write/close surface wsconn.Transport actually needs.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package wsconntest

import (
	"errors"
	"sync"
)

// ErrClosed is returned once the fake transport has been closed.
var ErrClosed = errors.New("wsconntest: transport is closed")

// FakeTransport is a fake implementation of wsconn.Transport for testing.
type FakeTransport struct {
	mu     sync.Mutex
	sent   [][]byte
	inbox  [][]byte
	closed bool

	sendErr  error
	recvErr  error
	closeErr error
}

// NewFakeTransport builds an empty fake transport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

// WriteMessage records data as sent.
func (t *FakeTransport) WriteMessage(messageType int, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if t.sendErr != nil {
		return t.sendErr
	}
	cp := append([]byte(nil), data...)
	t.sent = append(t.sent, cp)
	return nil
}

// ReadMessage pops the next queued inbound message. It never blocks: on an
// empty inbox it returns a non-nil error, so tests push data with Feed
// first.
func (t *FakeTransport) ReadMessage() (int, []byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, nil, ErrClosed
	}
	if t.recvErr != nil {
		return 0, nil, t.recvErr
	}
	if len(t.inbox) == 0 {
		return 0, nil, errors.New("wsconntest: no message queued")
	}
	msg := t.inbox[0]
	t.inbox = t.inbox[1:]
	return 1, msg, nil
}

// Close marks the transport closed.
func (t *FakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closeErr != nil {
		return t.closeErr
	}
	t.closed = true
	return nil
}

// Feed queues data to be returned by a future ReadMessage.
func (t *FakeTransport) Feed(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := append([]byte(nil), data...)
	t.inbox = append(t.inbox, cp)
}

// Sent returns a snapshot of every message written via WriteMessage.
func (t *FakeTransport) Sent() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.sent))
	copy(out, t.sent)
	return out
}

// SetSendError makes future WriteMessage calls fail with err.
func (t *FakeTransport) SetSendError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sendErr = err
}

// IsClosed reports whether Close has been called.
func (t *FakeTransport) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
