// File: wsconn/gorilla_transport.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Real-transport binding. Grounded on the attested gorilla/websocket usage
// across the retrieval pack (other_examples/*websocket*.go); the teacher
// repo's own bespoke DPDK/io_uring frame codec was the one module SPEC_FULL
// deliberately did not bind a component to (see DESIGN.md).
package wsconn

import "github.com/gorilla/websocket"

// GorillaTransport adapts *websocket.Conn to the Transport interface.
type GorillaTransport struct {
	conn *websocket.Conn
}

// NewGorillaTransport wraps an already-upgraded gorilla websocket
// connection.
func NewGorillaTransport(conn *websocket.Conn) *GorillaTransport {
	return &GorillaTransport{conn: conn}
}

// ReadMessage implements Transport.
func (t *GorillaTransport) ReadMessage() (int, []byte, error) {
	return t.conn.ReadMessage()
}

// WriteMessage implements Transport.
func (t *GorillaTransport) WriteMessage(messageType int, data []byte) error {
	return t.conn.WriteMessage(messageType, data)
}

// Close implements Transport.
func (t *GorillaTransport) Close() error {
	return t.conn.Close()
}
