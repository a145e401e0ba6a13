// File: wsconn/transport.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package wsconn

// Transport abstracts the underlying full-duplex byte stream a Conn rides
// on. The production implementation wraps *websocket.Conn from
// github.com/gorilla/websocket; tests use wsconntest.FakeTransport.
type Transport interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}
