// File: wsconn/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package wsconn

import "errors"

// ErrClosedSocket is returned by every outbound operation on a connection
// that has already been disposed. Spec §4.5/§9: "Cannot add events to
// closed Socket" in the source repo; here it is a plain sentinel error so
// callers can recover or log-and-drop instead of unwinding a panic.
var ErrClosedSocket = errors.New("wsconn: cannot operate on closed socket")
