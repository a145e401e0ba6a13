// File: server/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package server

import "errors"

// ErrSamePort is SamePortError: in performance mode wsPort must differ
// from port (spec §4.9).
var ErrSamePort = errors.New("server: wsPort must differ from port in performance mode")

// ErrWSPortRequired is WSPortRequiredError: performance mode with a
// registered WS route requires an explicit wsPort (spec §4.9).
var ErrWSPortRequired = errors.New("server: wsPort is required in performance mode when WS routes are registered")
