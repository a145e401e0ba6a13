//go:build linux || darwin

// File: server/reuseport_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SO_REUSEPORT-backed shared-socket listener, grounded on the teacher's
// internal/transport/transport_linux.go use of golang.org/x/sys/unix
// socket options — generalised here from a raw zero-copy TCP socket to an
// ordinary net.Listener the standard library's http.Server can serve from,
// so that N workers can each own an accept loop on the same port and let
// the kernel load-balance connections across them (spec §4.9/§5).
package server

import (
	"context"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

func listenReusePort(network, address string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
				if sockErr == nil {
					sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
				}
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}
	return lc.Listen(context.Background(), network, address)
}
