//go:build !linux && !darwin

// File: server/reuseport_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SO_REUSEPORT has no equivalent on this platform (the teacher's own
// transport_windows*.go files fall back to a single shared accept loop
// rather than per-worker shared-socket binds for the same reason). Each
// worker still calls listenReusePort(network, address) exactly as it would
// on Linux/Darwin; here the first call binds the real listener and every
// later call for the same address gets back that same *net.Listener,
// which Go's net package already permits accepting from concurrently —
// the workers end up sharing one accept queue instead of one each, but the
// call site and the resulting load distribution across workers are the
// same.
package server

import (
	"net"
	"sync"
)

var (
	sharedMu        sync.Mutex
	sharedListeners = map[string]net.Listener{}
)

func listenReusePort(network, address string) (net.Listener, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	key := network + "|" + address
	if l, ok := sharedListeners[key]; ok {
		return l, nil
	}
	l, err := net.Listen(network, address)
	if err != nil {
		return nil, err
	}
	sharedListeners[key] = l
	return l, nil
}
