// File: server/config.go
// Package server implements the Server/Listener component of spec §4.9:
// bind-time validation, worker spawning for performance mode, a single
// listener for compatibility mode, and TLS wrapping. Modeled on the
// teacher's server/types.go Config+DefaultConfig shape.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package server

import "time"

// Mode selects the worker topology (spec §4.9).
type Mode string

const (
	// Performance splits HTTP and WS across dedicated shared-socket
	// worker pools.
	Performance Mode = "performance"
	// Compatibility runs a single listener serving both HTTP and WS.
	Compatibility Mode = "compatibility"
)

// Config holds every parameter spec §4.9/§6 recognises for the listener.
type Config struct {
	Host string // bind address, default "0.0.0.0"
	Port int    // HTTP listening port, default 8080
	// WSPort is the WebSocket listening port in performance mode. Required
	// when any WS route is registered; must differ from Port.
	WSPort int

	CertificateChain string // TLS chain file path, optional
	PrivateKey       string // TLS key file path; presence switches to TLS
	Password         string // passphrase for PrivateKey, optional
	// ClientCAFile, when non-empty, enables mutual TLS: only clients
	// presenting a certificate signed by this CA bundle are accepted.
	ClientCAFile string

	ServerMode Mode
	// UseWebsocketInMainThread runs the WS worker on the calling
	// goroutine instead of spawning a dedicated one.
	UseWebsocketInMainThread bool

	// StaticRoot, when non-empty, serves unmatched routes from this
	// directory via the static file handler (spec §4.9).
	StaticRoot string

	ShutdownTimeout time.Duration
}

// DefaultConfig returns the spec §6 defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ServerMode:      Compatibility,
		ShutdownTimeout: 10 * time.Second,
	}
}

// TLSEnabled reports whether a private key was configured.
func (c *Config) TLSEnabled() bool { return c.PrivateKey != "" }
