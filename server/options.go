// File: server/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package server

import "time"

// Option customizes a Config at construction, the teacher's functional-
// options shape (server/options.go's ServerOption) generalised to this
// Config.
type Option func(*Config)

// WithHost overrides the bind address.
func WithHost(host string) Option {
	return func(c *Config) { c.Host = host }
}

// WithPort overrides the HTTP listening port.
func WithPort(port int) Option {
	return func(c *Config) { c.Port = port }
}

// WithWSPort sets the dedicated WebSocket port used in performance mode.
func WithWSPort(port int) Option {
	return func(c *Config) { c.WSPort = port }
}

// WithMode selects performance or compatibility mode.
func WithMode(mode Mode) Option {
	return func(c *Config) { c.ServerMode = mode }
}

// WithTLS configures the TLS chain/key/password. Presence of key switches
// the listener to TLS.
func WithTLS(chain, key, password string) Option {
	return func(c *Config) {
		c.CertificateChain = chain
		c.PrivateKey = key
		c.Password = password
	}
}

// WithClientCA enables mutual TLS, verifying client certificates against
// the CA bundle at path.
func WithClientCA(path string) Option {
	return func(c *Config) { c.ClientCAFile = path }
}

// WithWebsocketOnMainThread runs the dedicated WS worker on the calling
// goroutine in performance mode instead of spawning a new one.
func WithWebsocketOnMainThread() Option {
	return func(c *Config) { c.UseWebsocketInMainThread = true }
}

// WithStaticRoot serves unmatched routes from dir.
func WithStaticRoot(dir string) Option {
	return func(c *Config) { c.StaticRoot = dir }
}

// WithShutdownTimeout overrides how long graceful shutdown waits for
// in-flight requests before forcing connections closed.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Config) { c.ShutdownTimeout = d }
}
