// File: server/server.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"sync"

	"github.com/riftwave/riftwave/httpctx"
	"github.com/riftwave/riftwave/internal/obslog"
	"github.com/riftwave/riftwave/route"
	"github.com/riftwave/riftwave/staticfs"
	"github.com/riftwave/riftwave/tlsload"
)

// Server binds a route.Router to a network address per Config, spawning
// the worker topology spec §4.9/§5 describes.
type Server struct {
	cfg    *Config
	router *route.Router
	log    *obslog.Logger

	static *staticfs.Handler

	mu        sync.Mutex
	listeners []net.Listener
	servers   []*http.Server
}

// New builds a Server. log may be nil.
func New(cfg *Config, router *route.Router, log *obslog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = obslog.Disabled()
	}
	s := &Server{cfg: cfg, router: router, log: log}
	if cfg.StaticRoot != "" {
		s.static = staticfs.New(staticfs.Config{Root: cfg.StaticRoot, JailToRoot: true})
	}
	return s
}

// handler builds the http.Handler for a listener playing isWSListener's
// role (spec §4.9): the single compatibility-mode listener passes true
// (it serves both HTTP and WS), while a performance-mode regular HTTP
// worker passes false so WS upgrade attempts reaching it 404 instead of
// being served off the wrong worker.
func (s *Server) handler(isWSListener bool) http.Handler {
	return dispatchHandler{router: s.router, static: s.static, isWSListener: isWSListener}
}

// Listen validates the configuration per spec §4.9's bind-time rules and
// returns the first failure without starting the server.
func (s *Server) Listen() error {
	if s.cfg.ServerMode == Performance {
		if s.cfg.WSPort != 0 && s.cfg.WSPort == s.cfg.Port {
			return ErrSamePort
		}
		if s.router.HasWSRoute() && s.cfg.WSPort == 0 {
			return ErrWSPortRequired
		}
	}
	return nil
}

// tlsConfig loads TLS material if a private key is configured.
func (s *Server) tlsConfig() (*tls.Config, error) {
	cfg, err := tlsload.Load(s.cfg.CertificateChain, s.cfg.PrivateKey, s.cfg.Password, s.cfg.ClientCAFile)
	if errors.Is(err, tlsload.ErrNoPrivateKey) {
		return nil, nil
	}
	return cfg, err
}

// Serve validates configuration, then runs the worker topology until
// ctx is cancelled or a worker fails irrecoverably.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	tlsCfg, err := s.tlsConfig()
	if err != nil {
		return err
	}

	if s.cfg.ServerMode == Compatibility {
		return s.serveCompatibility(ctx, tlsCfg)
	}
	return s.servePerformance(ctx, tlsCfg)
}

func (s *Server) serveCompatibility(ctx context.Context, tlsCfg *tls.Config) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	l, err := listenReusePort("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: bind %s: %w", addr, err)
	}
	if tlsCfg != nil {
		l = tls.NewListener(l, tlsCfg)
	}

	srv := &http.Server{Handler: s.handler(true)}
	s.track(l, srv)
	s.log.Info("listening", "addr", addr, "mode", string(Compatibility))
	return s.runAndWaitForShutdown(ctx, l, srv)
}

// servePerformance implements spec §4.9's worker split: T = floor(numCPU/2)
// regular HTTP workers in total (minus one if WS routes exist, to free a
// worker for the dedicated WS listener; never fewer than one), plus the WS
// worker itself. One of these runs on the calling goroutine: the WS worker
// when UseWebsocketInMainThread is set, otherwise one of the regular
// workers. The rest each get their own goroutine.
func (s *Server) servePerformance(ctx context.Context, tlsCfg *tls.Config) error {
	total := runtime.NumCPU() / 2
	if total < 1 {
		total = 1
	}
	hasWS := s.router.HasWSRoute()
	regular := total
	if hasWS {
		regular = total - 1
		if regular < 1 {
			regular = 1
		}
	}

	httpAddr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var wg sync.WaitGroup
	errCh := make(chan error, regular+1)

	spawnHTTPWorker := func() {
		l, err := listenReusePort("tcp", httpAddr)
		if err != nil {
			errCh <- fmt.Errorf("server: bind %s: %w", httpAddr, err)
			return
		}
		if tlsCfg != nil {
			l = tls.NewListener(l, tlsCfg)
		}
		srv := &http.Server{Handler: s.handler(false)}
		s.track(l, srv)
		errCh <- s.runAndWaitForShutdown(ctx, l, srv)
	}

	var runWS func()
	if hasWS {
		wsAddr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.WSPort)
		runWS = func() {
			l, err := listenReusePort("tcp", wsAddr)
			if err != nil {
				errCh <- fmt.Errorf("server: bind %s: %w", wsAddr, err)
				return
			}
			if tlsCfg != nil {
				l = tls.NewListener(l, tlsCfg)
			}
			srv := &http.Server{Handler: wsOnlyHandler{router: s.router}}
			s.track(l, srv)
			errCh <- s.runAndWaitForShutdown(ctx, l, srv)
		}
	}

	s.log.Info("listening", "addr", httpAddr, "mode", string(Performance), "workers", regular, "ws", hasWS)

	// Exactly one worker — a regular one, unless ws_on_main_thread asks
	// for the WS worker instead — runs in-place so Serve blocks the
	// caller; every other worker (all regular workers otherwise, and the
	// WS worker whenever it isn't in-place) gets its own goroutine.
	inPlaceIsWS := hasWS && s.cfg.UseWebsocketInMainThread

	regularGoroutines := regular
	if !inPlaceIsWS {
		regularGoroutines = regular - 1
	}
	for i := 0; i < regularGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			spawnHTTPWorker()
		}()
	}

	if hasWS && !inPlaceIsWS {
		wg.Add(1)
		go func() { defer wg.Done(); runWS() }()
	}

	if inPlaceIsWS {
		runWS()
	} else {
		spawnHTTPWorker()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}
	return nil
}

func (s *Server) track(l net.Listener, srv *http.Server) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.servers = append(s.servers, srv)
	s.mu.Unlock()
}

func (s *Server) runAndWaitForShutdown(ctx context.Context, l net.Listener, srv *http.Server) error {
	done := make(chan error, 1)
	go func() { done <- srv.Serve(l) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		if err := <-done; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-done:
		return err
	}
}

// wsOnlyHandler implements the dedicated WS worker's ws_only dispatch role
// (spec §4.9): it serves upgrade requests to WS routes, and answers a
// non-upgrade request to an HTTP-bound route with 400. Unmatched paths and
// method mismatches (including a non-upgrade request to a WS route) get
// 404, as on any listener.
type wsOnlyHandler struct {
	router *route.Router
}

func (h wsOnlyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.Dispatch(w, r, true, true)
}

// dispatchHandler wires a listener's worker role (isWSListener) into
// route.Router.Dispatch, falling through to static file serving when the
// router has no match for the request path (spec §4.9). Used by the single
// compatibility-mode listener (isWSListener=true) and performance-mode's
// regular HTTP workers (isWSListener=false).
type dispatchHandler struct {
	router       *route.Router
	static       *staticfs.Handler
	isWSListener bool
}

func (h dispatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.static != nil && !h.router.HasRoute(r.URL.Path) {
		req := httpctx.NewRequest(r, nil)
		res := httpctx.NewResponse(w, nil)
		h.static.Serve(req, res)
		return
	}
	h.router.Dispatch(w, r, h.isWSListener, false)
}
