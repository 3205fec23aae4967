// Package api provides HTTP handlers and the main API server logic for SwiftAid.
//
// It exposes RESTful endpoints for browsing emergency guidance content,
// running step-guidance sessions with their timers, account management with
// email verification, the AI symptom checker and emergency calling.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nafisahi/swiftaid/internal/auth"
	"github.com/nafisahi/swiftaid/internal/catalog"
	"github.com/nafisahi/swiftaid/internal/connectivity"
	"github.com/nafisahi/swiftaid/internal/guidance"
	"github.com/nafisahi/swiftaid/internal/store"
	"github.com/nafisahi/swiftaid/internal/telephony"
)

// Server configuration constants
const (
	// DefaultAddr is the default listen address for the API server.
	DefaultAddr = ":8080"
	// DefaultRequestTimeout bounds handler work on collaborator calls.
	DefaultRequestTimeout = 30 * time.Second
)

// symptomChecker is the minimal interface over the symptoms client.
type symptomChecker interface {
	Check(ctx context.Context, description string) (string, error)
}

// Opts holds configuration options for the API server.
type Opts struct {
	Addr     string
	Checker  symptomChecker
	Dialer   telephony.Dialer
	Monitor  *connectivity.Monitor
	FlowOpts []auth.FlowOption
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithSymptomChecker sets the symptom checker backing /symptoms/check.
func WithSymptomChecker(c symptomChecker) Option {
	return func(o *Opts) { o.Checker = c }
}

// WithDialer sets the emergency call dialer.
func WithDialer(d telephony.Dialer) Option {
	return func(o *Opts) { o.Dialer = d }
}

// WithConnectivityMonitor sets the connectivity monitor reported by /health.
func WithConnectivityMonitor(m *connectivity.Monitor) Option {
	return func(o *Opts) { o.Monitor = m }
}

// WithVerificationFlowOptions passes options through to the verification
// flow controller.
func WithVerificationFlowOptions(opts ...auth.FlowOption) Option {
	return func(o *Opts) { o.FlowOpts = append(o.FlowOpts, opts...) }
}

// Server wires the catalog, guidance sessions, identity service and
// collaborators behind the HTTP API.
type Server struct {
	addr     string
	catalog  *catalog.Catalog
	sessions *guidance.Manager
	identity auth.Identity
	flow     *auth.FlowController
	st       store.Store
	checker  symptomChecker
	dialer   telephony.Dialer
	monitor  *connectivity.Monitor

	httpServer *http.Server
}

// NewServer creates an API server over the given catalog, identity service
// and store.
func NewServer(cat *catalog.Catalog, identity auth.Identity, st store.Store, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	s := &Server{
		addr:     cfg.Addr,
		catalog:  cat,
		sessions: guidance.NewManager(cat),
		identity: identity,
		flow:     auth.NewFlowController(identity, cfg.FlowOpts...),
		st:       st,
		checker:  cfg.Checker,
		dialer:   cfg.Dialer,
		monitor:  cfg.Monitor,
	}
	return s
}

// Handler builds the route table. Exposed for tests via httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/topics", s.topicsHandler)
	mux.HandleFunc("/topics/steps", s.stepsHandler)
	mux.HandleFunc("/search", s.searchHandler)

	mux.HandleFunc("/sessions", s.sessionsHandler)
	mux.HandleFunc("/sessions/toggle", s.toggleHandler)
	mux.HandleFunc("/sessions/progress", s.progressHandler)
	mux.HandleFunc("/sessions/timer", s.timerHandler)

	mux.HandleFunc("/auth/signup", s.signupHandler)
	mux.HandleFunc("/auth/login", s.loginHandler)
	mux.HandleFunc("/auth/verify", s.verifyHandler)
	mux.HandleFunc("/auth/resend", s.resendHandler)
	mux.HandleFunc("/auth/cancel", s.cancelVerificationHandler)
	mux.HandleFunc("/auth/reset", s.resetHandler)
	mux.HandleFunc("/auth/reauth", s.reauthHandler)
	mux.HandleFunc("/auth/delete", s.deleteAccountHandler)
	mux.HandleFunc("/auth/signout", s.signoutHandler)
	mux.HandleFunc("/auth/session", s.sessionInfoHandler)

	mux.HandleFunc("/symptoms/check", s.symptomCheckHandler)
	mux.HandleFunc("/emergency/call", s.emergencyCallHandler)
	mux.HandleFunc("/emergency/calls", s.callReceiptsHandler)
	mux.HandleFunc("/health", s.healthHandler)

	return mux
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	slog.Info("SwiftAid API running", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("API server stopped with error", "error", err)
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server and closes all guidance sessions so no
// timer goroutine outlives the process.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.CloseAll()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
