package control

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/faultd/faultd/pkg/fault"
	"github.com/faultd/faultd/pkg/logging"
	"github.com/faultd/faultd/pkg/metrics"
)

// Server is the HTTP control surface for a fault catalog.
type Server struct {
	catalog *fault.Catalog
	log     *slog.Logger
	metrics *metrics.Registry
	hub     *Hub

	httpServer *http.Server
	host       string
	port       int
	version    string
	session    string
	startTime  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics sets the metrics registry. Without it the server still works
// but exposes no /metrics endpoint.
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Server) { s.metrics = reg }
}

// WithHost sets the bind host. Empty binds all interfaces.
func WithHost(host string) Option {
	return func(s *Server) { s.host = host }
}

// WithEvents enables the /events WebSocket stream with the given
// per-subscriber buffer.
func WithEvents(buffer int) Option {
	return func(s *Server) { s.hub = NewHub(buffer) }
}

// WithVersion sets the version string reported by /status.
func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

// New creates a control server for the catalog, listening on port.
func New(catalog *fault.Catalog, port int, opts ...Option) *Server {
	s := &Server{
		catalog:   catalog,
		log:       logging.Nop(),
		port:      port,
		session:   uuid.NewString(),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:        net.JoinHostPort(s.host, strconv.Itoa(port)),
		Handler:     s.withMiddleware(mux),
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: a trigger request that hangs the goroutine is
		// expected behavior, not a slow client.
	}

	return s
}

// Handler returns the fully wrapped HTTP handler, for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Session returns the unique id of this daemon run.
func (s *Server) Session() string { return s.session }

// Start begins serving in the background.
func (s *Server) Start() error {
	s.startTime = time.Now()
	s.log.Info("starting control API", "addr", s.httpServer.Addr, "session", s.session)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("control API error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts the server down and closes the event hub.
func (s *Server) Stop() error {
	if s.hub != nil {
		s.hub.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Uptime returns the server uptime in seconds.
func (s *Server) Uptime() int {
	return int(time.Since(s.startTime).Seconds())
}

// Publish records a trigger intent that originated outside the HTTP
// surface (the control file) so /events subscribers still see it.
func (s *Server) Publish(id string, kind fault.Kind, source string) {
	if s.hub != nil {
		s.hub.Publish(Event{ID: id, Kind: kind.String(), Source: source, Time: time.Now()})
	}
}
