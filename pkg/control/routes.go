// Route registration for the control API.

package control

import (
	"net/http"
)

// registerRoutes sets up all API routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)

	// The catalog: list on read, trigger on write.
	mux.HandleFunc("GET /faults", s.handleListFaults)
	mux.HandleFunc("POST /faults/trigger", s.handleTrigger)

	if s.hub != nil {
		mux.HandleFunc("GET /events", s.handleEvents)
	}
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
}
