package control

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/faultd/faultd/pkg/fault"
	"github.com/faultd/faultd/pkg/metrics"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime int    `json:"uptime"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Session string `json:"session"`
	PID     int    `json:"pid"`
	Uptime  int    `json:"uptime"`
	Faults  int    `json:"faults"`
}

// TriggerResponse is returned by POST /faults/trigger when the fault
// routine returns, which for most kinds it does not.
type TriggerResponse struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: s.Uptime(),
	})
}

// handleStatus handles GET /status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "ok",
		Version: s.version,
		Session: s.session,
		PID:     os.Getpid(),
		Uptime:  s.Uptime(),
		Faults:  len(s.catalog.Names()),
	})
}

// handleListFaults handles GET /faults: the catalog names, one per line,
// in declaration order.
func (s *Server) handleListFaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	var b strings.Builder
	for _, name := range s.catalog.Names() {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(w, b.String())
}

// handleTrigger handles POST /faults/trigger. The raw body is the trigger
// payload: a fault name with optional surrounding whitespace. The payload
// size is bounded before anything is parsed; an unrecognized name is a
// silent no-op, same as NONE.
func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, fault.MaxTriggerLen+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read_failed", "failed to read trigger payload")
		return
	}
	if len(payload) > fault.MaxTriggerLen {
		if s.metrics != nil {
			s.metrics.RejectedTotal.WithLabelValues(metrics.ReasonTooLarge).Inc()
		}
		s.log.Warn("rejected oversized trigger payload", "source", r.RemoteAddr, "limit", fault.MaxTriggerLen)
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("trigger payload exceeds %d bytes", fault.MaxTriggerLen))
		return
	}

	kind := s.catalog.Parse(string(payload))
	id := uuid.NewString()

	if s.metrics != nil {
		s.metrics.TriggersTotal.WithLabelValues(kind.String()).Inc()
	}
	if kind != fault.KindNone {
		// Intent record first: for most kinds the lines below this block
		// are the last thing this process ever does.
		s.log.Warn("injecting fault", "id", id, "kind", kind, "source", r.RemoteAddr, "session", s.session)
		if s.hub != nil {
			s.hub.Publish(Event{ID: id, Kind: kind.String(), Source: r.RemoteAddr, Time: time.Now()})
		}
	}

	s.catalog.Inject(kind)

	writeJSON(w, http.StatusOK, TriggerResponse{ID: id, Kind: kind.String()})
}
