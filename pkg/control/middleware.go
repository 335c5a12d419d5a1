package control

import (
	"net/http"
	"time"
)

// withMiddleware wraps the handler with request logging and security
// headers. Order (outermost first): security headers -> logging -> handler.
func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	logged := s.loggingMiddleware(handler)
	return securityHeadersMiddleware(logged)
}

// securityHeadersMiddleware adds standard hardening headers. The control
// API is plain JSON/text; nothing here should ever render in a browser.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request at debug level. Trigger requests get
// their own dedicated intent record in the handler; this is just traffic
// visibility.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr, "duration", time.Since(start))
	})
}
