package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// WithRecover wraps an http.Handler and recovers from panics,
// returning HTTP 500 instead of crashing the server.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[recover] %v (%s %s)", rec, r.Method, r.URL.Path)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates post management behind the admin account. Any other
// caller, signed in or not, gets 403 and no mutation happens.
func (h *Handler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := h.currentUser(r)
		if !u.IsAdmin() {
			fields := logrus.Fields{"path": r.URL.Path}
			if u != nil {
				fields["user_id"] = u.ID
			}
			h.log.WithFields(fields).Warn("admin route denied")
			http.Error(w, "You are not authorised to access this route", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// LogRequests emits one structured log line per request.
func (h *Handler) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		entry := h.log.WithFields(logrus.Fields{
			"status_code": sw.status,
			"latency_ms":  time.Since(start).Milliseconds(),
			"method":      r.Method,
			"path":        r.URL.Path,
		})
		switch {
		case sw.status >= 500:
			entry.Error("server error")
		case sw.status >= 400:
			entry.Warn("client error")
		default:
			entry.Info("request handled")
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
