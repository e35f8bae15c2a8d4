// Package httpapi exposes the simulator over HTTP.
//
// The API serves the current complex as JSON, regenerates it on demand,
// streams architecture-change events over SSE, and manages stored
// snapshots. It is a thin presentation layer: all semantics live in
// topology, metric, watch, and store.
//
// Routes:
//
//	GET    /api/v1/complex          current complex
//	POST   /api/v1/complex          regenerate {"architecture": "...", "elements": n}
//	GET    /api/v1/architectures    labels with Φ values and bands
//	GET    /api/v1/events           SSE stream of complex changes
//	GET    /api/v1/snapshots        list stored snapshots
//	POST   /api/v1/snapshots        save current complex {"name": "..."}
//	GET    /api/v1/snapshots/{name} fetch one snapshot
//	DELETE /api/v1/snapshots/{name} delete one snapshot
package httpapi

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mwessel/phigrid/pkg/config"
	"github.com/mwessel/phigrid/pkg/store"
	"github.com/mwessel/phigrid/pkg/watch"
)

// Server wires the simulator core to an HTTP mux.
type Server struct {
	cfg    config.Config
	holder *watch.Holder
	snaps  store.Store // nil disables snapshot routes
	logger *log.Logger
}

// New creates a server around an existing holder.
// The store may be nil, in which case snapshot routes return 404.
func New(cfg config.Config, holder *watch.Holder, snaps store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, holder: holder, snaps: snaps, logger: logger}
}

// Handler builds the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/complex", s.handleGetComplex)
		r.Post("/complex", s.handleGenerate)
		r.Get("/architectures", s.handleArchitectures)
		r.Get("/events", s.handleEvents)

		if s.snaps != nil {
			r.Get("/snapshots", s.handleListSnapshots)
			r.Post("/snapshots", s.handleSaveSnapshot)
			r.Get("/snapshots/{name}", s.handleGetSnapshot)
			r.Delete("/snapshots/{name}", s.handleDeleteSnapshot)
		}
	})

	return r
}

// requestLogger logs method, path, status, and duration for each request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

// Flush forwards to the underlying writer so SSE streaming works through
// the logging wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
