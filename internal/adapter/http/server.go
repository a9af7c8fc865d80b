// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"
	"sync"
	"time"

	"weightlog/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	// mu serializes API calls; the entry log expects a single caller.
	mu      sync.Mutex
	entries *app.EntryLogService
	charts  *app.ChartsService
	now     func() time.Time
}

// New creates a Server wired to the given application services.
func New(es *app.EntryLogService, cs *app.ChartsService) *Server {
	return &Server{entries: es, charts: cs, now: time.Now}
}

// WithClock overrides the time used for range filtering.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/status", s.handleStatus)
	api.HandleFunc("/entries", s.handleEntries)
	api.HandleFunc("/entries/{index}", s.handleEntryDelete)
	api.HandleFunc("/settings/{field}", s.handleSettingsField)
	api.HandleFunc("/data", s.handleData)

	api.HandleFunc("/chart", s.handleChart)
	api.HandleFunc("/summary", s.handleSummary)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", s.serialize(api)))

	return s.loggingMiddleware(withNoCache(root))
}

func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}
