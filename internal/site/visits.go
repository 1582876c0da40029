package site

import (
	"context"
	"net/http"
	"time"

	"github.com/northwind-labs/sitecms/pkg/debug"
)

const visitTimeout = 2 * time.Second

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// trackVisits counts successfully rendered public pages.
func (s *Site) trackVisits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		if s.cfg.Visits == nil || sw.status != http.StatusOK {
			return
		}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), visitTimeout)
		defer cancel()
		if err := s.cfg.Visits.Record(ctx, r.URL.Path, s.cfg.Now()); err != nil {
			debug.Warning("Failed to record visit to %s: %v", r.URL.Path, err)
		}
	})
}
