package handlers

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 2 * time.Second

// ReadinessCheck reports whether a backing service answers.
type ReadinessCheck func(ctx context.Context) error

// Ping answers "pong" while every check passes and 503 otherwise.
func Ping(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		for _, check := range checks {
			if err := check(ctx); err != nil {
				http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}
