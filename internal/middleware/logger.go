package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/kenyagreatparty/kgp-backend/internal/services/actors"
)

// LoggerMiddleware returns a handler that logs requests using your zerolog instance
func (m *Middleware) LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		var actorID string
		if actor, ok := actors.FromContext(r.Context()); ok {
			actorID = actor.ID.String()
		}

		m.Logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("ip", r.RemoteAddr).
			Str("actor_id", actorID).
			Msg("incoming_request")
	})
}
