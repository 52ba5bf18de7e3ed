package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/wealthpath/expenses/internal/logger"
)

// RequestLogger copies chi's request ID into the logging context.
// It must run after middleware.RequestID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logger.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
