package router

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/staybnb-project/backend/internal/cctx"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, reusing a well formed incoming one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(cctx.WithValues(r.Context(), cctx.RequestID, rid)))
	})
}
