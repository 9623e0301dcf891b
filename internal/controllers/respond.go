package controllers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/staybnb-project/backend/internal/cctx"
	"github.com/staybnb-project/backend/internal/listing"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Debug("failed to write response", zap.Error(err))
	}
}

// writeError maps err to its status and writes {"error": message}. Internal
// details only go to the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := listing.KindOf(err)
	status := listing.StatusCode(kind)

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", cctx.RequestIDOf(r.Context())),
		zap.Stringer("kind", kind),
		zap.Error(err),
	}
	if kind == listing.Internal {
		zap.L().Error("request failed", fields...)
	} else {
		zap.L().Debug("request rejected", fields...)
	}

	writeJSON(w, status, errorResponse{Error: listing.PublicMessage(err)})
}
