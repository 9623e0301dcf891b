package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/staybnb-project/backend/internal/router"
)

var _ router.Controller = (*HealthController)(nil)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	DB Pinger
}

func (c *HealthController) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if c.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := c.DB.PingContext(ctx); err != nil {
			zap.L().Warn("database ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintln(w, "database unavailable")
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (c *HealthController) Register(router *mux.Router) {
	router.HandleFunc("/healthz", c.handleHealthz).
		Methods(http.MethodGet)
}
