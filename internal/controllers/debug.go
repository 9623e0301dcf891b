package controllers

import (
	"database/sql"
	"net/http"
	"net/http/pprof"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/staybnb-project/backend/internal/router"
)

var _ router.Controller = (*DebugController)(nil)

type StatsSource interface {
	Stats() sql.DBStats
}

// DebugController exposes pprof and connection pool stats. Only registered
// in debug mode.
type DebugController struct {
	DB StatsSource
}

func (c *DebugController) handleDBStats(w http.ResponseWriter, r *http.Request) {
	stats := c.DB.Stats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"maxOpenConnections": stats.MaxOpenConnections,
		"openConnections":    stats.OpenConnections,
		"inUse":              stats.InUse,
		"idle":               stats.Idle,
		"waitCount":          stats.WaitCount,
		"waitDuration":       stats.WaitDuration.String(),
	})
}

func (c *DebugController) Register(router *mux.Router) {
	zap.L().Warn("enabling /debug endpoints")
	debug := router.PathPrefix("/debug").Subrouter()
	debug.HandleFunc("/pprof/", pprof.Index)
	debug.Handle("/pprof/heap", pprof.Handler("heap"))
	debug.Handle("/pprof/goroutine", pprof.Handler("goroutine"))
	debug.HandleFunc("/pprof/cmdline", pprof.Cmdline)
	debug.HandleFunc("/pprof/profile", pprof.Profile)
	debug.HandleFunc("/pprof/symbol", pprof.Symbol)
	if c.DB != nil {
		debug.HandleFunc("/dbstats", c.handleDBStats).Methods(http.MethodGet)
	}
}
