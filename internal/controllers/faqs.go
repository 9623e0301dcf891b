package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/staybnb-project/backend/internal/cctx"
	"github.com/staybnb-project/backend/internal/faq"
	"github.com/staybnb-project/backend/internal/router"
)

var _ router.Controller = (*FaqController)(nil)

type FaqController struct {
	Service *faq.Service
}

func (c *FaqController) handleList(w http.ResponseWriter, r *http.Request) {
	faqs, err := c.Service.List(r.Context())
	if err != nil {
		zap.L().Error("error fetching faqs",
			zap.String("request_id", cctx.RequestIDOf(r.Context())),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch FAQs"})
		return
	}

	writeJSON(w, http.StatusOK, faqs)
}

func (c *FaqController) Register(router *mux.Router) {
	router.HandleFunc("/api/faqs", c.handleList).Methods(http.MethodGet)
}
