package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/staybnb-project/backend/internal/catalog"
	"github.com/staybnb-project/backend/internal/router"
)

var _ router.Controller = (*CatalogController)(nil)

type CatalogController struct {
}

func (c *CatalogController) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Current())
}

func (c *CatalogController) Register(router *mux.Router) {
	router.HandleFunc("/api/catalog", c.handleCatalog).
		Methods(http.MethodGet)
}
