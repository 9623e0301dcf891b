package router

import (
	"github.com/gorilla/mux"
)

type Controller interface {
	Register(router *mux.Router)
}

func RegisterAll(router *mux.Router, controllers ...Controller) {
	for _, c := range controllers {
		c.Register(router)
	}
}
