package controllers

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/staybnb-project/backend/internal/cctx"
	"github.com/staybnb-project/backend/internal/listing"
	"github.com/staybnb-project/backend/internal/router"
)

var _ router.Controller = (*RoomController)(nil)

const maxRoomBodyBytes = 1 << 20

type RoomController struct {
	Service *listing.Service
}

func (c *RoomController) handleGet(w http.ResponseWriter, r *http.Request) {
	req, err := c.Service.ParseReadRequest(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := c.Service.Get(r.Context(), callerOf(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (c *RoomController) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller := callerOf(r)
	if !caller.Authenticated() {
		writeError(w, r, listing.ErrUnauthorized)
		return
	}

	input, _, err := c.decode(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	room, err := c.Service.Create(r.Context(), caller, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (c *RoomController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller := callerOf(r)
	if !caller.Authenticated() {
		writeError(w, r, listing.ErrUnauthorized)
		return
	}

	id := r.URL.Query().Get("id")
	if _, err := listing.ParseRoomID(id); err != nil {
		writeError(w, r, err)
		return
	}

	input, present, err := c.decode(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	room, err := c.Service.Update(r.Context(), caller, id, input, present)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (c *RoomController) handleDelete(w http.ResponseWriter, r *http.Request) {
	room, err := c.Service.Delete(r.Context(), callerOf(r), r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (c *RoomController) decode(w http.ResponseWriter, r *http.Request) (input listing.RoomInput, present []string, err error) {
	input, present, err = listing.DecodeRoomInput(http.MaxBytesReader(w, r.Body, maxRoomBodyBytes))
	if err != nil {
		return
	}

	if ce := zap.L().Check(zapcore.DebugLevel, "decoded room payload"); ce != nil {
		ce.Write(
			zap.String("request_id", cctx.RequestIDOf(r.Context())),
			zap.Strings("keys", present),
			zap.String("dump", spew.Sdump(input)),
		)
	}
	return
}

func (c *RoomController) Register(router *mux.Router) {
	router.HandleFunc("/api/rooms", c.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/api/rooms", c.handleCreate).Methods(http.MethodPost)
	router.HandleFunc("/api/rooms", c.handleUpdate).Methods(http.MethodPatch)
	router.HandleFunc("/api/rooms", c.handleDelete).Methods(http.MethodDelete)
}

func callerOf(r *http.Request) listing.Caller {
	uid, _ := cctx.CallerID(r.Context())
	return listing.Caller{UserID: uid}
}
