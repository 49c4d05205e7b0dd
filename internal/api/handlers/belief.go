package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/behavenet/internal/service"
	"github.com/go-chi/chi/v5"
)

type BeliefHandler struct {
	board *service.BeliefBoard
}

func NewBeliefHandler(board *service.BeliefBoard) *BeliefHandler {
	return &BeliefHandler{board: board}
}

func (h *BeliefHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.All())
}

// Set updates a belief; the network sees the value from its next tick on.
func (h *BeliefHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	s, err := h.board.Set(chi.URLParam(r, "name"), *req.Value)
	if err != nil {
		if errors.Is(err, service.ErrUnknownBelief) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to set belief")
		return
	}
	writeJSON(w, http.StatusOK, s)
}
