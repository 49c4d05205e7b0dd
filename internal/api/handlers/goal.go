package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/behavenet/internal/ebn"
	"github.com/Harshitk-cp/behavenet/internal/service"
	"github.com/go-chi/chi/v5"
)

type GoalHandler struct {
	rt *service.Runtime
}

func NewGoalHandler(rt *service.Runtime) *GoalHandler {
	return &GoalHandler{rt: rt}
}

func (h *GoalHandler) SetImportance(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value == nil || *req.Value < 0 || *req.Value > 1 {
		writeError(w, http.StatusBadRequest, "value must be between 0 and 1")
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.rt.SetImportance(name, *req.Value); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownGoal):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ebn.ErrInboxFull):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to set importance")
		}
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"goal": name, "importance": *req.Value})
}
