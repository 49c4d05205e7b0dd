package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/behavenet/internal/service"
	"go.uber.org/zap"
)

type NetworkHandler struct {
	rt     *service.Runtime
	logger *zap.Logger
}

func NewNetworkHandler(rt *service.Runtime, logger *zap.Logger) *NetworkHandler {
	return &NetworkHandler{rt: rt, logger: logger}
}

func (h *NetworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rt.Snapshot())
}

// Decide runs one tick and returns its record.
func (h *NetworkHandler) Decide(w http.ResponseWriter, r *http.Request) {
	rec := h.rt.Step(r.Context())
	writeJSON(w, http.StatusOK, rec)
}

func (h *NetworkHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r, 50, 256)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events":  h.rt.Events(limit),
		"dropped": h.rt.DroppedEvents(),
	})
}

func (h *NetworkHandler) Ticks(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r, 20, 500)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	ticks, err := h.rt.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list ticks", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list ticks")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id": h.rt.RunID(),
		"ticks":  ticks,
	})
}
