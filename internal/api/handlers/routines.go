package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"routine-planner-service/internal/api/dto"
	"routine-planner-service/internal/ports"
	"routine-planner-service/internal/services"
)

type RoutineHandler struct {
	Catalog    ports.RoutineSource
	Controller *services.Controller
}

// List returns the routine catalog.
func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.ListRoutinesResponse{Routines: []dto.RoutineResponse{}}
	for _, id := range h.Catalog.IDs() {
		stops, _ := h.Catalog.Routine(id)
		out := dto.RoutineResponse{ID: id, Stops: make([]dto.StopResponse, 0, len(stops))}
		for _, s := range stops {
			out.Stops = append(out.Stops, dto.StopResponse{ID: s.NodeID, Code: s.Code})
		}
		res.Routines = append(res.Routines, out)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Start accepts a routine for execution. The routine runs in the background;
// observers follow it through /events and /status.
func (h *RoutineHandler) Start(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.StartRoutineRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	runID, err := h.Controller.Start(req.RoutineID)
	switch {
	case errors.Is(err, services.ErrUnknownRoutine):
		writeError(w, r, http.StatusNotFound, "routine does not exist")
		return
	case errors.Is(err, services.ErrBusy):
		writeError(w, r, http.StatusConflict, "a routine is already in execution")
		return
	case err != nil:
		log.Printf("start routine failed: routine=%d err=%v", req.RoutineID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.StartRoutineResponse{
		RunID:     runID,
		RoutineID: req.RoutineID,
	})
}

// Pause requests that the running routine stop before its next segment.
// Idempotent; accepted even when nothing is running.
func (h *RoutineHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.Controller.Pause()
	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "pause requested"})
}
