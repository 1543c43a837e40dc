package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"routine-planner-service/internal/api/dto"
	"routine-planner-service/internal/domain"
	"routine-planner-service/internal/services"
)

type StatusHandler struct {
	Store      *services.StatusStore
	Controller *services.Controller
}

// Report ingests a robot status delivery. Only the latest report is kept.
func (h *StatusHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RobotStatusRequest

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

	h.Store.Update(domain.RobotStatus{
		Position:  domain.Point{X: req.PosX, Y: req.PosY},
		DistanceM: req.DistanceM,
		SpeedMS:   req.SpeedMS,
		ElapsedS:  req.ElapsedS,
		YawDeg:    req.YawDeg,
		Moving:    req.Moving,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Get returns the execution state and the latest robot report.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap := h.Controller.State()
	robot := h.Store.Latest()

	writeJSON(w, r, http.StatusOK, dto.ExecutionStatusResponse{
		InExecution: snap.InExecution,
		Paused:      snap.Paused,
		RunID:       snap.RunID,
		RoutineID:   snap.RoutineID,
		Robot: dto.RobotStatusRequest{
			PosX:      robot.Position.X,
			PosY:      robot.Position.Y,
			DistanceM: robot.DistanceM,
			SpeedMS:   robot.SpeedMS,
			ElapsedS:  robot.ElapsedS,
			YawDeg:    robot.YawDeg,
			Moving:    robot.Moving,
		},
	})
}
