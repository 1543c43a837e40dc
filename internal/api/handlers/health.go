package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
}

// Health reports process liveness only. It says nothing about the robot
// link or a running routine; /status carries the execution state.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}
