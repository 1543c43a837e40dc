package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"routine-planner-service/internal/platform/obs"
)

// errorResponse is the envelope every non-2xx JSON response uses.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		reqID, _ := r.Context().Value(obs.RequestIDKey).(string)
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", reqID, r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}
