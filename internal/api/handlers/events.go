package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"routine-planner-service/internal/events"
)

type EventsHandler struct {
	Bus *events.Bus
}

// Stream bridges the announcement bus to Server-Sent Events. Each bus event
// becomes one SSE message named after its topic.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.Bus.Subscribe(r.Context())
	defer sub.Unsubscribe()

	for ev := range sub.C() {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Topic, payload)
		flusher.Flush()
	}
}
