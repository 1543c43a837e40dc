package api

import (
	"net/http"

	"routine-planner-service/internal/api/handlers"
	"routine-planner-service/internal/events"
	"routine-planner-service/internal/ports"
	"routine-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	ctrl *services.Controller,
	catalog ports.RoutineSource,
	status *services.StatusStore,
	bus *events.Bus,
) http.Handler {
	mux := http.NewServeMux()

	routineHandler := &handlers.RoutineHandler{Catalog: catalog, Controller: ctrl}
	statusHandler := &handlers.StatusHandler{Store: status, Controller: ctrl}
	eventsHandler := &handlers.EventsHandler{Bus: bus}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routines", routineHandler.List)
	mux.HandleFunc("/routines/start", routineHandler.Start)
	mux.HandleFunc("/pause", routineHandler.Pause)
	mux.HandleFunc("/status", statusHandler.Get)
	mux.HandleFunc("/robot/status", statusHandler.Report)
	mux.HandleFunc("/events", eventsHandler.Stream)

	return requestIDMiddleware(loggingMiddleware(mux))
}
