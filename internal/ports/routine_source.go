package ports

import "routine-planner-service/internal/domain"

// Port: a boundary for the routine catalog (routine id -> ordered stops).
type RoutineSource interface {
	// Return the stops of a routine, or ok=false when the id is unknown.
	Routine(id int) (stops []domain.Stop, ok bool)
	// Return all known routine ids in ascending order.
	IDs() []int
}
