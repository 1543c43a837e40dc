package ports

import (
	"context"

	"routine-planner-service/internal/domain"
)

// Contract for the external trajectory-tracking interface. Both calls block
// until the robot finishes (or fails) the commanded profile; callers bound
// them with a context deadline and treat expiry as a dispatch failure.
type Mover interface {
	// Command the robot through an ordered list of position setpoints.
	Move(ctx context.Context, samples []domain.MotionSample) error
}

// Contract for the external turn interface, same failure semantics as Mover.
type Turner interface {
	// Command the robot through an ordered list of yaw setpoints.
	Turn(ctx context.Context, samples []domain.TurnSample) error
}
