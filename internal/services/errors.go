package services

import (
	"errors"
	"fmt"
)

// ErrBusy reports a start request while a routine is already executing.
// The request is dropped, not queued.
var ErrBusy = errors.New("routine already in execution")

// ErrUnknownRoutine reports a start request for an id the catalog does not have.
var ErrUnknownRoutine = errors.New("unknown routine")

// NoTrajectoryFoundError reports a routine hop with no matching graph edge.
// Resolution fails as a whole; no partial route is ever exposed.
type NoTrajectoryFoundError struct {
	From int
	To   int
}

func (e *NoTrajectoryFoundError) Error() string {
	return fmt.Sprintf("no trajectory defined from %d to %d", e.From, e.To)
}

// DispatchError reports a failed or timed-out move/turn call. It aborts the
// remainder of the routine.
type DispatchError struct {
	Op      string // "move" or "turn"
	Segment int
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s for segment %d: %v", e.Op, e.Segment, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
