package actuation

import (
	"context"
	"sync"

	"routine-planner-service/internal/domain"
)

// MockRobot records every dispatched profile. Tests use it as both Mover
// and Turner, optionally injecting failures or blocking until released to
// exercise busy/pause behavior.
type MockRobot struct {
	mu        sync.Mutex
	MoveCalls [][]domain.MotionSample
	TurnCalls [][]domain.TurnSample

	MoveErr error
	TurnErr error

	// When set, Move blocks until the channel yields or ctx expires.
	BlockMove chan struct{}
}

func (m *MockRobot) Move(ctx context.Context, samples []domain.MotionSample) error {
	if m.BlockMove != nil {
		select {
		case <-m.BlockMove:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	m.MoveCalls = append(m.MoveCalls, samples)
	m.mu.Unlock()
	return m.MoveErr
}

func (m *MockRobot) Turn(ctx context.Context, samples []domain.TurnSample) error {
	m.mu.Lock()
	m.TurnCalls = append(m.TurnCalls, samples)
	m.mu.Unlock()
	return m.TurnErr
}

// Moves returns a snapshot of the recorded move dispatches.
func (m *MockRobot) Moves() [][]domain.MotionSample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]domain.MotionSample, len(m.MoveCalls))
	copy(out, m.MoveCalls)
	return out
}

// Turns returns a snapshot of the recorded turn dispatches.
func (m *MockRobot) Turns() [][]domain.TurnSample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]domain.TurnSample, len(m.TurnCalls))
	copy(out, m.TurnCalls)
	return out
}
