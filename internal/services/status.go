package services

import (
	"sync"

	"routine-planner-service/internal/domain"
)

// StatusStore keeps the most recent robot status report. There is no history
// and no interpolation: readers always get the latest delivery.
type StatusStore struct {
	mu     sync.RWMutex
	latest domain.RobotStatus
}

func NewStatusStore() *StatusStore {
	return &StatusStore{}
}

// Update replaces the stored report with a newer one.
func (s *StatusStore) Update(st domain.RobotStatus) {
	s.mu.Lock()
	s.latest = st
	s.mu.Unlock()
}

// Latest returns the most recent report (zero value before the first one).
func (s *StatusStore) Latest() domain.RobotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
