package model

import (
	"sync"
)

// StateManager tracks whether a model is fitted and the shape it was fitted
// on. It also serializes access to the model's learned parameters: readers
// run under WithState, a refit swaps parameters under WithStateMut.
type StateManager struct {
	mu    sync.RWMutex
	state ModelState
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Fitted
}

// GetDimensions returns the number of features and samples seen in Fit.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.NFeatures, s.state.NSamples
}

// ModelState is a snapshot of StateManager.
type ModelState struct {
	Fitted    bool
	NFeatures int
	NSamples  int
}

// WithState runs fn while holding the read lock. fn must not call other
// StateManager methods.
func (s *StateManager) WithState(fn func(state ModelState) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// WithStateMut runs fn while holding the write lock. When fn succeeds the
// state it returns replaces the current one; on error nothing changes.
func (s *StateManager) WithStateMut(fn func(state ModelState) (ModelState, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}
