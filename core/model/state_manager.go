// Package model holds the pieces shared by every estimator: fitted-state
// bookkeeping, estimator interfaces and weight serialization.
package model

import (
	"sync"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// StateManager tracks whether a model has been fitted and the shape of the
// data it was fitted on. Estimators hold one by composition.
type StateManager struct {
	mu sync.RWMutex

	modelName string
	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager creates an unfitted StateManager. modelName appears in
// NotFitted errors.
func NewStateManager(modelName string) *StateManager {
	return &StateManager{modelName: modelName}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted records a successful fit on nSamples rows of nFeatures columns.
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset returns the manager to the unfitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// Dimensions returns the number of features and samples seen during fitting.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted returns a NotFittedError naming method when the model has
// not been fitted.
func (s *StateManager) RequireFitted(method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(s.modelName, method)
	}
	return nil
}

// ModelState is a snapshot of a StateManager, used in exported weights.
type ModelState struct {
	Fitted    bool `json:"fitted"`
	NFeatures int  `json:"n_features,omitempty"`
	NSamples  int  `json:"n_samples,omitempty"`
}

// State returns a snapshot of the current state.
func (s *StateManager) State() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ModelState{
		Fitted:    s.fitted,
		NFeatures: s.nFeatures,
		NSamples:  s.nSamples,
	}
}

// SetState restores a snapshot.
func (s *StateManager) SetState(state ModelState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = state.Fitted
	s.nFeatures = state.NFeatures
	s.nSamples = state.NSamples
}
