package service

import (
	"errors"
	"sync/atomic"
)

// ErrStaleRequest marks a fetch that completed after a newer one started.
var ErrStaleRequest = errors.New("stale request discarded")

// Sequencer hands out increasing request ids. Only the most recently
// issued id is current; results of older ids are dropped.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new request id, superseding every earlier one.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// IsLatest reports whether id is still the most recent request.
func (s *Sequencer) IsLatest(id uint64) bool {
	return s.latest.Load() == id
}

// Check returns ErrStaleRequest unless id is still the latest.
func (s *Sequencer) Check(id uint64) error {
	if !s.IsLatest(id) {
		return ErrStaleRequest
	}
	return nil
}
