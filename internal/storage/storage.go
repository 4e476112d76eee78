package storage

import (
	"errors"
	"sync"

	"github.com/eugenenazirov/connconf/internal/config"
)

var (
	// ErrNilConfig indicates an attempt to store an empty configuration.
	ErrNilConfig = errors.New("resolved configuration must not be nil")
)

// Storage holds the most recently resolved configuration.
type Storage interface {
	Get() (*config.Resolved, bool)
	Set(cfg *config.Resolved) error
	Clear()
}

// MemoryStorage keeps the configuration in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu  sync.RWMutex
	cfg *config.Resolved
}

// NewMemoryStorage returns empty storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Get returns the stored configuration and whether one has been set.
// Resolved values are immutable, so the pointer is shared.
func (s *MemoryStorage) Get() (*config.Resolved, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cfg, s.cfg != nil
}

// Set replaces the stored configuration.
func (s *MemoryStorage) Set(cfg *config.Resolved) error {
	if cfg == nil {
		return ErrNilConfig
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	return nil
}

// Clear drops the stored configuration.
func (s *MemoryStorage) Clear() {
	s.mu.Lock()
	s.cfg = nil
	s.mu.Unlock()
}
