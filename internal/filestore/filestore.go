// Package filestore exposes the process-wide connection settings of the file
// store: name "filestore", environment prefix "FS" and the required fields
// host, database and port. Nothing is resolved until a caller asks for it.
package filestore

import (
	"fmt"
	"sync"

	"github.com/eugenenazirov/connconf/internal/config"
	"github.com/eugenenazirov/connconf/internal/storage"
)

const (
	Name   = "filestore"
	Prefix = "FS"
)

// Fields returns the required connection fields.
func Fields() []string {
	return []string{"host", "database", "port"}
}

// LocateFunc builds the source locations for an optional explicit file.
type LocateFunc func(explicitPath string) config.Locations

// Provider resolves the connection settings once and serves them from storage.
type Provider struct {
	mu     sync.Mutex
	store  storage.Storage
	locate LocateFunc
	opts   []config.Option
}

// NewProvider creates a provider. A nil locate reads locations from the process.
func NewProvider(store storage.Storage, locate LocateFunc, opts ...config.Option) *Provider {
	if store == nil {
		store = storage.NewMemoryStorage()
	}
	if locate == nil {
		locate = func(explicitPath string) config.Locations {
			return config.LocationsFromEnv(Name, Prefix, Fields(), explicitPath)
		}
	}
	return &Provider{
		store:  store,
		locate: locate,
		opts:   opts,
	}
}

// Load resolves the settings, replaces the stored value and returns it.
// On failure the previously stored value is kept.
func (p *Provider) Load(explicitPath string) (*config.Resolved, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.load(explicitPath)
}

// Connection returns the stored settings, resolving them on first use.
// Failures are not stored, so a later call tries again.
func (p *Provider) Connection() (*config.Resolved, error) {
	if cfg, ok := p.store.Get(); ok {
		return cfg, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if cfg, ok := p.store.Get(); ok {
		return cfg, nil
	}
	return p.load("")
}

// Reset drops the stored settings.
func (p *Provider) Reset() {
	p.store.Clear()
}

func (p *Provider) load(explicitPath string) (*config.Resolved, error) {
	sources, err := config.DefaultSources(p.locate(explicitPath))
	if err != nil {
		return nil, err
	}

	r, err := config.NewResolver(sources, Fields(), p.opts...)
	if err != nil {
		return nil, err
	}

	cfg, err := r.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve %s connection: %w", Name, err)
	}

	if err := p.store.Set(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var defaultProvider = NewProvider(storage.NewMemoryStorage(), nil)

// Load resolves the process-wide settings, optionally with an explicit file.
func Load(explicitPath string) (*config.Resolved, error) {
	return defaultProvider.Load(explicitPath)
}

// Connection returns the process-wide settings, resolving them on first use.
func Connection() (*config.Resolved, error) {
	return defaultProvider.Connection()
}

// Reset clears the process-wide settings.
func Reset() {
	defaultProvider.Reset()
}
