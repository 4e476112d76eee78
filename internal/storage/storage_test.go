package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/eugenenazirov/connconf/internal/config"
)

type staticSource map[string]any

func (s staticSource) Name() string                 { return "static" }
func (s staticSource) Load() (config.Values, error) { return config.Values(s), nil }

func resolved(t *testing.T, host string) *config.Resolved {
	t.Helper()
	r, err := config.NewResolver([]config.Source{staticSource{"host": host}}, []string{"host"})
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}
	cfg, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	return cfg
}

func TestNewMemoryStorageIsEmpty(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	if cfg, ok := store.Get(); ok || cfg != nil {
		t.Fatalf("expected empty storage, got %v", cfg)
	}
}

func TestSetAndClear(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	want := resolved(t, "db.example.com")
	if err := store.Set(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := store.Get()
	if !ok || got != want {
		t.Fatalf("expected stored configuration, got %v", got)
	}

	store.Clear()
	if _, ok := store.Get(); ok {
		t.Fatalf("expected storage to be cleared")
	}
}

func TestSetRejectsNil(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	if err := store.Set(nil); !errors.Is(err, ErrNilConfig) {
		t.Fatalf("expected ErrNilConfig, got %v", err)
	}
}

func TestMemoryStorageConcurrentAccess(t *testing.T) {
	store := NewMemoryStorage()
	configs := make([]*config.Resolved, 32)
	for i := range configs {
		configs[i] = resolved(t, fmt.Sprintf("host-%d", i))
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(cfg *config.Resolved) {
			defer wg.Done()
			if err := store.Set(cfg); err != nil {
				t.Errorf("Set failed: %v", err)
			}
		}(configs[i])

		go func() {
			defer wg.Done()
			if cfg, ok := store.Get(); ok && cfg.String("host") == "" {
				t.Errorf("Get returned an empty configuration")
			}
		}()
	}

	wg.Wait()

	if _, ok := store.Get(); !ok {
		t.Fatalf("expected a configuration after concurrent writes")
	}
}
