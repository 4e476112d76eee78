package filestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eugenenazirov/connconf/internal/config"
	"github.com/eugenenazirov/connconf/internal/storage"
)

func fakeLocations(t *testing.T, env map[string]string) LocateFunc {
	t.Helper()
	root := t.TempDir()
	return func(explicitPath string) config.Locations {
		return config.Locations{
			Name:         Name,
			Prefix:       Prefix,
			Fields:       Fields(),
			SystemDir:    filepath.Join(root, "etc"),
			HomeDir:      filepath.Join(root, "home"),
			ExplicitPath: explicitPath,
			LookupEnv: func(key string) (string, bool) {
				v, ok := env[key]
				return v, ok
			},
		}
	}
}

func TestConnectionResolvesLazily(t *testing.T) {
	t.Parallel()

	env := map[string]string{"FS_HOST": "h", "FS_DATABASE": "d", "FS_PORT": "5432"}
	p := NewProvider(storage.NewMemoryStorage(), fakeLocations(t, env))

	cfg, err := p.Connection()
	if err != nil {
		t.Fatalf("Connection returned error: %v", err)
	}
	if port, ok := cfg.Int("port"); !ok || port != 5432 {
		t.Fatalf("expected integer port, got %v", port)
	}

	env["FS_HOST"] = "changed"
	again, err := p.Connection()
	if err != nil {
		t.Fatalf("Connection returned error: %v", err)
	}
	if again != cfg {
		t.Fatalf("expected stored configuration to be reused")
	}

	p.Reset()
	fresh, err := p.Connection()
	if err != nil {
		t.Fatalf("Connection returned error: %v", err)
	}
	if fresh.String("host") != "changed" {
		t.Fatalf("expected reset to force a new resolution, got %q", fresh.String("host"))
	}
}

func TestConnectionFailureIsNotStored(t *testing.T) {
	t.Parallel()

	env := map[string]string{"FS_HOST": "h"}
	p := NewProvider(nil, fakeLocations(t, env))

	_, err := p.Connection()
	var missing *config.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}

	env["FS_DATABASE"] = "d"
	env["FS_PORT"] = "1"
	if _, err := p.Connection(); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestLoadWithExplicitFile(t *testing.T) {
	t.Parallel()

	env := map[string]string{"FS_HOST": "h", "FS_DATABASE": "env-db", "FS_PORT": "1"}
	p := NewProvider(storage.NewMemoryStorage(), fakeLocations(t, env))

	path := filepath.Join(t.TempDir(), "conn.yml")
	if err := os.WriteFile(path, []byte("database: file-db\nport: \"2\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := p.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.String("database") != "file-db" {
		t.Fatalf("expected explicit file to win, got %q", cfg.String("database"))
	}
	if port, ok := cfg.Int("port"); !ok || port != 2 {
		t.Fatalf("expected port from explicit file coerced to int, got %v", port)
	}

	stored, err := p.Connection()
	if err != nil || stored != cfg {
		t.Fatalf("expected Load result to be served by Connection, got %v, %v", stored, err)
	}
}

func TestFields(t *testing.T) {
	t.Parallel()

	fields := Fields()
	fields[0] = "mutated"
	if Fields()[0] != "host" {
		t.Fatalf("Fields must return a fresh slice")
	}
}
