package application

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/connconf/internal/config"
	"github.com/eugenenazirov/connconf/internal/logging"
	"github.com/eugenenazirov/connconf/internal/storage"
)

// Request describes one resolution run.
type Request struct {
	Name         string
	Prefix       string
	Fields       []string
	Types        map[string]config.Type
	ExplicitPath string
	SystemDir    string
	AltSystemDir string
}

// App encapsulates the application dependencies.
type App struct {
	logger  *zap.Logger
	store   storage.Storage
	lookup  config.LookupFunc
	homeDir func() (string, error)
}

// New initializes the application with the given logger.
func New(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		logger:  logger,
		store:   storage.NewMemoryStorage(),
		lookup:  os.LookupEnv,
		homeDir: os.UserHomeDir,
	}
}

// Resolve runs the resolver for req and stores the result.
func (a *App) Resolve(req Request) (*config.Resolved, error) {
	sources, err := config.DefaultSources(a.locations(req))
	if err != nil {
		return nil, fmt.Errorf("build sources: %w", err)
	}

	types := req.Types
	if types == nil {
		types = config.DefaultTypes()
	}

	r, err := config.NewResolver(sources, req.Fields,
		config.WithTypes(types),
		config.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	cfg, err := r.Resolve()
	if err != nil {
		return nil, err
	}

	if err := a.store.Set(cfg); err != nil {
		return nil, fmt.Errorf("store configuration: %w", err)
	}

	a.logger.Info("configuration resolved",
		zap.String("name", req.Name),
		zap.Strings("fields", cfg.Fields()),
		zap.Int("keys", len(cfg.Keys())),
	)
	return cfg, nil
}

// Last returns the most recent successful resolution.
func (a *App) Last() (*config.Resolved, bool) {
	return a.store.Get()
}

func (a *App) locations(req Request) config.Locations {
	home, err := a.homeDir()
	if err != nil {
		a.logger.Debug("user home directory unavailable", zap.Error(err))
		home = ""
	}
	return config.Locations{
		Name:         req.Name,
		Prefix:       req.Prefix,
		Fields:       req.Fields,
		AltSystemDir: req.AltSystemDir,
		SystemDir:    req.SystemDir,
		HomeDir:      home,
		ExplicitPath: req.ExplicitPath,
		LookupEnv:    a.lookup,
	}
}

// Render encodes cfg as "yaml" or "json". Secrets are masked unless showSecrets is set.
func Render(cfg *config.Resolved, format string, showSecrets bool) ([]byte, error) {
	values := cfg.Map()
	if !showSecrets {
		values = logging.Redact(values)
	}

	switch format {
	case "yaml", "":
		out, err := yaml.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
		return out, nil
	case "json":
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode JSON: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
