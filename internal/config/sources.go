package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Values is a flat mapping of field names to raw values.
type Values map[string]any

// Source supplies a subset of configuration values. An absent source returns
// an empty mapping and no error.
type Source interface {
	Name() string
	Load() (Values, error)
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FileSource reads a YAML mapping from Path when the file exists.
type FileSource struct {
	Label string
	Path  string
}

// NewFileSource creates a file source labelled for diagnostics.
func NewFileSource(label, path string) *FileSource {
	return &FileSource{Label: label, Path: path}
}

func (s *FileSource) Name() string {
	return s.Label
}

// Load returns nil values when the path does not exist or is a directory.
func (s *FileSource) Load() (Values, error) {
	if s.Path == "" {
		return nil, nil
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &ParseError{Source: s.Label, Path: s.Path, Err: err}
	}
	if info.IsDir() {
		return nil, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &ParseError{Source: s.Label, Path: s.Path, Err: fmt.Errorf("read file: %w", err)}
	}

	values, err := parseDocument(data)
	if err != nil {
		return nil, &ParseError{Source: s.Label, Path: s.Path, Err: err}
	}
	return values, nil
}

func parseDocument(data []byte) (Values, error) {
	var values Values
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return values, nil
}

// EnvSource reads {PREFIX}_{FIELD} variables for a fixed field set.
type EnvSource struct {
	Prefix string
	Fields []string
	Lookup LookupFunc
}

// NewEnvSource creates an environment source. A nil lookup uses os.LookupEnv.
func NewEnvSource(prefix string, fields []string, lookup LookupFunc) *EnvSource {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &EnvSource{Prefix: prefix, Fields: fields, Lookup: lookup}
}

func (s *EnvSource) Name() string {
	return "env:" + s.Prefix
}

// Load returns every variable that is set, including ones set to "".
func (s *EnvSource) Load() (Values, error) {
	values := make(Values, len(s.Fields))
	for _, field := range s.Fields {
		if value, ok := s.Lookup(EnvVarName(s.Prefix, field)); ok {
			values[field] = value
		}
	}
	return values, nil
}

// EnvVarName builds the variable name for field, e.g. FS_HOST for ("FS", "host").
func EnvVarName(prefix, field string) string {
	return prefix + "_" + strings.ToUpper(strings.ReplaceAll(field, " ", "_"))
}

// Locations describes where the default sources live. Nothing in it is read
// from the process environment; see LocationsFromEnv.
type Locations struct {
	Name         string
	Prefix       string
	Fields       []string
	AltSystemDir string
	SystemDir    string
	HomeDir      string
	ExplicitPath string
	LookupEnv    LookupFunc
}

const (
	defaultSystemDir = "/etc"
	// AltSystemDirEnv names the variable holding an alternate system directory.
	AltSystemDirEnv = "CONDA_ETC_"
)

// LocationsFromEnv fills Locations from the running process: the alternate
// system directory, the user's home directory and os.LookupEnv.
func LocationsFromEnv(name, prefix string, fields []string, explicitPath string) Locations {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return Locations{
		Name:         name,
		Prefix:       prefix,
		Fields:       fields,
		AltSystemDir: os.Getenv(AltSystemDirEnv),
		SystemDir:    defaultSystemDir,
		HomeDir:      home,
		ExplicitPath: explicitPath,
		LookupEnv:    os.LookupEnv,
	}
}

// DefaultSources returns the sources in ascending priority order.
func DefaultSources(loc Locations) ([]Source, error) {
	if strings.TrimSpace(loc.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidRequest)
	}
	if strings.TrimSpace(loc.Prefix) == "" {
		return nil, fmt.Errorf("%w: prefix must not be empty", ErrInvalidRequest)
	}

	fileName := loc.Name + ".yml"
	sources := make([]Source, 0, 5)

	if loc.AltSystemDir != "" {
		sources = append(sources, NewFileSource("alt-system", filepath.Join(loc.AltSystemDir, fileName)))
	}

	systemDir := loc.SystemDir
	if systemDir == "" {
		systemDir = defaultSystemDir
	}
	sources = append(sources, NewFileSource("system", filepath.Join(systemDir, fileName)))

	if loc.HomeDir != "" {
		sources = append(sources, NewFileSource("user",
			filepath.Join(loc.HomeDir, ".config", loc.Name, "connection.yml")))
	}

	sources = append(sources, NewEnvSource(loc.Prefix, loc.Fields, loc.LookupEnv))

	if loc.ExplicitPath != "" {
		sources = append(sources, NewFileSource("explicit", loc.ExplicitPath))
	}

	return sources, nil
}
