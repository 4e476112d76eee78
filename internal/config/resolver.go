package config

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
	"go.uber.org/zap"

	"github.com/eugenenazirov/connconf/internal/logging"
)

// Resolver merges an ordered list of sources and validates the result.
// It keeps no state between calls and is safe for concurrent use.
type Resolver struct {
	sources []Source
	fields  []string
	types   map[string]Type
	logger  *zap.Logger
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithTypes replaces the coercion rules. A nil map disables coercion.
func WithTypes(types map[string]Type) Option {
	return func(r *Resolver) {
		r.types = make(map[string]Type, len(types))
		for field, t := range types {
			r.types[field] = t
		}
	}
}

// WithLogger sets the logger used for per-source diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver over sources, listed lowest priority first.
func NewResolver(sources []Source, fields []string, opts ...Option) (*Resolver, error) {
	normalized, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		sources: append([]Source(nil), sources...),
		fields:  normalized,
		types:   DefaultTypes(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve is the one-call form: it builds the default sources for name and
// prefix from the running process and resolves fields against them.
func Resolve(name, prefix string, fields []string, explicitPath string, opts ...Option) (*Resolved, error) {
	sources, err := DefaultSources(LocationsFromEnv(name, prefix, fields, explicitPath))
	if err != nil {
		return nil, err
	}

	r, err := NewResolver(sources, fields, opts...)
	if err != nil {
		return nil, err
	}
	return r.Resolve()
}

// Fields returns the required field set.
func (r *Resolver) Fields() []string {
	return append([]string(nil), r.fields...)
}

// Resolve merges every source, coerces declared types and checks that all
// required fields are set. It never returns a partial result.
func (r *Resolver) Resolve() (*Resolved, error) {
	merged := make(Values)

	for _, src := range r.sources {
		values, err := src.Load()
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", src.Name(), err)
		}
		if len(values) == 0 {
			continue
		}

		if err := mergo.Merge(&merged, values, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge %s: %w", src.Name(), err)
		}
		r.logger.Debug("merged configuration source",
			zap.String("source", src.Name()),
			zap.Any("config", logging.Redact(merged)),
		)
	}

	if err := r.applyTypes(merged); err != nil {
		return nil, err
	}

	if missing := r.missingFields(merged); len(missing) > 0 {
		return nil, &MissingFieldError{Fields: missing}
	}

	return newResolved(merged, r.fields), nil
}

func (r *Resolver) applyTypes(values Values) error {
	for _, field := range r.fields {
		t, ok := r.types[field]
		if !ok {
			continue
		}
		raw, ok := values[field]
		if !ok || raw == nil {
			continue
		}
		converted, err := coerce(field, raw, t)
		if err != nil {
			return err
		}
		values[field] = converted
	}
	return nil
}

func (r *Resolver) missingFields(values Values) []string {
	var missing []string
	for _, field := range r.fields {
		if v, ok := values[field]; !ok || v == nil {
			missing = append(missing, field)
		}
	}
	return missing
}

func normalizeFields(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: at least one field is required", ErrInvalidRequest)
	}

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("%w: field names must not be empty", ErrInvalidRequest)
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		out = append(out, field)
	}
	return out, nil
}
