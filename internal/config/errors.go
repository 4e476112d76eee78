package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest is returned when the resolver is built without a name, prefix or fields.
	ErrInvalidRequest = errors.New("invalid resolve request")
	// ErrMissingFields is matched by MissingFieldError.
	ErrMissingFields = errors.New("required configuration fields not found")
	// ErrParse is matched by ParseError.
	ErrParse = errors.New("configuration source is not a valid document")
	// ErrTypeCoercion is matched by TypeCoercionError.
	ErrTypeCoercion = errors.New("configuration value has the wrong type")
)

// MissingFieldError lists the required fields left unset after all sources were merged.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("the configuration field(s) [%s] were not found in any file or environment variable",
		strings.Join(e.Fields, ", "))
}

// Is reports whether target is ErrMissingFields.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingFields
}

// ParseError reports a source file that exists but cannot be read as a mapping.
type ParseError struct {
	Source string
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s source %s: %v", e.Source, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// TypeCoercionError reports a value that cannot be converted to its declared type.
type TypeCoercionError struct {
	Field string
	Value any
	Type  Type
	Err   error
}

func (e *TypeCoercionError) Error() string {
	msg := fmt.Sprintf("field %q: cannot convert %v (%T) to %s", e.Field, e.Value, e.Value, e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TypeCoercionError) Unwrap() error {
	return e.Err
}

func (e *TypeCoercionError) Is(target error) bool {
	return target == ErrTypeCoercion
}
