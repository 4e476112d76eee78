// Package config resolves connection settings from a cascade of sources
// (platform files, a per-user file, environment variables and an explicit
// file) with precedence: explicit file > environment variables > user file >
// system file > alternate system file. Declared field types are coerced after
// merging and every required field must be present in the result.
package config
