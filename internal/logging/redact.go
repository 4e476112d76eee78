package logging

import "strings"

// Redacted is the placeholder written in place of secret values.
const Redacted = "[REDACTED]"

var secretMarkers = []string{"password", "passwd", "secret", "token", "key", "credential"}

// IsSecret reports whether key names a credential-like field.
func IsSecret(key string) bool {
	lower := strings.ToLower(key)
	for _, marker := range secretMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Redact returns a shallow copy of values with secret values masked.
// Nil values are kept so unset fields stay visible.
func Redact[M ~map[string]any](values M) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if v != nil && IsSecret(k) {
			out[k] = Redacted
			continue
		}
		out[k] = v
	}
	return out
}
