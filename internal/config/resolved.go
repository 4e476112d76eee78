package config

import (
	"fmt"
	"sort"
)

// Resolved is the immutable result of a successful resolution.
type Resolved struct {
	values Values
	fields []string
}

func newResolved(values Values, fields []string) *Resolved {
	return &Resolved{
		values: cloneValues(values),
		fields: append([]string(nil), fields...),
	}
}

// Get returns the value stored under key.
func (c *Resolved) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// String returns the value under key rendered as a string, or "" when absent.
func (c *Resolved) String(key string) string {
	v, ok := c.values[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value under key when it holds an int.
func (c *Resolved) Int(key string) (int, bool) {
	v, ok := c.values[key].(int)
	return v, ok
}

// Fields returns the required fields, in the order they were requested.
func (c *Resolved) Fields() []string {
	return append([]string(nil), c.fields...)
}

// Keys returns every key in the configuration, sorted.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of all values, including keys that were not required.
func (c *Resolved) Map() map[string]any {
	return cloneValues(c.values)
}

func cloneValues(src Values) Values {
	out := make(Values, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
