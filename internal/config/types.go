package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type is the declared kind a field is coerced to after all sources are merged.
type Type string

const (
	TypeString Type = "string"
	TypeInt    Type = "int"
	TypeFloat  Type = "float"
	TypeBool   Type = "bool"
)

var errNotIntegral = errors.New("value is not integral")

// DefaultTypes returns the coercion rules used when the caller declares none.
func DefaultTypes() map[string]Type {
	return map[string]Type{"port": TypeInt}
}

// ParseType converts a type name such as "int" into a Type.
func ParseType(raw string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(raw))); t {
	case TypeString, TypeInt, TypeFloat, TypeBool:
		return t, nil
	case "integer":
		return TypeInt, nil
	case "boolean":
		return TypeBool, nil
	default:
		return "", fmt.Errorf("unknown field type %q", raw)
	}
}

// coerce converts value to t. Nil values are handled by the caller.
func coerce(field string, value any, t Type) (any, error) {
	var (
		out any
		err error
	)
	switch t {
	case TypeInt:
		out, err = toInt(value)
	case TypeFloat:
		out, err = toFloat(value)
	case TypeBool:
		out, err = toBool(value)
	case TypeString:
		out, err = toString(value)
	default:
		err = fmt.Errorf("unknown field type %q", t)
	}
	if err != nil {
		return nil, &TypeCoercionError{Field: field, Value: value, Type: t, Err: err}
	}
	return out, nil
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, strconv.ErrRange
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, strconv.ErrRange
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, errNotIntegral
		}
		if v < math.MinInt || v > math.MaxInt {
			return 0, strconv.ErrRange
		}
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		return false, fmt.Errorf("unsupported type %T", value)
	}
}

func toString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", value)
	}
}
