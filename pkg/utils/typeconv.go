package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Stringify converts a single JSON value to its text form.
// Numbers decoded with UseNumber keep their literal text.
func Stringify(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "None"
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// JoinList stringifies every element of a list value and joins them with sep.
// A nil value is treated as an empty list.
func JoinList(val interface{}, sep string) (string, error) {
	switch v := val.(type) {
	case nil:
		return "", nil
	case []string:
		return strings.Join(v, sep), nil
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, sep), nil
	default:
		return "", fmt.Errorf("expected a list, got %T", val)
	}
}

// GetString reads a string field from a generic record.
// The bool reports whether the key was present.
func GetString(rec map[string]interface{}, key string) (string, bool, error) {
	val, ok := rec[key]
	if !ok {
		return "", false, nil
	}
	s, isString := val.(string)
	if !isString {
		return "", true, fmt.Errorf("expected a string, got %T", val)
	}
	return s, true, nil
}
