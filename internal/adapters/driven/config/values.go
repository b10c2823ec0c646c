// Package config holds the configuration store adapters and the value
// coercions they share.
package config

import (
	"strconv"
	"strings"
	"time"
)

// AsString returns v if it is a string.
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsInt coerces the integer shapes TOML decoding and callers produce.
func AsInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// AsBool accepts booleans and their usual string spellings.
func AsBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		return false
	}
}

// AsDuration accepts duration strings ("90s", "2m") or a number of seconds.
func AsDuration(v any) time.Duration {
	switch d := v.(type) {
	case time.Duration:
		return d
	case string:
		d = strings.TrimSpace(d)
		if parsed, err := time.ParseDuration(d); err == nil {
			return parsed
		}
		if secs, err := strconv.Atoi(d); err == nil {
			return time.Duration(secs) * time.Second
		}
		return 0
	case int, int64, float64:
		return time.Duration(AsInt(d)) * time.Second
	default:
		return 0
	}
}

// AsStringSlice returns the string elements of a slice value.
func AsStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}
