package normalization

import (
	"math"
	"strconv"
	"strings"
)

// AsString trims and returns the string representation of value when possible.
func AsString(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// AsInt coerces numeric values supported by the REST layer into Go ints.
func AsInt(value any) int {
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case float32:
		return int(typed)
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	default:
		return 0
	}
}

// AsNumber coerces numeric values (including numeric strings) into float64.
// The second return reports whether the coercion produced a usable number;
// NaN and unparseable inputs report false.
func AsNumber(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		if math.IsNaN(typed) {
			return 0, false
		}
		return typed, true
	case float32:
		if math.IsNaN(float64(typed)) {
			return 0, false
		}
		return float64(typed), true
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(parsed) {
				return parsed, true
			}
		}
	}
	return 0, false
}

// AsFloat64 coerces numeric values (including numeric strings) into float64,
// defaulting to zero when no usable number is present.
func AsFloat64(value any) float64 {
	parsed, _ := AsNumber(value)
	return parsed
}

// AsInterfaceSlice normalizes different collection types into a []any.
func AsInterfaceSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, entry)
		}
		return items
	default:
		return nil
	}
}

// AsMap returns value as a map when it is one, nil otherwise.
func AsMap(value any) map[string]any {
	if typed, ok := value.(map[string]any); ok {
		return typed
	}
	return nil
}

// FirstDefined walks the alias fields in order and returns the first value
// present on the record, together with the field that supplied it. Upstream
// payloads spell the same logical attribute several ways, so alias precedence
// lives in explicit tables at the call sites rather than inline conditionals.
func FirstDefined(record map[string]any, aliases []string) (any, string) {
	if record == nil {
		return nil, ""
	}
	for _, field := range aliases {
		if value, ok := record[field]; ok && value != nil {
			return value, field
		}
	}
	return nil, ""
}

// FirstString is FirstDefined restricted to non-empty string values.
func FirstString(record map[string]any, aliases []string) string {
	if record == nil {
		return ""
	}
	for _, field := range aliases {
		if value, ok := record[field]; ok {
			if s := AsString(value); s != "" {
				return s
			}
		}
	}
	return ""
}
