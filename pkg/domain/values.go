package domain

import (
	"fmt"
	"strings"
)

// Values holds submitted or stored field answers. A value is either a
// string or a []string (checkboxes submit multiple values under one
// name). Stored answers appear under both the bare field name and the
// step-qualified "stepID.fieldName" key.
type Values map[string]any

// First collapses a value to a single string: the first element for
// slice answers, the value itself for strings. Returns "" for nil.
func First(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		if len(t) == 0 {
			return ""
		}
		return t[0]
	case []any:
		if len(t) == 0 {
			return ""
		}
		return First(t[0])
	default:
		return fmt.Sprint(t)
	}
}

// IsBlank reports whether a value counts as absent for required-field
// checks: nil, a whitespace-only string, or an empty list.
func IsBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}

// Lookup resolves an answer for a rule condition: the step-qualified
// key first, then the bare field name for legacy data.
func (v Values) Lookup(stepID, field string) (any, bool) {
	if val, ok := v[stepID+"."+field]; ok {
		return val, true
	}
	val, ok := v[field]
	return val, ok
}

// Merge copies all entries of src into v, overwriting existing keys.
func (v Values) Merge(src Values) {
	for k, val := range src {
		v[k] = val
	}
}

// Clone returns a shallow copy of v. Never returns nil.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	out.Merge(v)
	return out
}
