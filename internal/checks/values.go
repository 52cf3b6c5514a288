package checks

import (
	"fmt"
	"strings"
	"time"
)

// typeName describes a decoded front-matter value in YAML terms.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "number"
	case time.Time:
		return "timestamp"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// asMapping returns v as a string-keyed mapping. yaml.v3 decodes mappings
// with any non-string key as map[any]any; their keys are rendered with
// fmt.Sprint.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// blankString reports whether v is absent, not a string, or only whitespace.
func blankString(v any) bool {
	s, ok := v.(string)
	return !ok || strings.TrimSpace(s) == ""
}

// scalarText renders a non-mapping list entry for use in a fix hint.
func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return "<module-name>"
	case string:
		if t == "" {
			return "<module-name>"
		}
		return t
	case []any, map[any]any:
		return "<module-name>"
	default:
		return fmt.Sprint(t)
	}
}
