package keypath

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Resolve walks values one dot-separated segment at a time. Absence of any
// segment yields the empty string; present values are returned untouched,
// including zero values such as 0, false or nil.
func Resolve(values map[string]any, path string) any {
	value, ok := Lookup(values, path)
	if !ok {
		return ""
	}
	return value
}

// Lookup is Resolve without the empty-string default. The boolean reports
// whether every segment of path was present.
func Lookup(values map[string]any, path string) (any, bool) {
	if values == nil || path == "" {
		return nil, false
	}

	// Prefer exact match for dotted keys stored flat ("user.name").
	if v, ok := values[path]; ok {
		return v, true
	}
	if !strings.Contains(path, ".") {
		return nil, false
	}

	var current any = values
	for _, part := range strings.Split(path, ".") {
		next, ok := step(current, part)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func step(current any, part string) (any, bool) {
	if part == "" {
		return nil, false
	}
	switch typed := current.(type) {
	case map[string]any:
		next, ok := typed[part]
		return next, ok
	case map[string]string:
		next, ok := typed[part]
		return next, ok
	case map[any]any:
		next, ok := typed[part]
		return next, ok
	case []any:
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	case []string:
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	default:
		return reflectStep(current, part)
	}
}

// reflectStep handles typed maps with string keys (map[string]int, ...) and
// typed slices or arrays. Structs are not traversed.
func reflectStep(current any, part string) (any, bool) {
	rv := reflect.ValueOf(current)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		next := rv.MapIndex(reflect.ValueOf(part).Convert(rv.Type().Key()))
		if !next.IsValid() {
			return nil, false
		}
		return next.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	default:
		return nil, false
	}
}

// String renders a model value the way it appears in the view.
func String(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(value)
	}
}
