package main

import (
	"fmt"
	"math"
	"reflect"

	"github.com/goccy/go-yaml"
)

// load parses YAML or JSON into a container. The document must be a mapping.
func load(data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	m, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level document must be a mapping, got %T", doc)
	}
	return m, nil
}

// normalize rewrites parser output into container form: every integer
// becomes int, every mapping map[string]any and every sequence []any.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, bool, string, float64, int:
		return x
	case int64:
		return int(x)
	case uint64:
		if x > math.MaxInt {
			return float64(x)
		}
		return int(x)
	case float32:
		return float64(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = normalize(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uintptr:
		return int(rv.Uint())
	}
	return v
}
