package coder

import (
	"github.com/wippyai/dictcoder/coder/internal/value"
	"github.com/wippyai/dictcoder/errors"
)

// flatten converts a finished value tree into generic containers. The top
// level has to be a map.
func flatten(top *value.Value) (map[string]any, error) {
	if top.Kind() != value.KindMap {
		return nil, errors.New(errors.PhaseFlatten, errors.KindInvalidTopLevel).
			Found(top.Kind().String()).
			Detail("top-level value must be a keyed container").
			Build()
	}
	return flattenMap(top), nil
}

func flattenMap(v *value.Value) map[string]any {
	out := make(map[string]any, v.Len())
	for _, k := range v.Keys() {
		child, _ := v.Get(k)
		out[k] = flattenValue(child)
	}
	return out
}

func flattenValue(v *value.Value) any {
	switch v.Kind() {
	case value.KindInt:
		return v.IntValue()
	case value.KindFloat32:
		return v.Float32Value()
	case value.KindFloat64:
		return v.Float64Value()
	case value.KindString:
		return v.StringValue()
	case value.KindBool:
		return v.BoolValue()
	case value.KindNull:
		return nil
	case value.KindPrimitiveList:
		return v.Backing()
	case value.KindList:
		out := make([]any, v.Len())
		for i := range out {
			child, _ := v.At(i)
			out[i] = flattenValue(child)
		}
		return out
	case value.KindMap:
		return flattenMap(v)
	default:
		errors.Violation(nil, "unknown value kind "+v.Kind().String())
		return nil
	}
}
