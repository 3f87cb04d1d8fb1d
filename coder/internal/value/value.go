package value

import (
	"reflect"
	"slices"

	"github.com/wippyai/dictcoder/errors"
)

// Value is one node of the intermediate tree.
type Value struct {
	prim any
	m    map[string]*Value
	s    string
	list []*Value
	i    int
	f64  float64
	f32  float32
	kind Kind
	b    bool
}

var (
	nullValue  = &Value{kind: KindNull}
	trueValue  = &Value{kind: KindBool, b: true}
	falseValue = &Value{kind: KindBool}
)

func Int(v int) *Value         { return &Value{kind: KindInt, i: v} }
func Float32(v float32) *Value { return &Value{kind: KindFloat32, f32: v} }
func Float64(v float64) *Value { return &Value{kind: KindFloat64, f64: v} }
func String(v string) *Value   { return &Value{kind: KindString, s: v} }

// Bool returns one of the shared boolean nodes.
func Bool(v bool) *Value {
	if v {
		return trueValue
	}
	return falseValue
}

// Null returns the shared null node.
func Null() *Value { return nullValue }

// PrimitiveList wraps a slice of scalars that flattens to itself.
// The backing must be a slice.
func PrimitiveList(backing any) *Value {
	if rv := reflect.ValueOf(backing); rv.Kind() != reflect.Slice {
		errors.Violation(nil, "primitive list backing must be a slice, got "+rv.Kind().String())
	}
	return &Value{kind: KindPrimitiveList, prim: backing}
}

// EmptyList returns a new list node.
func EmptyList() *Value { return &Value{kind: KindList, list: []*Value{}} }

// EmptyMap returns a new map node.
func EmptyMap() *Value { return &Value{kind: KindMap, m: map[string]*Value{}} }

func (v *Value) Kind() Kind { return v.kind }

// Len is the number of children of a container or primitive list, 0 otherwise.
func (v *Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	case KindPrimitiveList:
		return reflect.ValueOf(v.prim).Len()
	default:
		return 0
	}
}

// Insert sets key on a map node, replacing any previous child.
func (v *Value) Insert(key string, child *Value) {
	v.mustBe(KindMap, "insert")
	v.m[key] = child
}

// Append adds child to the end of a list node.
func (v *Value) Append(child *Value) {
	v.mustBe(KindList, "append")
	v.list = append(v.list, child)
}

// InsertAt places child at index i of a list node, shifting later elements.
func (v *Value) InsertAt(i int, child *Value) {
	v.mustBe(KindList, "insert at index")
	if i < 0 || i > len(v.list) {
		errors.Violation(nil, "list index out of range")
	}
	v.list = slices.Insert(v.list, i, child)
}

func (v *Value) mustBe(k Kind, op string) {
	if v.kind != k {
		errors.Violation(nil, "cannot "+op+" on "+v.kind.String()+" node")
	}
}

// Get returns the child stored at key of a map node.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	child, ok := v.m[key]
	return child, ok
}

// At returns the i-th child of a list node.
func (v *Value) At(i int) (*Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return nil, false
	}
	return v.list[i], true
}

// Keys returns the keys of a map node in sorted order.
func (v *Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (v *Value) IntValue() int         { return v.i }
func (v *Value) Float32Value() float32 { return v.f32 }
func (v *Value) Float64Value() float64 { return v.f64 }
func (v *Value) StringValue() string   { return v.s }
func (v *Value) BoolValue() bool       { return v.b }

// Backing returns the slice held by a primitive list node.
func (v *Value) Backing() any { return v.prim }
