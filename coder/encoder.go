package coder

import (
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/dictcoder/coder/internal/types"
	"github.com/wippyai/dictcoder/coder/internal/value"
	"github.com/wippyai/dictcoder/codingpath"
	"github.com/wippyai/dictcoder/errors"
)

// Encoder turns typed values into map[string]any trees.
//
// An Encoder returned by NewEncoder only holds configuration and may be shared.
// Each Encode call runs on a private copy, and that copy is the *Encoder an
// EncodeTo implementation receives. That copy, and any container taken from
// it, must not be kept past the EncodeTo call. Using it after Encode returns
// is a contract violation.
type Encoder struct {
	stack *stack[*value.Value]
	path  *codingpath.Node
	opts  Options
}

func NewEncoder(opts Options) *Encoder {
	return &Encoder{opts: opts}
}

func NewEncoderWithDefaults() *Encoder {
	return NewEncoder(DefaultOptions())
}

// Encode converts v into a generic container. The top level must produce a
// map-shaped value.
func (e *Encoder) Encode(v any) (map[string]any, error) {
	run := &Encoder{opts: e.opts, stack: getValueStack()}
	defer run.release()

	top, err := run.box(v)
	if err == nil && top == nil {
		err = errors.InvalidTopLevel(errors.PhaseEncode,
			"top-level "+typeName(v)+" did not encode any values")
	}
	var out map[string]any
	if err == nil {
		out, err = flatten(top)
	}
	if err != nil {
		Logger().Debug("encode failed",
			append(failureFields(err), zap.String("type", typeName(v)))...)
		wrapped := errors.Wrap(errors.PhaseEncode, errors.KindInvalidValue, err,
			"unable to encode the given top-level value")
		wrapped.Value = v
		return nil, wrapped
	}
	return out, nil
}

// CodingPath returns the path of the value currently being encoded.
func (e *Encoder) CodingPath() []codingpath.Segment {
	return e.path.Segments()
}

// UserInfo returns Options.UserInfo.
func (e *Encoder) UserInfo() map[string]any {
	return e.opts.UserInfo
}

// DateStrategy returns the configured date representation.
func (e *Encoder) DateStrategy() DateStrategy {
	return e.opts.DateStrategy
}

// Container returns the keyed container for the current value. Asking again
// for the same value returns the same container; asking after a different
// container kind was taken is a contract violation.
func (e *Encoder) Container() *KeyedEncodingContainer {
	var node *value.Value
	if e.canEncodeNewValue() {
		node = e.pushKeyed()
	} else {
		node = e.reuseTop(value.KindMap, "keyed")
	}
	return &KeyedEncodingContainer{enc: e, node: node, path: e.path}
}

// UnkeyedContainer returns the unkeyed container for the current value, with
// the same reuse rules as Container.
func (e *Encoder) UnkeyedContainer() *UnkeyedEncodingContainer {
	var node *value.Value
	if e.canEncodeNewValue() {
		node = e.pushUnkeyed()
	} else {
		node = e.reuseTop(value.KindList, "unkeyed")
	}
	return &UnkeyedEncodingContainer{enc: e, node: node, path: e.path}
}

// SingleValueContainer returns a container that accepts exactly one value.
func (e *Encoder) SingleValueContainer() *SingleValueEncodingContainer {
	return &SingleValueEncodingContainer{enc: e}
}

// canEncodeNewValue reports whether the current value has not yet produced a
// container. Every enclosing value owns exactly one stack entry, so the stack
// is as deep as the coding path until the current value pushes its own.
func (e *Encoder) canEncodeNewValue() bool {
	e.mustBeRunning()
	return e.stack.len() == e.path.Depth()
}

// release hands the stack back to the pool and detaches the run copy from it.
func (e *Encoder) release() {
	putValueStack(e.stack)
	e.stack = nil
}

func (e *Encoder) mustBeRunning() {
	if e.stack == nil {
		errors.Violation(e.path.Strings(), "encoder used outside of an Encode call")
	}
}

func (e *Encoder) pushKeyed() *value.Value {
	node := value.EmptyMap()
	e.stack.push(node)
	return node
}

func (e *Encoder) pushUnkeyed() *value.Value {
	node := value.EmptyList()
	e.stack.push(node)
	return node
}

func (e *Encoder) reuseTop(kind value.Kind, what string) *value.Value {
	top, ok := e.stack.top()
	if !ok || top.Kind() != kind {
		errors.Violation(e.path.Strings(),
			"attempt to push new "+what+" encoding container when already previously encoded at this path")
	}
	return top
}

// with runs fn with the coding path rebound to path, restoring it on return.
func (e *Encoder) with(path *codingpath.Node, fn func() (*value.Value, error)) (*value.Value, error) {
	saved := e.path
	e.path = path
	defer func() { e.path = saved }()
	return fn()
}

// boxGeneric runs a contract implementation and collects the container it
// pushed. A nil result means the value encoded nothing.
func (e *Encoder) boxGeneric(fn func(*Encoder) error) (*value.Value, error) {
	e.mustBeRunning()
	depth := e.stack.len()
	if err := fn(e); err != nil {
		if e.stack.len() > depth {
			e.stack.pop()
		}
		return nil, err
	}
	if e.stack.len() == depth {
		return nil, nil
	}
	return e.stack.pop(), nil
}

// boxNested boxes a value that sits inside a container. A value that encoded
// nothing becomes an empty map there.
func (e *Encoder) boxNested(path *codingpath.Node, v reflect.Value) (*value.Value, error) {
	return e.with(path, func() (*value.Value, error) {
		node, err := e.boxValue(v)
		if err != nil {
			return nil, err
		}
		if node == nil {
			return value.EmptyMap(), nil
		}
		return node, nil
	})
}

func (e *Encoder) box(v any) (*value.Value, error) {
	if v == nil {
		return value.Null(), nil
	}
	return e.boxValue(reflect.ValueOf(v))
}

func (e *Encoder) boxValue(rv reflect.Value) (*value.Value, error) {
	if !rv.IsValid() {
		return value.Null(), nil
	}
	info := classifier.Classify(rv.Type())
	if (info.Kind == types.KindPointer || info.Kind == types.KindInterface) && rv.IsNil() {
		return value.Null(), nil
	}

	switch {
	case info.Encodable:
		return e.boxGeneric(rv.Interface().(Encodable).EncodeTo)
	case info.AddrEncodable:
		return e.boxGeneric(addressOf(rv).Interface().(Encodable).EncodeTo)
	}

	switch info.Kind {
	case types.KindBool:
		return value.Bool(rv.Bool()), nil
	case types.KindInt:
		return value.Int(int(rv.Int())), nil
	case types.KindUint:
		return value.Int(int(rv.Uint())), nil
	case types.KindFloat32:
		return value.Float32(float32(rv.Float())), nil
	case types.KindFloat64:
		return value.Float64(rv.Float()), nil
	case types.KindString:
		return value.String(rv.String()), nil
	case types.KindDate:
		return e.boxDate(rv)
	case types.KindBlob:
		return e.boxBlob(rv.Bytes())
	case types.KindURL:
		return e.boxURL(rv), nil
	case types.KindPrimitiveList:
		return value.PrimitiveList(primitiveBacking(rv)), nil
	case types.KindStringMap:
		return e.boxKeyedMap(rv, func(k reflect.Value) (string, error) { return k.String(), nil })
	case types.KindIntMap:
		return e.boxKeyedMap(rv, intKeyText)
	case types.KindTextMap:
		return e.boxKeyedMap(rv, textKeyText)
	case types.KindEntryMap:
		return e.boxEntryMap(rv)
	case types.KindSequence:
		return e.boxSequence(rv)
	case types.KindPointer, types.KindInterface:
		return e.boxValue(rv.Elem())
	default:
		err := errors.InvalidValue(errors.PhaseEncode, e.path.Strings(), nil,
			fmt.Sprintf("values of kind %s cannot be encoded", rv.Kind()))
		err.GoType = info.Name
		return nil, err
	}
}

// boxKeyedMap encodes a map through a keyed container, one entry per key in
// text form.
func (e *Encoder) boxKeyedMap(rv reflect.Value, keyText func(reflect.Value) (string, error)) (*value.Value, error) {
	type entry struct {
		val  reflect.Value
		text string
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		text, err := keyText(iter.Key())
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidValue).
				Path(e.path.Strings()...).
				Value(iter.Key().Interface()).
				Cause(err).
				Detail("cannot convert map key to text").
				Build()
		}
		entries = append(entries, entry{text: text, val: iter.Value()})
	}
	// sorted so the first failure is deterministic
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.text, b.text) })

	return e.boxGeneric(func(e *Encoder) error {
		c := e.Container()
		for _, en := range entries {
			if err := c.encodeValue(en.text, en.val); err != nil {
				return err
			}
		}
		return nil
	})
}

// boxEntryMap encodes a map whose keys are not text-like as a flat list of
// alternating keys and values.
func (e *Encoder) boxEntryMap(rv reflect.Value) (*value.Value, error) {
	return e.boxGeneric(func(e *Encoder) error {
		c := e.UnkeyedContainer()
		iter := rv.MapRange()
		for iter.Next() {
			if err := c.encodeValue(iter.Key()); err != nil {
				return err
			}
			if err := c.encodeValue(iter.Value()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *Encoder) boxSequence(rv reflect.Value) (*value.Value, error) {
	return e.boxGeneric(func(e *Encoder) error {
		c := e.UnkeyedContainer()
		for i := range rv.Len() {
			if err := c.encodeValue(rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	})
}

// addressOf returns a pointer to rv, copying it when it is not addressable.
func addressOf(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv.Addr()
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p
}

// primitiveBacking copies a scalar slice into its unnamed slice type so the
// container never aliases caller memory.
func primitiveBacking(rv reflect.Value) any {
	plain := reflect.SliceOf(rv.Type().Elem())
	if rv.IsNil() {
		return reflect.Zero(plain).Interface()
	}
	out := reflect.MakeSlice(plain, rv.Len(), rv.Len())
	reflect.Copy(out, rv)
	return out.Interface()
}

func intKeyText(k reflect.Value) (string, error) {
	if k.CanInt() {
		return strconv.FormatInt(k.Int(), 10), nil
	}
	return strconv.FormatUint(k.Uint(), 10), nil
}

func textKeyText(k reflect.Value) (string, error) {
	b, err := k.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
