package coder

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/dictcoder/coder/internal/coerce"
	"github.com/wippyai/dictcoder/coder/internal/types"
	"github.com/wippyai/dictcoder/codingpath"
	"github.com/wippyai/dictcoder/errors"
)

// Decoder rebuilds typed values from map[string]any trees.
//
// Like Encoder, a Decoder returned by NewDecoder is only configuration; every
// Decode call works on its own copy, which is what DecodeFrom receives. The
// copy and its containers are only valid until DecodeFrom returns.
type Decoder struct {
	stack *stack[any]
	path  *codingpath.Node
	opts  Options
}

func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

func NewDecoderWithDefaults() *Decoder {
	return NewDecoder(DefaultOptions())
}

// Decode fills the value target points to from the container.
func (d *Decoder) Decode(target any, from map[string]any) error {
	return d.DecodeValue(target, from)
}

// DecodeValue is Decode for an arbitrary top-level value, such as a list or a
// scalar taken out of a larger container.
func (d *Decoder) DecodeValue(target any, from any) error {
	dst, err := targetValue(nil, target)
	if err != nil {
		return err
	}
	run := &Decoder{opts: d.opts, stack: getRawStack()}
	defer run.release()

	if err := run.unbox(from, dst); err != nil {
		Logger().Debug("decode failed",
			append(failureFields(err), zap.String("type", dst.Type().String()))...)
		return err
	}
	return nil
}

// CodingPath returns the path of the value currently being decoded.
func (d *Decoder) CodingPath() []codingpath.Segment {
	return d.path.Segments()
}

// UserInfo returns Options.UserInfo.
func (d *Decoder) UserInfo() map[string]any {
	return d.opts.UserInfo
}

// DateStrategy returns the configured date representation.
func (d *Decoder) DateStrategy() DateStrategy {
	return d.opts.DateStrategy
}

// Container returns a keyed view of the current value.
func (d *Decoder) Container() (*KeyedDecodingContainer, error) {
	raw := d.top()
	if coerce.IsNull(raw) {
		return nil, errors.New(errors.PhaseDecode, errors.KindValueNotFound).
			Path(d.path.Strings()...).
			GoType("keyed container").
			Detail("cannot get keyed decoding container -- found null value instead").
			Build()
	}
	m, ok := asStringMap(raw)
	if !ok {
		return nil, typeMismatch(d.path, "map[string]any", raw)
	}
	return &KeyedDecodingContainer{dec: d, m: m, path: d.path}, nil
}

// UnkeyedContainer returns a forward-only view of the current list value.
func (d *Decoder) UnkeyedContainer() (*UnkeyedDecodingContainer, error) {
	raw := d.top()
	if coerce.IsNull(raw) {
		return nil, errors.New(errors.PhaseDecode, errors.KindValueNotFound).
			Path(d.path.Strings()...).
			GoType("unkeyed container").
			Detail("cannot get unkeyed decoding container -- found null value instead").
			Build()
	}
	list, ok := asList(raw)
	if !ok {
		return nil, typeMismatch(d.path, "[]any", raw)
	}
	return &UnkeyedDecodingContainer{dec: d, list: list, path: d.path}, nil
}

// SingleValueContainer returns a view of the current value as one scalar.
func (d *Decoder) SingleValueContainer() *SingleValueDecodingContainer {
	return &SingleValueDecodingContainer{dec: d}
}

func (d *Decoder) release() {
	putRawStack(d.stack)
	d.stack = nil
}

func (d *Decoder) mustBeRunning() {
	if d.stack == nil {
		errors.Violation(d.path.Strings(), "decoder used outside of a Decode call")
	}
}

func (d *Decoder) top() any {
	d.mustBeRunning()
	raw, ok := d.stack.top()
	if !ok {
		errors.Violation(d.path.Strings(), "no value is being decoded")
	}
	return raw
}

func (d *Decoder) with(path *codingpath.Node, fn func() error) error {
	saved := d.path
	d.path = path
	defer func() { d.path = saved }()
	return fn()
}

// unboxGeneric makes raw the current value while fn runs.
func (d *Decoder) unboxGeneric(raw any, fn func(*Decoder) error) error {
	d.mustBeRunning()
	d.stack.push(raw)
	defer d.stack.pop()
	return fn(d)
}

func (d *Decoder) unboxAt(path *codingpath.Node, raw any, dst reflect.Value) error {
	return d.with(path, func() error {
		return d.unbox(raw, dst)
	})
}

// unbox decodes raw into the settable value dst.
func (d *Decoder) unbox(raw any, dst reflect.Value) error {
	info := classifier.Classify(dst.Type())
	if info.Decodable {
		return d.unboxGeneric(raw, dst.Addr().Interface().(Decodable).DecodeFrom)
	}

	switch info.Kind {
	case types.KindBool:
		v, err := decodeBool(d.path, raw, info.Name)
		if err != nil {
			return err
		}
		dst.SetBool(v)
	case types.KindInt:
		v, err := decodeInteger[int64](d.path, raw, info.Name)
		if err != nil {
			return err
		}
		dst.SetInt(v)
	case types.KindUint:
		v, err := decodeInteger[uint64](d.path, raw, info.Name)
		if err != nil {
			return err
		}
		dst.SetUint(v)
	case types.KindFloat32:
		v, err := decodeFloat32(d.path, raw, info.Name)
		if err != nil {
			return err
		}
		dst.SetFloat(float64(v))
	case types.KindFloat64:
		v, err := decodeFloat64(d.path, raw, info.Name)
		if err != nil {
			return err
		}
		dst.SetFloat(v)
	case types.KindString:
		v, err := decodeString(d.path, raw, info.Name)
		if err != nil {
			return err
		}
		dst.SetString(v)
	case types.KindDate:
		return d.unboxDate(raw, dst)
	case types.KindBlob:
		return d.unboxBlob(raw, dst)
	case types.KindURL:
		return d.unboxURL(raw, dst)
	case types.KindPrimitiveList, types.KindSequence:
		return d.unboxSequence(raw, dst, info)
	case types.KindStringMap, types.KindIntMap, types.KindTextMap:
		return d.unboxKeyedMap(raw, dst, info)
	case types.KindEntryMap:
		return d.unboxEntryMap(raw, dst, info)
	case types.KindPointer:
		if coerce.IsNull(raw) {
			dst.SetZero()
			return nil
		}
		p := reflect.New(info.Elem)
		if err := d.unbox(raw, p.Elem()); err != nil {
			return err
		}
		dst.Set(p)
	case types.KindInterface:
		if coerce.IsNull(raw) {
			dst.SetZero()
			return nil
		}
		rv := reflect.ValueOf(raw)
		if !rv.Type().AssignableTo(dst.Type()) {
			return typeMismatch(d.path, info.Name, raw)
		}
		dst.Set(rv)
	default:
		return errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Path(d.path.Strings()...).
			GoType(info.Name).
			Detail("type does not implement Decodable and has no built-in mapping").
			Build()
	}
	return nil
}

func (d *Decoder) unboxSequence(raw any, dst reflect.Value, info *types.Info) error {
	if coerce.IsNull(raw) {
		return valueNotFound(d.path, info.Name)
	}
	if info.Kind == types.KindPrimitiveList {
		rv := reflect.ValueOf(raw)
		if rv.Kind() == reflect.Slice && rv.Type().Elem() == info.Elem {
			if rv.IsNil() {
				dst.SetZero()
				return nil
			}
			out := reflect.MakeSlice(dst.Type(), rv.Len(), rv.Len())
			reflect.Copy(out, rv)
			dst.Set(out)
			return nil
		}
	}

	list, ok := asList(raw)
	if !ok {
		return typeMismatch(d.path, info.Name, raw)
	}
	if dst.Kind() == reflect.Array {
		if list.len() < dst.Len() {
			return errors.New(errors.PhaseDecode, errors.KindValueNotFound).
				Path(d.path.AppendIndex(list.len()).Strings()...).
				GoType(info.Elem.String()).
				Detail("unkeyed container is at end").
				Build()
		}
		if list.len() > dst.Len() {
			return errors.DataCorrupted(errors.PhaseDecode, d.path.Strings(), raw,
				fmt.Sprintf("expected %d elements for %s but found %d", dst.Len(), info.Name, list.len()))
		}
		for i := range dst.Len() {
			if err := d.unboxAt(d.path.AppendIndex(i), list.at(i), dst.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}

	out := reflect.MakeSlice(dst.Type(), list.len(), list.len())
	for i := range list.len() {
		if err := d.unboxAt(d.path.AppendIndex(i), list.at(i), out.Index(i)); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}

func (d *Decoder) unboxKeyedMap(raw any, dst reflect.Value, info *types.Info) error {
	if coerce.IsNull(raw) {
		return valueNotFound(d.path, info.Name)
	}
	m, ok := asStringMap(raw)
	if !ok {
		return typeMismatch(d.path, info.Name, raw)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := reflect.MakeMapWithSize(dst.Type(), len(m))
	for _, k := range keys {
		path := d.path.AppendKey(k)
		key, err := mapKey(path, k, info)
		if err != nil {
			return err
		}
		val := reflect.New(info.Elem).Elem()
		if err := d.unboxAt(path, m[k], val); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
	}
	dst.Set(out)
	return nil
}

// unboxEntryMap reads the alternating key, value list written for maps with
// non-text keys.
func (d *Decoder) unboxEntryMap(raw any, dst reflect.Value, info *types.Info) error {
	if coerce.IsNull(raw) {
		return valueNotFound(d.path, info.Name)
	}
	list, ok := asList(raw)
	if !ok {
		return typeMismatch(d.path, info.Name, raw)
	}
	if list.len()%2 != 0 {
		return errors.DataCorrupted(errors.PhaseDecode, d.path.Strings(), raw,
			"expected an even number of elements for a map with non-text keys")
	}
	out := reflect.MakeMapWithSize(dst.Type(), list.len()/2)
	for i := 0; i < list.len(); i += 2 {
		key := reflect.New(info.Key).Elem()
		if err := d.unboxAt(d.path.AppendIndex(i), list.at(i), key); err != nil {
			return err
		}
		val := reflect.New(info.Elem).Elem()
		if err := d.unboxAt(d.path.AppendIndex(i+1), list.at(i+1), val); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
	}
	dst.Set(out)
	return nil
}

func mapKey(path *codingpath.Node, k string, info *types.Info) (reflect.Value, error) {
	kt := info.Key
	switch info.Kind {
	case types.KindIntMap:
		key := reflect.New(kt).Elem()
		if key.CanInt() {
			n, err := strconv.ParseInt(k, 10, kt.Bits())
			if err != nil {
				return key, badKey(path, k, err)
			}
			key.SetInt(n)
		} else {
			n, err := strconv.ParseUint(k, 10, kt.Bits())
			if err != nil {
				return key, badKey(path, k, err)
			}
			key.SetUint(n)
		}
		return key, nil
	case types.KindTextMap:
		if !info.TextKey {
			return reflect.Value{}, errors.New(errors.PhaseDecode, errors.KindUnsupported).
				Path(path.Strings()...).
				GoType(kt.String()).
				Detail("map key type does not implement encoding.TextUnmarshaler").
				Build()
		}
		p := reflect.New(kt)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(k)); err != nil {
			return p.Elem(), badKey(path, k, err)
		}
		return p.Elem(), nil
	default:
		return reflect.ValueOf(k).Convert(kt), nil
	}
}

func badKey(path *codingpath.Node, k string, cause error) error {
	return errors.New(errors.PhaseDecode, errors.KindDataCorrupted).
		Path(path.Strings()...).
		Value(k).
		Cause(cause).
		Detail("cannot convert map key %q", k).
		Build()
}

// targetValue checks that target is a non-nil pointer and returns its element.
func targetValue(path *codingpath.Node, target any) (reflect.Value, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidValue).
			Path(path.Strings()...).
			GoType(typeName(target)).
			Detail("decode target must be a non-nil pointer").
			Build()
	}
	return rv.Elem(), nil
}

func valueNotFound(path *codingpath.Node, goType string) error {
	return errors.ValueNotFound(errors.PhaseDecode, path.Strings(), goType)
}

func typeMismatch(path *codingpath.Node, goType string, found any) error {
	err := errors.TypeMismatch(errors.PhaseDecode, path.Strings(), goType, coerce.TypeName(found))
	err.Detail = fmt.Sprintf("expected to decode %s but found %s instead", goType, err.Found)
	return err
}

// Scalar readers shared by all decoding containers. A nil raw value is the
// container's null marker.

func decodeInteger[T coerce.Integer](path *codingpath.Node, raw any, goType string) (T, error) {
	if coerce.IsNull(raw) {
		return 0, valueNotFound(path, goType)
	}
	v, ok := coerce.Truncate[T](raw)
	if !ok {
		return 0, typeMismatch(path, goType, raw)
	}
	return v, nil
}

func decodeFloat32(path *codingpath.Node, raw any, goType string) (float32, error) {
	if coerce.IsNull(raw) {
		return 0, valueNotFound(path, goType)
	}
	v, ok := coerce.ToFloat32(raw)
	if !ok {
		return 0, typeMismatch(path, goType, raw)
	}
	return v, nil
}

func decodeFloat64(path *codingpath.Node, raw any, goType string) (float64, error) {
	if coerce.IsNull(raw) {
		return 0, valueNotFound(path, goType)
	}
	v, ok := coerce.ToFloat64(raw)
	if !ok {
		return 0, typeMismatch(path, goType, raw)
	}
	return v, nil
}

func decodeString(path *codingpath.Node, raw any, goType string) (string, error) {
	if coerce.IsNull(raw) {
		return "", valueNotFound(path, goType)
	}
	v, ok := coerce.ToString(raw)
	if !ok {
		return "", typeMismatch(path, goType, raw)
	}
	return v, nil
}

func decodeBool(path *codingpath.Node, raw any, goType string) (bool, error) {
	if coerce.IsNull(raw) {
		return false, valueNotFound(path, goType)
	}
	v, ok := coerce.ToBool(raw)
	if !ok {
		return false, typeMismatch(path, goType, raw)
	}
	return v, nil
}

// listView reads []any directly and any other slice or array through
// reflection, so primitive lists stored by the encoder decode element-wise.
type listView struct {
	items []any
	rv    reflect.Value
}

func asList(raw any) (listView, bool) {
	switch v := raw.(type) {
	case []any:
		return listView{items: v}, true
	case nil, string:
		return listView{}, false
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return listView{rv: rv}, true
	}
	return listView{}, false
}

func (l listView) len() int {
	if l.rv.IsValid() {
		return l.rv.Len()
	}
	return len(l.items)
}

func (l listView) at(i int) any {
	if l.rv.IsValid() {
		return l.rv.Index(i).Interface()
	}
	return l.items[i]
}

func asStringMap(raw any) (map[string]any, bool) {
	if m, ok := raw.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}
