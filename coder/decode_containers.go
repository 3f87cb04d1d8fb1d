package coder

import (
	"reflect"
	"slices"

	"github.com/wippyai/dictcoder/codingpath"
	"github.com/wippyai/dictcoder/errors"
)

// KeyedDecodingContainer reads entries of a map-shaped value.
type KeyedDecodingContainer struct {
	dec  *Decoder
	m    map[string]any
	path *codingpath.Node
}

// CodingPath returns the path of the map this container reads.
func (c *KeyedDecodingContainer) CodingPath() []codingpath.Segment {
	return c.path.Segments()
}

// Contains reports whether key is present, even if its value is null.
func (c *KeyedDecodingContainer) Contains(key string) bool {
	_, ok := c.m[key]
	return ok
}

// AllKeys returns the keys of the map in sorted order.
func (c *KeyedDecodingContainer) AllKeys() []string {
	keys := make([]string, 0, len(c.m))
	for k := range c.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// DecodeNil reports whether key is absent or holds null.
func (c *KeyedDecodingContainer) DecodeNil(key string) bool {
	return c.m[key] == nil
}

func decodeKey[T any](c *KeyedDecodingContainer, key, goType string,
	read func(*codingpath.Node, any, string) (T, error),
) (T, error) {
	return read(c.path.AppendKey(key), c.m[key], goType)
}

func (c *KeyedDecodingContainer) DecodeBool(key string) (bool, error) {
	return decodeKey(c, key, "bool", decodeBool)
}

func (c *KeyedDecodingContainer) DecodeInt(key string) (int, error) {
	return decodeKey(c, key, "int", decodeInteger[int])
}

func (c *KeyedDecodingContainer) DecodeInt8(key string) (int8, error) {
	return decodeKey(c, key, "int8", decodeInteger[int8])
}

func (c *KeyedDecodingContainer) DecodeInt16(key string) (int16, error) {
	return decodeKey(c, key, "int16", decodeInteger[int16])
}

func (c *KeyedDecodingContainer) DecodeInt32(key string) (int32, error) {
	return decodeKey(c, key, "int32", decodeInteger[int32])
}

func (c *KeyedDecodingContainer) DecodeInt64(key string) (int64, error) {
	return decodeKey(c, key, "int64", decodeInteger[int64])
}

func (c *KeyedDecodingContainer) DecodeUint(key string) (uint, error) {
	return decodeKey(c, key, "uint", decodeInteger[uint])
}

func (c *KeyedDecodingContainer) DecodeUint8(key string) (uint8, error) {
	return decodeKey(c, key, "uint8", decodeInteger[uint8])
}

func (c *KeyedDecodingContainer) DecodeUint16(key string) (uint16, error) {
	return decodeKey(c, key, "uint16", decodeInteger[uint16])
}

func (c *KeyedDecodingContainer) DecodeUint32(key string) (uint32, error) {
	return decodeKey(c, key, "uint32", decodeInteger[uint32])
}

func (c *KeyedDecodingContainer) DecodeUint64(key string) (uint64, error) {
	return decodeKey(c, key, "uint64", decodeInteger[uint64])
}

func (c *KeyedDecodingContainer) DecodeFloat32(key string) (float32, error) {
	return decodeKey(c, key, "float32", decodeFloat32)
}

func (c *KeyedDecodingContainer) DecodeFloat64(key string) (float64, error) {
	return decodeKey(c, key, "float64", decodeFloat64)
}

func (c *KeyedDecodingContainer) DecodeString(key string) (string, error) {
	return decodeKey(c, key, "string", decodeString)
}

// Decode decodes the value under key into target, which must be a non-nil
// pointer. An absent key is an error unless target points to a pointer or
// interface, which are left nil.
func (c *KeyedDecodingContainer) Decode(key string, target any) error {
	path := c.path.AppendKey(key)
	dst, err := targetValue(path, target)
	if err != nil {
		return err
	}
	raw, ok := c.m[key]
	if !ok && !nullable(dst.Type()) {
		return errors.New(errors.PhaseDecode, errors.KindValueNotFound).
			Path(path.Strings()...).
			GoType(dst.Type().String()).
			Detail("no value associated with key %q", key).
			Build()
	}
	return c.dec.unboxAt(path, raw, dst)
}

// DecodeIfPresent decodes key into target when it holds a non-null value and
// reports whether it did. Otherwise target is left untouched.
func (c *KeyedDecodingContainer) DecodeIfPresent(key string, target any) (bool, error) {
	if c.m[key] == nil {
		return false, nil
	}
	if err := c.Decode(key, target); err != nil {
		return false, err
	}
	return true, nil
}

// NestedContainer returns a keyed view of the map stored under key.
func (c *KeyedDecodingContainer) NestedContainer(key string) (*KeyedDecodingContainer, error) {
	path := c.path.AppendKey(key)
	raw, err := c.nestedValue(key, path, "keyed")
	if err != nil {
		return nil, err
	}
	m, ok := asStringMap(raw)
	if !ok {
		return nil, typeMismatch(path, "map[string]any", raw)
	}
	return &KeyedDecodingContainer{dec: c.dec, m: m, path: path}, nil
}

// NestedUnkeyedContainer returns a list view of the value stored under key.
func (c *KeyedDecodingContainer) NestedUnkeyedContainer(key string) (*UnkeyedDecodingContainer, error) {
	path := c.path.AppendKey(key)
	raw, err := c.nestedValue(key, path, "unkeyed")
	if err != nil {
		return nil, err
	}
	list, ok := asList(raw)
	if !ok {
		return nil, typeMismatch(path, "[]any", raw)
	}
	return &UnkeyedDecodingContainer{dec: c.dec, list: list, path: path}, nil
}

func (c *KeyedDecodingContainer) nestedValue(key string, path *codingpath.Node, what string) (any, error) {
	raw := c.m[key]
	if raw == nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindValueNotFound).
			Path(path.Strings()...).
			GoType(what+" container").
			Detail("cannot get nested %s container -- no value found for key %q", what, key).
			Build()
	}
	return raw, nil
}

// SuperDecoder is not supported.
func (c *KeyedDecodingContainer) SuperDecoder() *Decoder {
	errors.Violation(c.path.Strings(), "superDecoder is not supported")
	return nil
}

// SuperDecoderForKey is not supported.
func (c *KeyedDecodingContainer) SuperDecoderForKey(key string) *Decoder {
	errors.Violation(c.path.AppendKey(key).Strings(), "superDecoder(forKey:) is not supported")
	return nil
}

// UnkeyedDecodingContainer reads a list value front to back. Every read
// looks at the current element first and only advances when it succeeds, so
// a failed read can be retried as a different type.
type UnkeyedDecodingContainer struct {
	dec   *Decoder
	path  *codingpath.Node
	list  listView
	index int
}

// CodingPath returns the path of the list this container reads.
func (c *UnkeyedDecodingContainer) CodingPath() []codingpath.Segment {
	return c.path.Segments()
}

func (c *UnkeyedDecodingContainer) Count() int        { return c.list.len() }
func (c *UnkeyedDecodingContainer) IsAtEnd() bool     { return c.index >= c.list.len() }
func (c *UnkeyedDecodingContainer) CurrentIndex() int { return c.index }

func (c *UnkeyedDecodingContainer) peek(goType string) (any, *codingpath.Node, error) {
	path := c.path.AppendIndex(c.index)
	if c.IsAtEnd() {
		return nil, path, errors.New(errors.PhaseDecode, errors.KindValueNotFound).
			Path(path.Strings()...).
			GoType(goType).
			Detail("unkeyed container is at end").
			Build()
	}
	return c.list.at(c.index), path, nil
}

// DecodeNil consumes the current element only if it is null.
func (c *UnkeyedDecodingContainer) DecodeNil() bool {
	if c.IsAtEnd() || c.list.at(c.index) != nil {
		return false
	}
	c.index++
	return true
}

func decodeNext[T any](c *UnkeyedDecodingContainer, goType string,
	read func(*codingpath.Node, any, string) (T, error),
) (T, error) {
	raw, path, err := c.peek(goType)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := read(path, raw, goType)
	if err != nil {
		return v, err
	}
	c.index++
	return v, nil
}

func (c *UnkeyedDecodingContainer) DecodeBool() (bool, error) {
	return decodeNext(c, "bool", decodeBool)
}

func (c *UnkeyedDecodingContainer) DecodeInt() (int, error) {
	return decodeNext(c, "int", decodeInteger[int])
}

func (c *UnkeyedDecodingContainer) DecodeInt8() (int8, error) {
	return decodeNext(c, "int8", decodeInteger[int8])
}

func (c *UnkeyedDecodingContainer) DecodeInt16() (int16, error) {
	return decodeNext(c, "int16", decodeInteger[int16])
}

func (c *UnkeyedDecodingContainer) DecodeInt32() (int32, error) {
	return decodeNext(c, "int32", decodeInteger[int32])
}

func (c *UnkeyedDecodingContainer) DecodeInt64() (int64, error) {
	return decodeNext(c, "int64", decodeInteger[int64])
}

func (c *UnkeyedDecodingContainer) DecodeUint() (uint, error) {
	return decodeNext(c, "uint", decodeInteger[uint])
}

func (c *UnkeyedDecodingContainer) DecodeUint8() (uint8, error) {
	return decodeNext(c, "uint8", decodeInteger[uint8])
}

func (c *UnkeyedDecodingContainer) DecodeUint16() (uint16, error) {
	return decodeNext(c, "uint16", decodeInteger[uint16])
}

func (c *UnkeyedDecodingContainer) DecodeUint32() (uint32, error) {
	return decodeNext(c, "uint32", decodeInteger[uint32])
}

func (c *UnkeyedDecodingContainer) DecodeUint64() (uint64, error) {
	return decodeNext(c, "uint64", decodeInteger[uint64])
}

func (c *UnkeyedDecodingContainer) DecodeFloat32() (float32, error) {
	return decodeNext(c, "float32", decodeFloat32)
}

func (c *UnkeyedDecodingContainer) DecodeFloat64() (float64, error) {
	return decodeNext(c, "float64", decodeFloat64)
}

func (c *UnkeyedDecodingContainer) DecodeString() (string, error) {
	return decodeNext(c, "string", decodeString)
}

// Decode decodes the current element into target and advances on success.
func (c *UnkeyedDecodingContainer) Decode(target any) error {
	dst, err := targetValue(c.path.AppendIndex(c.index), target)
	if err != nil {
		return err
	}
	raw, path, err := c.peek(dst.Type().String())
	if err != nil {
		return err
	}
	if err := c.dec.unboxAt(path, raw, dst); err != nil {
		return err
	}
	c.index++
	return nil
}

// NestedContainer returns a keyed view of the current element and advances.
func (c *UnkeyedDecodingContainer) NestedContainer() (*KeyedDecodingContainer, error) {
	raw, path, err := c.peekNested("keyed")
	if err != nil {
		return nil, err
	}
	m, ok := asStringMap(raw)
	if !ok {
		return nil, typeMismatch(path, "map[string]any", raw)
	}
	c.index++
	return &KeyedDecodingContainer{dec: c.dec, m: m, path: path}, nil
}

// NestedUnkeyedContainer returns a list view of the current element and advances.
func (c *UnkeyedDecodingContainer) NestedUnkeyedContainer() (*UnkeyedDecodingContainer, error) {
	raw, path, err := c.peekNested("unkeyed")
	if err != nil {
		return nil, err
	}
	list, ok := asList(raw)
	if !ok {
		return nil, typeMismatch(path, "[]any", raw)
	}
	c.index++
	return &UnkeyedDecodingContainer{dec: c.dec, list: list, path: path}, nil
}

func (c *UnkeyedDecodingContainer) peekNested(what string) (any, *codingpath.Node, error) {
	raw, path, err := c.peek(what + " container")
	if err != nil {
		return nil, path, err
	}
	if raw == nil {
		return nil, path, errors.New(errors.PhaseDecode, errors.KindValueNotFound).
			Path(path.Strings()...).
			GoType(what+" container").
			Detail("cannot get nested %s container -- found null value instead", what).
			Build()
	}
	return raw, path, nil
}

// SuperDecoder is not supported.
func (c *UnkeyedDecodingContainer) SuperDecoder() *Decoder {
	errors.Violation(c.path.AppendIndex(c.index).Strings(), "superDecoder is not supported")
	return nil
}

// SingleValueDecodingContainer reads the current value as a whole.
type SingleValueDecodingContainer struct {
	dec *Decoder
}

func (c *SingleValueDecodingContainer) CodingPath() []codingpath.Segment {
	return c.dec.path.Segments()
}

func (c *SingleValueDecodingContainer) DecodeNil() bool {
	return c.dec.top() == nil
}

func decodeSingle[T any](c *SingleValueDecodingContainer, goType string,
	read func(*codingpath.Node, any, string) (T, error),
) (T, error) {
	return read(c.dec.path, c.dec.top(), goType)
}

func (c *SingleValueDecodingContainer) DecodeBool() (bool, error) {
	return decodeSingle(c, "bool", decodeBool)
}

func (c *SingleValueDecodingContainer) DecodeInt() (int, error) {
	return decodeSingle(c, "int", decodeInteger[int])
}

func (c *SingleValueDecodingContainer) DecodeInt8() (int8, error) {
	return decodeSingle(c, "int8", decodeInteger[int8])
}

func (c *SingleValueDecodingContainer) DecodeInt16() (int16, error) {
	return decodeSingle(c, "int16", decodeInteger[int16])
}

func (c *SingleValueDecodingContainer) DecodeInt32() (int32, error) {
	return decodeSingle(c, "int32", decodeInteger[int32])
}

func (c *SingleValueDecodingContainer) DecodeInt64() (int64, error) {
	return decodeSingle(c, "int64", decodeInteger[int64])
}

func (c *SingleValueDecodingContainer) DecodeUint() (uint, error) {
	return decodeSingle(c, "uint", decodeInteger[uint])
}

func (c *SingleValueDecodingContainer) DecodeUint8() (uint8, error) {
	return decodeSingle(c, "uint8", decodeInteger[uint8])
}

func (c *SingleValueDecodingContainer) DecodeUint16() (uint16, error) {
	return decodeSingle(c, "uint16", decodeInteger[uint16])
}

func (c *SingleValueDecodingContainer) DecodeUint32() (uint32, error) {
	return decodeSingle(c, "uint32", decodeInteger[uint32])
}

func (c *SingleValueDecodingContainer) DecodeUint64() (uint64, error) {
	return decodeSingle(c, "uint64", decodeInteger[uint64])
}

func (c *SingleValueDecodingContainer) DecodeFloat32() (float32, error) {
	return decodeSingle(c, "float32", decodeFloat32)
}

func (c *SingleValueDecodingContainer) DecodeFloat64() (float64, error) {
	return decodeSingle(c, "float64", decodeFloat64)
}

func (c *SingleValueDecodingContainer) DecodeString() (string, error) {
	return decodeSingle(c, "string", decodeString)
}

// Decode decodes the current value into target.
func (c *SingleValueDecodingContainer) Decode(target any) error {
	dst, err := targetValue(c.dec.path, target)
	if err != nil {
		return err
	}
	return c.dec.unbox(c.dec.top(), dst)
}

func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return true
	}
	return false
}
