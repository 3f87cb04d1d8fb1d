package coder

import (
	"reflect"

	"github.com/wippyai/dictcoder/coder/internal/value"
	"github.com/wippyai/dictcoder/codingpath"
	"github.com/wippyai/dictcoder/errors"
)

// KeyedEncodingContainer writes string-keyed entries into a map node.
type KeyedEncodingContainer struct {
	enc  *Encoder
	node *value.Value
	path *codingpath.Node
}

// CodingPath returns the path of the map this container writes.
func (c *KeyedEncodingContainer) CodingPath() []codingpath.Segment {
	return c.path.Segments()
}

func (c *KeyedEncodingContainer) EncodeNil(key string) {
	c.node.Insert(key, value.Null())
}

func (c *KeyedEncodingContainer) EncodeBool(key string, v bool) {
	c.node.Insert(key, value.Bool(v))
}

func (c *KeyedEncodingContainer) EncodeInt(key string, v int) {
	c.node.Insert(key, value.Int(v))
}

func (c *KeyedEncodingContainer) EncodeInt8(key string, v int8) {
	c.node.Insert(key, value.Int(int(v)))
}

func (c *KeyedEncodingContainer) EncodeInt16(key string, v int16) {
	c.node.Insert(key, value.Int(int(v)))
}

func (c *KeyedEncodingContainer) EncodeInt32(key string, v int32) {
	c.node.Insert(key, value.Int(int(v)))
}

func (c *KeyedEncodingContainer) EncodeInt64(key string, v int64) {
	c.node.Insert(key, value.Int(int(v)))
}

func (c *KeyedEncodingContainer) EncodeUint(key string, v uint) {
	c.node.Insert(key, value.Int(int(v)))
}

func (c *KeyedEncodingContainer) EncodeUint8(key string, v uint8) {
	c.node.Insert(key, value.Int(int(v)))
}

func (c *KeyedEncodingContainer) EncodeUint16(key string, v uint16) {
	c.node.Insert(key, value.Int(int(v)))
}

func (c *KeyedEncodingContainer) EncodeUint32(key string, v uint32) {
	c.node.Insert(key, value.Int(int(v)))
}

func (c *KeyedEncodingContainer) EncodeUint64(key string, v uint64) {
	c.node.Insert(key, value.Int(int(v)))
}

func (c *KeyedEncodingContainer) EncodeFloat32(key string, v float32) {
	c.node.Insert(key, value.Float32(v))
}

func (c *KeyedEncodingContainer) EncodeFloat64(key string, v float64) {
	c.node.Insert(key, value.Float64(v))
}

func (c *KeyedEncodingContainer) EncodeString(key string, v string) {
	c.node.Insert(key, value.String(v))
}

// Encode stores any encodable value under key.
func (c *KeyedEncodingContainer) Encode(key string, v any) error {
	return c.encodeValue(key, reflect.ValueOf(v))
}

func (c *KeyedEncodingContainer) encodeValue(key string, rv reflect.Value) error {
	child, err := c.enc.boxNested(c.path.AppendKey(key), rv)
	if err != nil {
		return err
	}
	c.node.Insert(key, child)
	return nil
}

// EncodeIfPresent stores v under key unless v is nil or a nil pointer, in
// which case the key is left absent.
func (c *KeyedEncodingContainer) EncodeIfPresent(key string, v any) error {
	if isNilValue(v) {
		return nil
	}
	return c.Encode(key, v)
}

// NestedContainer returns a keyed container stored under key. A second call
// with the same key returns the same map.
func (c *KeyedEncodingContainer) NestedContainer(key string) *KeyedEncodingContainer {
	node := c.nested(key, value.KindMap, value.EmptyMap)
	return &KeyedEncodingContainer{enc: c.enc, node: node, path: c.path.AppendKey(key)}
}

// NestedUnkeyedContainer returns an unkeyed container stored under key.
func (c *KeyedEncodingContainer) NestedUnkeyedContainer(key string) *UnkeyedEncodingContainer {
	node := c.nested(key, value.KindList, value.EmptyList)
	return &UnkeyedEncodingContainer{enc: c.enc, node: node, path: c.path.AppendKey(key)}
}

func (c *KeyedEncodingContainer) nested(key string, kind value.Kind, create func() *value.Value) *value.Value {
	if existing, ok := c.node.Get(key); ok {
		if existing.Kind() != kind {
			errors.Violation(c.path.AppendKey(key).Strings(),
				"attempt to re-encode into nested "+kind.String()+" container for key whose value is "+existing.Kind().String())
		}
		return existing
	}
	node := create()
	c.node.Insert(key, node)
	return node
}

// SuperEncoder is part of the container surface for parity with class
// hierarchies; delegating to a parent implementation is not supported.
func (c *KeyedEncodingContainer) SuperEncoder() *Encoder {
	errors.Violation(c.path.Strings(), "superEncoder is not supported")
	return nil
}

// SuperEncoderForKey is not supported.
func (c *KeyedEncodingContainer) SuperEncoderForKey(key string) *Encoder {
	errors.Violation(c.path.AppendKey(key).Strings(), "superEncoder(forKey:) is not supported")
	return nil
}

// UnkeyedEncodingContainer appends elements to a list node.
type UnkeyedEncodingContainer struct {
	enc  *Encoder
	node *value.Value
	path *codingpath.Node
}

// CodingPath returns the path of the list this container writes.
func (c *UnkeyedEncodingContainer) CodingPath() []codingpath.Segment {
	return c.path.Segments()
}

// Count is the number of elements appended so far.
func (c *UnkeyedEncodingContainer) Count() int {
	return c.node.Len()
}

func (c *UnkeyedEncodingContainer) EncodeNil()            { c.node.Append(value.Null()) }
func (c *UnkeyedEncodingContainer) EncodeBool(v bool)     { c.node.Append(value.Bool(v)) }
func (c *UnkeyedEncodingContainer) EncodeInt(v int)       { c.node.Append(value.Int(v)) }
func (c *UnkeyedEncodingContainer) EncodeInt8(v int8)     { c.node.Append(value.Int(int(v))) }
func (c *UnkeyedEncodingContainer) EncodeInt16(v int16)   { c.node.Append(value.Int(int(v))) }
func (c *UnkeyedEncodingContainer) EncodeInt32(v int32)   { c.node.Append(value.Int(int(v))) }
func (c *UnkeyedEncodingContainer) EncodeInt64(v int64)   { c.node.Append(value.Int(int(v))) }
func (c *UnkeyedEncodingContainer) EncodeUint(v uint)     { c.node.Append(value.Int(int(v))) }
func (c *UnkeyedEncodingContainer) EncodeUint8(v uint8)   { c.node.Append(value.Int(int(v))) }
func (c *UnkeyedEncodingContainer) EncodeUint16(v uint16) { c.node.Append(value.Int(int(v))) }
func (c *UnkeyedEncodingContainer) EncodeUint32(v uint32) { c.node.Append(value.Int(int(v))) }
func (c *UnkeyedEncodingContainer) EncodeUint64(v uint64) { c.node.Append(value.Int(int(v))) }
func (c *UnkeyedEncodingContainer) EncodeFloat32(v float32) {
	c.node.Append(value.Float32(v))
}
func (c *UnkeyedEncodingContainer) EncodeFloat64(v float64) {
	c.node.Append(value.Float64(v))
}
func (c *UnkeyedEncodingContainer) EncodeString(v string) { c.node.Append(value.String(v)) }

// Encode appends any encodable value.
func (c *UnkeyedEncodingContainer) Encode(v any) error {
	return c.encodeValue(reflect.ValueOf(v))
}

func (c *UnkeyedEncodingContainer) encodeValue(rv reflect.Value) error {
	child, err := c.enc.boxNested(c.path.AppendIndex(c.node.Len()), rv)
	if err != nil {
		return err
	}
	c.node.Append(child)
	return nil
}

// NestedContainer appends a new map and returns a keyed container over it.
func (c *UnkeyedEncodingContainer) NestedContainer() *KeyedEncodingContainer {
	path := c.path.AppendIndex(c.node.Len())
	node := value.EmptyMap()
	c.node.Append(node)
	return &KeyedEncodingContainer{enc: c.enc, node: node, path: path}
}

// NestedUnkeyedContainer appends a new list and returns a container over it.
func (c *UnkeyedEncodingContainer) NestedUnkeyedContainer() *UnkeyedEncodingContainer {
	path := c.path.AppendIndex(c.node.Len())
	node := value.EmptyList()
	c.node.Append(node)
	return &UnkeyedEncodingContainer{enc: c.enc, node: node, path: path}
}

// SuperEncoder is not supported.
func (c *UnkeyedEncodingContainer) SuperEncoder() *Encoder {
	errors.Violation(c.path.AppendIndex(c.node.Len()).Strings(), "superEncoder is not supported")
	return nil
}

// SingleValueEncodingContainer encodes the current value as one scalar or
// nested value. Only one encode call is allowed per value.
type SingleValueEncodingContainer struct {
	enc *Encoder
}

func (c *SingleValueEncodingContainer) CodingPath() []codingpath.Segment {
	return c.enc.path.Segments()
}

func (c *SingleValueEncodingContainer) push(v *value.Value) {
	if !c.enc.canEncodeNewValue() {
		errors.Violation(c.enc.path.Strings(),
			"attempt to encode value through single value container when previously value already encoded")
	}
	c.enc.stack.push(v)
}

func (c *SingleValueEncodingContainer) EncodeNil()              { c.push(value.Null()) }
func (c *SingleValueEncodingContainer) EncodeBool(v bool)       { c.push(value.Bool(v)) }
func (c *SingleValueEncodingContainer) EncodeInt(v int)         { c.push(value.Int(v)) }
func (c *SingleValueEncodingContainer) EncodeInt8(v int8)       { c.push(value.Int(int(v))) }
func (c *SingleValueEncodingContainer) EncodeInt16(v int16)     { c.push(value.Int(int(v))) }
func (c *SingleValueEncodingContainer) EncodeInt32(v int32)     { c.push(value.Int(int(v))) }
func (c *SingleValueEncodingContainer) EncodeInt64(v int64)     { c.push(value.Int(int(v))) }
func (c *SingleValueEncodingContainer) EncodeUint(v uint)       { c.push(value.Int(int(v))) }
func (c *SingleValueEncodingContainer) EncodeUint8(v uint8)     { c.push(value.Int(int(v))) }
func (c *SingleValueEncodingContainer) EncodeUint16(v uint16)   { c.push(value.Int(int(v))) }
func (c *SingleValueEncodingContainer) EncodeUint32(v uint32)   { c.push(value.Int(int(v))) }
func (c *SingleValueEncodingContainer) EncodeUint64(v uint64)   { c.push(value.Int(int(v))) }
func (c *SingleValueEncodingContainer) EncodeFloat32(v float32) { c.push(value.Float32(v)) }
func (c *SingleValueEncodingContainer) EncodeFloat64(v float64) { c.push(value.Float64(v)) }
func (c *SingleValueEncodingContainer) EncodeString(v string)   { c.push(value.String(v)) }

// Encode boxes v at the current path and makes it the current value.
func (c *SingleValueEncodingContainer) Encode(v any) error {
	if !c.enc.canEncodeNewValue() {
		errors.Violation(c.enc.path.Strings(),
			"attempt to encode value through single value container when previously value already encoded")
	}
	node, err := c.enc.boxValue(reflect.ValueOf(v))
	if err != nil {
		return err
	}
	if node == nil {
		node = value.EmptyMap()
	}
	c.enc.stack.push(node)
	return nil
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
