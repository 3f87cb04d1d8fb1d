package types

import (
	"encoding"
	"net/url"
	"reflect"
	"sync"
	"time"
)

var (
	timeType            = reflect.TypeFor[time.Time]()
	urlType             = reflect.TypeFor[url.URL]()
	byteType            = reflect.TypeFor[byte]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Info is the cached classification of one Go type.
type Info struct {
	GoType reflect.Type
	Elem   reflect.Type // element, pointee or map value type
	Key    reflect.Type // map key type
	Name   string
	Kind   Kind
	// Encodable is set when the type itself implements the encode contract.
	Encodable bool
	// AddrEncodable is set when only a pointer to the type implements it.
	AddrEncodable bool
	// Decodable is set when a pointer to the type implements the decode contract.
	Decodable bool
	// TextKey is set for TextMap kinds whose key pointer implements
	// encoding.TextUnmarshaler, so the map can be decoded as well as encoded.
	TextKey bool
}

// Classifier caches Info per reflect.Type. The contract interfaces are passed
// in so this package does not depend on the engines that define them.
type Classifier struct {
	encodable reflect.Type
	decodable reflect.Type
	cache     sync.Map // reflect.Type -> *Info
}

// NewClassifier creates a classifier for the given contract interface types.
func NewClassifier(encodable, decodable reflect.Type) *Classifier {
	return &Classifier{encodable: encodable, decodable: decodable}
}

// Classify returns the shape of t. A nil type classifies as an interface,
// which is how an untyped nil reaches the engines.
func (c *Classifier) Classify(t reflect.Type) *Info {
	if t == nil {
		return &Info{Kind: KindInterface, Name: "nil"}
	}
	if cached, ok := c.cache.Load(t); ok {
		return cached.(*Info)
	}
	info := c.classify(t)
	actual, _ := c.cache.LoadOrStore(t, info)
	return actual.(*Info)
}

func (c *Classifier) classify(t reflect.Type) *Info {
	info := &Info{GoType: t, Name: t.String()}
	if c.encodable != nil {
		switch {
		case t.Implements(c.encodable):
			info.Encodable = true
		case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(c.encodable):
			info.AddrEncodable = true
		}
	}
	if c.decodable != nil && t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(c.decodable) {
		info.Decodable = true
	}

	switch t {
	case timeType:
		info.Kind = KindDate
		return info
	case urlType:
		info.Kind = KindURL
		return info
	}

	switch t.Kind() {
	case reflect.Bool:
		info.Kind = KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		info.Kind = KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		info.Kind = KindUint
	case reflect.Float32:
		info.Kind = KindFloat32
	case reflect.Float64:
		info.Kind = KindFloat64
	case reflect.String:
		info.Kind = KindString
	case reflect.Slice:
		info.Elem = t.Elem()
		switch {
		case t.Elem() == byteType:
			info.Kind = KindBlob
		case isPrimitiveElem(t.Elem()):
			info.Kind = KindPrimitiveList
		default:
			info.Kind = KindSequence
		}
	case reflect.Array:
		info.Elem = t.Elem()
		info.Kind = KindSequence
	case reflect.Map:
		info.Elem = t.Elem()
		info.Key = t.Key()
		info.Kind = classifyMap(t.Key())
		if info.Kind == KindTextMap {
			info.TextKey = reflect.PointerTo(t.Key()).Implements(textUnmarshalerType)
		}
	case reflect.Pointer:
		info.Elem = t.Elem()
		info.Kind = KindPointer
	case reflect.Interface:
		info.Kind = KindInterface
	}

	if info.Kind == KindUnsupported && (info.Encodable || info.AddrEncodable || info.Decodable) {
		info.Kind = KindRecord
	}
	return info
}

func classifyMap(key reflect.Type) Kind {
	switch key.Kind() {
	case reflect.String:
		return KindStringMap
	}
	if key.Implements(textMarshalerType) {
		return KindTextMap
	}
	switch key.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindIntMap
	}
	return KindEntryMap
}

// isPrimitiveElem reports whether a slice of t is stored directly in the
// container. Only the unnamed builtin scalar types qualify.
func isPrimitiveElem(t reflect.Type) bool {
	if t.PkgPath() != "" || t.Name() == "" {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String, reflect.Bool:
		return true
	}
	return false
}
