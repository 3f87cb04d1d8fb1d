package coder

import (
	"reflect"

	"github.com/wippyai/dictcoder/coder/internal/types"
)

// Encodable is implemented by values that describe their own shape to the
// encoder. EncodeTo requests exactly one container from e and fills it.
type Encodable interface {
	EncodeTo(e *Encoder) error
}

// Decodable is implemented by pointers to values that rebuild themselves from
// the decoder. DecodeFrom requests a container from d and reads it.
type Decodable interface {
	DecodeFrom(d *Decoder) error
}

var classifier = types.NewClassifier(
	reflect.TypeFor[Encodable](),
	reflect.TypeFor[Decodable](),
)
