package dictcoder

import (
	"github.com/wippyai/dictcoder/coder"
)

// Container is the generic top-level value produced by Encode.
type Container = map[string]any

type (
	Encodable = coder.Encodable
	Decodable = coder.Decodable
)

var (
	defaultEncoder = coder.NewEncoderWithDefaults()
	defaultDecoder = coder.NewDecoderWithDefaults()
)

// Encode converts v into a container using default options.
func Encode(v any) (Container, error) {
	return defaultEncoder.Encode(v)
}

// EncodeWithOptions converts v into a container using opts.
func EncodeWithOptions(v any, opts coder.Options) (Container, error) {
	return coder.NewEncoder(opts).Encode(v)
}

// Decode builds a T from the container using default options.
func Decode[T any](from Container) (T, error) {
	var out T
	err := defaultDecoder.Decode(&out, from)
	return out, err
}

// DecodeWithOptions builds a T from the container using opts.
func DecodeWithOptions[T any](from Container, opts coder.Options) (T, error) {
	var out T
	err := coder.NewDecoder(opts).Decode(&out, from)
	return out, err
}

// DecodeInto fills the value target points to.
func DecodeInto(target any, from Container) error {
	return defaultDecoder.Decode(target, from)
}
