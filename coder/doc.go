// Package coder converts between typed Go values and generic containers:
// map[string]any at the top, with []any, primitive slices and scalars below.
//
// # Contract
//
// Record types describe themselves by implementing Encodable and Decodable.
// Inside EncodeTo a type asks the Encoder for exactly one container (keyed,
// unkeyed or single value) and writes into it; DecodeFrom does the same
// against the Decoder:
//
//	func (u User) EncodeTo(e *coder.Encoder) error {
//		c := e.Container()
//		c.EncodeString("name", u.Name)
//		return c.Encode("address", u.Address)
//	}
//
//	func (u *User) DecodeFrom(d *coder.Decoder) error {
//		c, err := d.Container()
//		if err != nil {
//			return err
//		}
//		if u.Name, err = c.DecodeString("name"); err != nil {
//			return err
//		}
//		return c.Decode("address", &u.Address)
//	}
//
// Built-in Go values need no implementation: scalars, slices, arrays, maps,
// pointers, time.Time, []byte and url.URL are mapped by the engines directly.
//
// # Container Mapping
//
//	Go value                  Container value
//	─────────────────────────────────────────────
//	any integer type          int
//	float32 / float64         float32 / float64
//	string / bool             string / bool
//	nil pointer, nil          nil
//	[]int.. []uint64,         the slice itself (copied)
//	[]string, []bool
//	[]byte                    []any of int byte values
//	other slices, arrays      []any
//	map[string]T, map[int]T,  map[string]any
//	map[TextMarshaler]T
//	other maps                []any of alternating key, value
//	time.Time                 see DateStrategy
//	url.URL                   string
//
// Decoding a fixed-width integer truncates: an int 300 decodes into a uint8
// as 44. Floats, strings and bools must match exactly.
//
// # Errors
//
// Bad input is reported as *errors.Error with phase encode or decode, a kind,
// and the coding path of the failing value. Misuse of the contract, such as
// requesting a second container for one value, panics with
// *errors.ContractViolation.
//
// # Concurrency
//
// Encoders and Decoders are immutable configuration and safe for concurrent
// use. Each Encode or Decode call builds private state; a single in-progress
// call must not be shared across goroutines.
package coder
