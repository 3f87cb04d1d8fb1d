// Package dictcoder maps typed Go values to and from generic containers.
//
// A container is a map[string]any whose values are scalars (int, float32,
// float64, string, bool), nil, primitive slices, []any lists or nested maps.
// Containers are never serialized by this module; they are meant to be handed
// to code that already speaks map[string]any, such as YAML or JSON libraries,
// templating engines or dynamic runtimes.
//
// # Architecture Overview
//
//	dictcoder/           Root package with the Container type and helpers
//	├── coder/           Encoder, Decoder and their containers
//	├── codingpath/      Immutable coding paths used in errors and contracts
//	├── errors/          Structured error types and contract violations
//	├── tree/            Schemaless documents built on the coding contract
//	└── cmd/dictcoder/   Command line inspector
//
// # Quick Start
//
//	type Point struct{ X, Y int }
//
//	func (p Point) EncodeTo(e *coder.Encoder) error {
//	    c := e.Container()
//	    c.EncodeInt("x", p.X)
//	    c.EncodeInt("y", p.Y)
//	    return nil
//	}
//
//	func (p *Point) DecodeFrom(d *coder.Decoder) error {
//	    c, err := d.Container()
//	    if err != nil {
//	        return err
//	    }
//	    if p.X, err = c.DecodeInt("x"); err != nil {
//	        return err
//	    }
//	    p.Y, err = c.DecodeInt("y")
//	    return err
//	}
//
//	m, err := dictcoder.Encode(Point{1, 2})   // map[string]any{"x": 1, "y": 2}
//	p, err := dictcoder.Decode[Point](m)
//
// # Error Handling
//
// Failures are *errors.Error values carrying the phase (encode, decode or
// flatten), a kind and the coding path to the offending value:
//
//	var e *errors.Error
//	if stderrors.As(err, &e) {
//	    fmt.Println(e.Kind, strings.Join(e.Path, "."))
//	}
//
// Misusing the coding contract panics with *errors.ContractViolation.
package dictcoder
