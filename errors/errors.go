package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode  Phase = "encode"  // typed value to dynamic tree
	PhaseDecode  Phase = "decode"  // generic container to typed value
	PhaseFlatten Phase = "flatten" // dynamic tree to generic container
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch    Kind = "type_mismatch"
	KindValueNotFound   Kind = "value_not_found"
	KindDataCorrupted   Kind = "data_corrupted"
	KindInvalidTopLevel Kind = "invalid_top_level"
	KindInvalidValue    Kind = "invalid_value"
	KindUnsupported     Kind = "unsupported"
)

// Error is the structured error returned by the encode and decode engines.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string // requested Go type
	Found  string // type actually present in the container
	Detail string
	Path   []string
}

// Error renders "phase: kind at a.b.c: detail". When no detail is set the
// expected and found types are shown instead.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Phase))
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	switch {
	case e.Detail != "":
		b.WriteString(": ")
		b.WriteString(e.Detail)
	case e.GoType != "" && e.Found != "":
		fmt.Fprintf(&b, ": expected %s, found %s", e.GoType, e.Found)
	case e.GoType != "":
		b.WriteString(": ")
		b.WriteString(e.GoType)
	case e.Found != "":
		b.WriteString(": found ")
		b.WriteString(e.Found)
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the coding path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the requested Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Found sets the name of the type found in the container
func (b *Builder) Found(t string) *Builder {
	b.err.Found = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, found string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Found:  found,
	}
}

// ValueNotFound creates an error for a required value that is absent or null
func ValueNotFound(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindValueNotFound,
		Path:   path,
		GoType: goType,
		Detail: "found nil instead",
	}
}

// DataCorrupted creates an error for a value that is present but invalid
func DataCorrupted(phase Phase, path []string, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDataCorrupted,
		Path:   path,
		Detail: detail,
		Value:  value,
	}
}

// InvalidTopLevel creates an error for a top level that is not map-shaped
func InvalidTopLevel(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidTopLevel,
		Detail: detail,
	}
}

// InvalidValue creates an error for a value the engine cannot represent
func InvalidValue(phase Phase, path []string, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidValue,
		Path:   path,
		Detail: detail,
		Value:  value,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
