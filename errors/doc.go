// Package errors provides structured error types for the dictcoder engines.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: coding path, requested and found type names,
// and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("address", "bar").
//		GoType("map[string]any").
//		Found("[]any").
//		Detail("expected a keyed container").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseDecode, path, "uint8", "string")
//	err := errors.ValueNotFound(errors.PhaseDecode, path, "string")
//
// All errors implement the standard error interface and support errors.Is/As.
//
// Contract violations (a type requesting two containers for one value, or asking
// for superclass delegation) are not errors in this sense. They are raised as a
// *ContractViolation panic because they indicate a broken implementation of the
// serialization contract rather than bad input.
package errors
