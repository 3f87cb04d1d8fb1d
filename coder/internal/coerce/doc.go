// Package coerce reads scalars out of generic containers.
//
// Integers are reinterpreted with truncation: any Go integer kind found in a
// container is accepted for any integer target, and the bits that do not fit
// are dropped (uint8 from 300 yields 44). Floating point, string and boolean
// reads require the exact type.
package coerce
