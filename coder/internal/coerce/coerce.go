package coerce

import (
	"fmt"
	"reflect"
)

// Integer is the set of Go integer types a container value can narrow into.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// ToInt64 returns the two's complement bits of any Go integer as an int64.
// Unsigned 64-bit values above MaxInt64 wrap to negative numbers, which
// truncating narrowing then maps back to the same low bits.
func ToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uintptr:
		return int64(v), true
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), true
	}
	return 0, false
}

// Truncate narrows any Go integer into T, keeping the low bits.
func Truncate[T Integer](value any) (T, bool) {
	i, ok := ToInt64(value)
	if !ok {
		return 0, false
	}
	return T(i), true
}

// ToFloat32 accepts only float32.
func ToFloat32(value any) (float32, bool) {
	v, ok := value.(float32)
	return v, ok
}

// ToFloat64 accepts only float64.
func ToFloat64(value any) (float64, bool) {
	v, ok := value.(float64)
	return v, ok
}

// ToString accepts only string.
func ToString(value any) (string, bool) {
	v, ok := value.(string)
	return v, ok
}

// ToBool accepts only bool.
func ToBool(value any) (bool, bool) {
	v, ok := value.(bool)
	return v, ok
}

// IsNull reports whether value is the container null marker.
func IsNull(value any) bool {
	return value == nil
}

// TypeName describes a container value for error messages.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
