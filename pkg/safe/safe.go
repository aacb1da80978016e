// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a value does not fit the target type.
var ErrOutOfRange = errors.New("safe: value out of range")

// Integer is any built-in integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func inRange[T Integer](v T, lo int64, hi uint64) bool {
	if v < 0 {
		return int64(v) >= lo
	}
	return uint64(v) <= hi
}

func outOfRange[T Integer](v T, target string) error {
	return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, target)
}

// Uint64 converts an integer to uint64 while guarding against negatives.
func Uint64[T Integer](v T) (uint64, error) {
	if !inRange(v, 0, math.MaxUint64) {
		return 0, outOfRange(v, "uint64")
	}
	return uint64(v), nil
}

// Uint32 converts an integer to uint32 with range validation.
func Uint32[T Integer](v T) (uint32, error) {
	if !inRange(v, 0, math.MaxUint32) {
		return 0, outOfRange(v, "uint32")
	}
	return uint32(v), nil
}

// Uint8 converts an integer to uint8 with range validation.
func Uint8[T Integer](v T) (uint8, error) {
	if !inRange(v, 0, math.MaxUint8) {
		return 0, outOfRange(v, "uint8")
	}
	return uint8(v), nil
}

// Int64 converts an integer to int64 with range validation.
func Int64[T Integer](v T) (int64, error) {
	if !inRange(v, math.MinInt64, math.MaxInt64) {
		return 0, outOfRange(v, "int64")
	}
	return int64(v), nil
}
