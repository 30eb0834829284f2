// Package utils provides randomness, hashing and overflow-checked arithmetic
// helpers shared by the cryptolab packages.
package utils

import (
	"errors"
	"math"
	"math/bits"
)

// ErrOverflow indicates an integer overflow occurred.
var ErrOverflow = errors.New("integer overflow")

// SafeMultiply multiplies two unsigned integers and returns ErrOverflow if
// the product does not fit in 64 bits.
func SafeMultiply(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// SafeInt64 converts v to int64, failing when it exceeds math.MaxInt64.
func SafeInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, ErrOverflow
	}
	return int64(v), nil
}

// CheckPositive validates that value is > 0.
func CheckPositive(value int, name string) error {
	if value <= 0 {
		return errors.New(name + " must be positive")
	}
	return nil
}
