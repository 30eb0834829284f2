package utils

import (
	"crypto/rand"
	"errors"
	"io"
)

// RandReader is the default random source used when a caller passes nil.
var RandReader io.Reader = rand.Reader

// SecureRandomBytes generates n random bytes from RandReader.
func SecureRandomBytes(n int) ([]byte, error) {
	return RandomBytesFrom(RandReader, n)
}

// RandomBytesFrom reads exactly n bytes from r.
func RandomBytesFrom(r io.Reader, n int) ([]byte, error) {
	if r == nil {
		r = RandReader
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// RandomInt generates a uniform random integer in [0, max) from RandReader.
func RandomInt(max int) (int, error) {
	if max <= 0 {
		return 0, errors.New("max must be positive")
	}
	v, err := RandomUint64From(RandReader, uint64(max))
	return int(v), err
}

// RandomUint64From draws a uniform integer in [0, max) from r.
// It uses rejection sampling on the smallest covering bit mask so the result
// is unbiased. A nil reader falls back to RandReader.
func RandomUint64From(r io.Reader, max uint64) (uint64, error) {
	if max == 0 {
		return 0, errors.New("max must be positive")
	}
	if max == 1 {
		return 0, nil
	}

	bitsNeeded := 0
	for m := max - 1; m > 0; m >>= 1 {
		bitsNeeded++
	}
	bytesNeeded := (bitsNeeded + 7) / 8
	mask := uint64(1)<<bitsNeeded - 1
	if bitsNeeded == 64 {
		mask = ^uint64(0)
	}

	for {
		bytes, err := RandomBytesFrom(r, bytesNeeded)
		if err != nil {
			return 0, err
		}

		var value uint64
		for i := 0; i < bytesNeeded; i++ {
			value = (value << 8) | uint64(bytes[i])
		}
		value &= mask

		if value < max {
			return value, nil
		}
	}
}

// RandomRange draws a uniform integer in [lo, hi) from r.
func RandomRange(r io.Reader, lo, hi uint64) (uint64, error) {
	if hi <= lo {
		return 0, errors.New("empty range")
	}
	v, err := RandomUint64From(r, hi-lo)
	if err != nil {
		return 0, err
	}
	return lo + v, nil
}
