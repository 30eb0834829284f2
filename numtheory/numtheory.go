// Package numtheory implements the integer arithmetic RSA is built on:
// greatest common divisors, coprimality, modular inverses, fast modular
// exponentiation, primality testing and Euler's totient.
//
// All modular products go through a 128-bit intermediate, so every routine is
// exact for moduli up to 2^64-1.
package numtheory

import (
	"fmt"
	"math/bits"

	cryptolab "github.com/BackendStack21/cryptolab-go"
)

// abs returns |x| as an unsigned value. It is exact for math.MinInt64.
func abs(x int64) uint64 {
	if x < 0 {
		return uint64(-(x + 1)) + 1
	}
	return uint64(x)
}

// mod returns x mod n in [0, n) for n > 0.
func mod(x, n int64) uint64 {
	r := x % n
	if r < 0 {
		r += n
	}
	return uint64(r)
}

// mulMod returns (a * b) mod m without overflow. m must be non-zero.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// subMod returns (a - b) mod m for a, b already reduced into [0, m).
func subMod(a, b, m uint64) uint64 {
	if a >= b {
		return a - b
	}
	return m - (b - a)
}

// GCD returns the greatest common divisor of m and n with the Euclidean
// algorithm: (m, n) is replaced by (n, m mod n) until the remainder is zero.
// The result is always non-negative. n must be non-zero.
func GCD(m, n int64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("gcd: %w: n must be non-zero", cryptolab.ErrInvalidModulus)
	}
	return gcd(abs(m), abs(n)), nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// IsCoprime reports whether m and n share no divisor greater than one.
//
// It trial-divides the smaller magnitude by every integer up to its square
// root and stops at the first divisor that also divides the larger one. A
// prime cofactor left above the square root is checked last, so the answer
// agrees with gcd(m, n) == 1.
func IsCoprime(m, n int64) bool {
	small, large := abs(m), abs(n)
	if small > large {
		small, large = large, small
	}
	if small == 0 {
		return large == 1
	}

	rest := small
	for i := uint64(2); i <= small/i; i++ {
		if small%i != 0 {
			continue
		}
		if large%i == 0 {
			return false
		}
		for rest%i == 0 {
			rest /= i
		}
	}
	return rest == 1 || large%rest != 0
}

// ModInverse returns x in [0, n) with a*x ≡ 1 (mod n).
//
// The extended Euclidean algorithm is run in two passes. The first records
// the quotient of every division step; the second back-substitutes the
// coefficient sequence c0 = 0, c1 = 1, c_i = c_{i-2} - c_{i-1}*q_{i-2} (mod n).
// The inverse is the coefficient matching the last quotient.
//
// It fails with ErrInvalidModulus when n <= 0 and with ErrNoInverseExists
// when gcd(a, n) != 1.
func ModInverse(a, n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("inverse of %d: %w: modulus %d must be positive",
			a, cryptolab.ErrInvalidModulus, n)
	}
	if n == 1 {
		return 0, nil
	}

	un := uint64(n)
	ua := mod(a, n)
	if ua == 0 {
		return 0, fmt.Errorf("inverse of %d mod %d: %w", a, n, cryptolab.ErrNoInverseExists)
	}

	var quotients []uint64
	r0, r1 := un, ua
	for r1 != 0 {
		quotients = append(quotients, r0/r1)
		r0, r1 = r1, r0%r1
	}
	if r0 != 1 {
		return 0, fmt.Errorf("inverse of %d mod %d: %w: gcd is %d",
			a, n, cryptolab.ErrNoInverseExists, r0)
	}

	prev, cur := uint64(0), uint64(1)
	for i := 2; i <= len(quotients); i++ {
		prev, cur = cur, subMod(prev, mulMod(cur, quotients[i-2], un), un)
	}
	return int64(cur), nil
}

// PowMod computes base^exp mod m by square-and-multiply.
// Panics if m is 0.
func PowMod(base, exp, m uint64) uint64 {
	if m == 0 {
		panic("numtheory: zero modulus")
	}
	if m == 1 {
		return 0
	}

	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, m)
		}
		exp >>= 1
		base = mulMod(base, base, m)
	}
	return result
}
