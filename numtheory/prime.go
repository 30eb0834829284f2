package numtheory

import (
	"context"
)

// witnesses make Miller–Rabin deterministic for every n < 2^64. The first
// eleven primes alone are fooled by 3825123056546413051, hence 37.
var witnesses = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// cancelCheckInterval is how many loop iterations run between context checks.
const cancelCheckInterval = 1 << 12

// IsPrime reports whether n is prime using deterministic Miller–Rabin.
//
// n-1 is written as 2^s * d with d odd. Every witness a is tried in turn: a
// witness that is not below n ends the test with a prime verdict, and a
// witness for which neither a^d ≡ 1 nor a^(2^r*d) ≡ -1 (mod n) holds for any
// r < s proves n composite. n is prime only when no witness proves otherwise.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}

	d, s := n-1, 0
	for d%2 == 0 {
		d /= 2
		s++
	}

	for _, a := range witnesses {
		if n <= a {
			return true
		}
		if !strongProbablePrime(n, a, d, s) {
			return false
		}
	}
	return true
}

// strongProbablePrime reports whether witness a fails to disprove n's primality.
func strongProbablePrime(n, a, d uint64, s int) bool {
	x := PowMod(a, d, n)
	if x == 1 || x == n-1 {
		return true
	}
	for r := 1; r < s; r++ {
		x = mulMod(x, x, n)
		if x == n-1 {
			return true
		}
	}
	return false
}

// IsPrimeTrial decides primality by exhaustive trial division up to sqrt(n).
// It is slow on purpose and honours ctx, returning ctx.Err() if cancelled.
func IsPrimeTrial(ctx context.Context, n uint64) (bool, error) {
	if n < 2 {
		return false, nil
	}
	for i, steps := uint64(2), 0; i <= n/i; i, steps = i+1, steps+1 {
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}
		if n%i == 0 {
			return false, nil
		}
	}
	return true, nil
}

// PrimesInRange lists the primes in [lo, hi) in increasing order.
// Key generation uses it to build its pool of known primes.
func PrimesInRange(lo, hi uint64) []uint64 {
	var primes []uint64
	for n := lo; n < hi; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}
