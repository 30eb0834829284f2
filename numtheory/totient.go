package numtheory

import (
	"context"
	"fmt"
	"math"

	cryptolab "github.com/BackendStack21/cryptolab-go"
	"github.com/BackendStack21/cryptolab-go/utils"
)

// TotientOfPrimes returns φ(pq) = (p-1)(q-1).
// Both arguments must be prime; otherwise ErrNonPrimeInput is returned.
func TotientOfPrimes(p, q uint64) (uint64, error) {
	if !IsPrime(p) {
		return 0, fmt.Errorf("totient: %w: p = %d", cryptolab.ErrNonPrimeInput, p)
	}
	if !IsPrime(q) {
		return 0, fmt.Errorf("totient: %w: q = %d", cryptolab.ErrNonPrimeInput, q)
	}
	phi, err := utils.SafeMultiply(p-1, q-1)
	if err != nil {
		return 0, fmt.Errorf("totient of %d and %d: %w", p, q, err)
	}
	return phi, nil
}

// Totient approximates Euler's φ(n) for any n > 0 with the identity
//
//	φ(n) = Σ_{k=1}^{n} gcd(k, n) · cos(2πk/n)
//
// The sum is accumulated in floating point and rounded once at the end.
// It costs O(n) gcd evaluations; RSA itself only needs TotientOfPrimes.
func Totient(n uint64) (uint64, error) {
	return TotientContext(context.Background(), n)
}

// TotientContext is Totient with cancellation.
func TotientContext(ctx context.Context, n uint64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("totient: %w: n must be positive", cryptolab.ErrInvalidModulus)
	}

	var sum float64
	step := 2 * math.Pi / float64(n)
	for k := uint64(1); k <= n; k++ {
		if k%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		sum += float64(gcd(k, n)) * math.Cos(step*float64(k))
	}

	rounded := math.Round(sum)
	if rounded < 1 {
		return 1, nil
	}
	return uint64(rounded), nil
}
