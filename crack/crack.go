// Package crack recovers RSA plaintexts from the public key alone by
// factoring the modulus with trial division.
//
// The search costs O(sqrt(n)) divisions. That is instant for the moduli
// package rsa produces and hopeless for real ones, which is the point.
package crack

import (
	"context"
	"fmt"

	cryptolab "github.com/BackendStack21/cryptolab-go"
	"github.com/BackendStack21/cryptolab-go/log"
	"github.com/BackendStack21/cryptolab-go/metrics"
	"github.com/BackendStack21/cryptolab-go/numtheory"
	"github.com/BackendStack21/cryptolab-go/rsa"
	"github.com/BackendStack21/cryptolab-go/utils"
)

const cancelCheckInterval = 1 << 12

// Result is the outcome of an attack. When Found is false no factor was
// found below sqrt(n) and the other fields are zero.
type Result struct {
	Found     bool
	P, Q      uint64
	D         uint64
	Plaintext uint64
	// Candidates is the number of trial divisors examined.
	Candidates uint64
}

// Factor returns the smallest prime factor p of n and its cofactor n/p,
// trying every p from 2 up to floor(sqrt(n)). ok is false when n has no such
// factor. The only error is ctx's.
func Factor(ctx context.Context, n uint64) (p, q uint64, ok bool, candidates uint64, err error) {
	for p = 2; p <= n/p; p++ {
		candidates++
		if candidates%cancelCheckInterval == 0 {
			if err = ctx.Err(); err != nil {
				return 0, 0, false, candidates, err
			}
		}
		if n%p == 0 && numtheory.IsPrime(p) {
			return p, n / p, true, candidates, nil
		}
	}
	return 0, 0, false, candidates, nil
}

// Crack decrypts ciphertext using only pk. It factors n = p*q, computes
// φ = (p-1)(q-1) and d = e^-1 mod φ, and returns ciphertext^d mod n.
//
// Exhausting the search is not an error: Result.Found is false. Errors are
// reserved for cancellation, a ciphertext outside [0, n) and an exponent with
// no inverse modulo φ.
func Crack(ctx context.Context, ciphertext uint64, pk *rsa.PublicKey) (Result, error) {
	logger := log.FromContextOrDefault(ctx).Named("crack")
	n, e := pk.N(), pk.E()

	if ciphertext >= n {
		return Result{}, fmt.Errorf("crack: %w: ciphertext %d not below %d", cryptolab.ErrMessageOutOfRange, ciphertext, n)
	}

	p, q, ok, candidates, err := Factor(ctx, n)
	metrics.CrackCandidates.Add(float64(candidates))
	if err != nil {
		metrics.CrackResults.WithLabelValues(metrics.ResultCancelled).Inc()
		logger.Debugw("search cancelled", "n", n, "candidates", candidates)
		return Result{Candidates: candidates}, err
	}
	if !ok {
		metrics.CrackResults.WithLabelValues(metrics.ResultNotFound).Inc()
		logger.Debugw("no factor below sqrt(n)", "n", n, "candidates", candidates)
		return Result{Candidates: candidates}, nil
	}

	phi, err := utils.SafeMultiply(p-1, q-1)
	if err != nil {
		return Result{}, fmt.Errorf("crack: φ of %d·%d: %w", p, q, err)
	}
	phiInt, err := utils.SafeInt64(phi)
	if err != nil {
		return Result{}, fmt.Errorf("crack: φ = %d: %w", phi, err)
	}
	eInt, err := utils.SafeInt64(e)
	if err != nil {
		return Result{}, fmt.Errorf("crack: e = %d: %w", e, err)
	}
	d, err := numtheory.ModInverse(eInt, phiInt)
	if err != nil {
		return Result{}, fmt.Errorf("crack: recovering d: %w", err)
	}

	metrics.CrackResults.WithLabelValues(metrics.ResultFound).Inc()
	logger.Debugw("factored modulus", "n", n, "p", p, "q", q, "d", d, "candidates", candidates)

	return Result{
		Found:      true,
		P:          p,
		Q:          q,
		D:          uint64(d),
		Plaintext:  numtheory.PowMod(ciphertext, uint64(d), n),
		Candidates: candidates,
	}, nil
}
