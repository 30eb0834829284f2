// Package rsa implements textbook RSA over 64-bit integers.
//
// Keys come from a small pool of known primes, so every modulus produced
// here can be factored in well under a second (see package crack). There is
// no padding. This package exists to be broken.
package rsa

import (
	"context"
	"fmt"
	"io"

	cryptolab "github.com/BackendStack21/cryptolab-go"
	"github.com/BackendStack21/cryptolab-go/log"
	"github.com/BackendStack21/cryptolab-go/metrics"
	"github.com/BackendStack21/cryptolab-go/numtheory"
	"github.com/BackendStack21/cryptolab-go/utils"
)

// GenerateKeyPair draws p and q uniformly from pool, then samples candidate
// private exponents d uniformly in [1, φ) until one is coprime to φ, and
// derives e = d^-1 mod φ. The private exponent is chosen first and the public
// one derived from it.
//
// q is redrawn while it equals p. random supplies every draw; pass a seeded
// reader for reproducible keys, or nil for utils.RandReader.
func GenerateKeyPair(ctx context.Context, pool []uint64, random io.Reader) (*KeyPair, error) {
	logger := log.FromContextOrDefault(ctx).Named("rsa")

	if err := validatePool(pool); err != nil {
		return nil, err
	}
	if random == nil {
		random = utils.RandReader
	}

	p, err := drawPrime(pool, random)
	if err != nil {
		return nil, err
	}
	q := p
	for q == p {
		if q, err = drawPrime(pool, random); err != nil {
			return nil, err
		}
	}

	phi, err := numtheory.TotientOfPrimes(p, q)
	if err != nil {
		return nil, err
	}
	phiInt, err := utils.SafeInt64(phi)
	if err != nil {
		return nil, fmt.Errorf("keygen: φ(%d·%d): %w", p, q, err)
	}
	logger.Debugw("drew primes", "p", p, "q", q, "phi", phi)

	var d uint64
	for attempts := 1; ; attempts++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		metrics.KeyGenAttempts.Inc()

		if d, err = utils.RandomRange(random, 1, phi); err != nil {
			return nil, err
		}
		if !numtheory.IsCoprime(int64(d), phiInt) {
			continue
		}
		if _, err := numtheory.ModInverse(int64(d), phiInt); err != nil {
			continue
		}
		logger.Debugw("found private exponent", "d", d, "attempts", attempts)
		break
	}

	return CreateKeyPair(p, q, d)
}

// GenerateKeyPairFromSeed is GenerateKeyPair reading from a SHAKE256 stream
// derived from seed. Equal seeds and pools yield equal key pairs.
func GenerateKeyPairFromSeed(ctx context.Context, pool []uint64, seed []byte) (*KeyPair, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("keygen: seed must not be empty")
	}
	return GenerateKeyPair(ctx, pool, utils.NewSeededReader(seed))
}

func validatePool(pool []uint64) error {
	distinct := make(map[uint64]struct{}, len(pool))
	for _, p := range pool {
		if !numtheory.IsPrime(p) {
			return fmt.Errorf("keygen: %w: pool entry %d", cryptolab.ErrNonPrimeInput, p)
		}
		distinct[p] = struct{}{}
	}
	if len(distinct) < 2 {
		return fmt.Errorf("keygen: prime pool needs at least two distinct primes, got %d", len(distinct))
	}
	return nil
}

func drawPrime(pool []uint64, random io.Reader) (uint64, error) {
	i, err := utils.RandomUint64From(random, uint64(len(pool)))
	if err != nil {
		return 0, err
	}
	return pool[i], nil
}

// CreateKeyPair builds the key pair for primes p, q and private exponent d.
//
// It fails with ErrNonPrimeInput unless p and q are prime, and with
// ErrInvalidKeyShape when p == q, d is outside [1, φ(pq)) or d shares a
// factor with φ(pq).
func CreateKeyPair(p, q, d uint64) (*KeyPair, error) {
	phi, err := numtheory.TotientOfPrimes(p, q)
	if err != nil {
		return nil, err
	}
	if p == q {
		return nil, fmt.Errorf("create key: %w: p and q must be distinct", cryptolab.ErrInvalidKeyShape)
	}
	n, err := utils.SafeMultiply(p, q)
	if err != nil {
		return nil, fmt.Errorf("create key: modulus %d·%d: %w", p, q, err)
	}
	if d == 0 || d >= phi {
		return nil, fmt.Errorf("create key: %w: d = %d outside [1, %d)", cryptolab.ErrInvalidKeyShape, d, phi)
	}

	phiInt, err := utils.SafeInt64(phi)
	if err != nil {
		return nil, fmt.Errorf("create key: φ = %d: %w", phi, err)
	}
	if g, _ := numtheory.GCD(int64(d), phiInt); g != 1 {
		return nil, fmt.Errorf("create key: %w: gcd(d, φ) = %d", cryptolab.ErrInvalidKeyShape, g)
	}
	e, err := numtheory.ModInverse(int64(d), phiInt)
	if err != nil {
		return nil, fmt.Errorf("create key: %w", err)
	}

	return &KeyPair{
		PublicKey:  PublicKey{n: n, e: uint64(e)},
		privateKey: PrivateKey{p: p, q: q, d: d, n: n},
	}, nil
}

// Encrypt computes m^e mod n. m must satisfy 0 < m < n.
func Encrypt(m uint64, pk *PublicKey) (uint64, error) {
	if m == 0 || m >= pk.n {
		return 0, fmt.Errorf("encrypt: %w: %d not in (0, %d)", cryptolab.ErrMessageOutOfRange, m, pk.n)
	}
	return numtheory.PowMod(m, pk.e, pk.n), nil
}

// Decrypt computes c^d mod n. c must be a residue in [0, n).
func Decrypt(c uint64, sk *PrivateKey) (uint64, error) {
	if c >= sk.n {
		return 0, fmt.Errorf("decrypt: %w: ciphertext %d not below %d", cryptolab.ErrMessageOutOfRange, c, sk.n)
	}
	return numtheory.PowMod(c, sk.d, sk.n), nil
}
