// Package cryptolab is an educational toolkit of number-theoretic primitives,
// two historical cryptosystems (RSA over machine-sized integers and the
// Vigenère cipher) and the attacks that break them.
//
// WARNING: nothing here is hardened. There is no padding, no constant-time
// arithmetic and the moduli are deliberately small enough to factor. DO NOT
// use it to protect real data.
package cryptolab

// Version of the cryptolab Go implementation.
const Version = "0.3.0"

// API summary:
//
// Number theory:
//   - numtheory.GCD(m, n), numtheory.IsCoprime(m, n), numtheory.IsPrime(n)
//   - numtheory.ModInverse(a, n), numtheory.PowMod(b, e, m)
//   - numtheory.Totient(n), numtheory.TotientOfPrimes(p, q)
//
// RSA:
//   - rsa.GenerateKeyPair(ctx, pool, random) - d is drawn first, e derived
//   - rsa.CreateKeyPair(p, q, d) - explicit construction
//   - rsa.Encrypt(m, pk), rsa.Decrypt(c, sk)
//   - crack.Crack(ctx, c, pk) - trial-division key recovery
//
// Vigenère:
//   - vigenere.Normalize(text), vigenere.Encrypt(msg, key), vigenere.Decrypt(ct, key)
//   - frequency.NewTable(text), frequency.IndexOfCoincidence(text)
//   - frequency.EstimatePeriod(ctx, ct, min, max), frequency.RecoverKey(ct, period)
//
// Parameters:
//   - core.DefaultParams, core.ValidateParams(p), core.LoadParams(path)
