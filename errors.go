package cryptolab

import "errors"

// ErrInvalidModulus indicates a non-positive modulus (or a zero divisor) was
// passed to modular arithmetic.
var ErrInvalidModulus = errors.New("invalid modulus")

// ErrNoInverseExists indicates gcd(a, n) != 1, so a has no inverse modulo n.
var ErrNoInverseExists = errors.New("no modular inverse exists")

// ErrNonPrimeInput indicates a composite value where a prime was required.
var ErrNonPrimeInput = errors.New("input is not prime")

// ErrInvalidKeyShape indicates an RSA or Vigenère key violating its invariants.
var ErrInvalidKeyShape = errors.New("invalid key shape")

// ErrMessageOutOfRange indicates an RSA message outside (0, n).
var ErrMessageOutOfRange = errors.New("message out of range")
