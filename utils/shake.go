package utils

import (
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/sha3"
)

const (
	DomainSeed        = "cryptolab-seed-v1"
	DomainFingerprint = "cryptolab-fingerprint-v1"
)

// NewSeededReader returns a deterministic, endless byte stream derived from
// seed with SHAKE256. Two readers built from the same seed yield the same
// bytes, which makes key generation reproducible in tests and demos.
func NewSeededReader(seed []byte) io.Reader {
	return Shake256WithDomain(DomainSeed, seed)
}

// ParseSeed decodes a hex seed as accepted by configuration files and flags.
func ParseSeed(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("seed is empty")
	}
	seed, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.New("seed must be a hex string")
	}
	return seed, nil
}

// Shake256WithDomain returns a SHAKE256 XOF absorbed with a length-prefixed
// domain string followed by data. Reading from it squeezes output.
// Panics if domain is longer than 255 bytes.
func Shake256WithDomain(domain string, data []byte) sha3.ShakeHash {
	domainBytes := []byte(domain)
	if len(domainBytes) > 255 {
		panic("domain string must be at most 255 bytes")
	}
	h := sha3.NewShake256()
	h.Write([]byte{byte(len(domainBytes))})
	h.Write(domainBytes)
	h.Write(data)
	return h
}

// HashWithDomain computes a domain-separated SHA3-256 hash.
// Panics if domain is longer than 255 bytes.
func HashWithDomain(domain string, data []byte) []byte {
	domainBytes := []byte(domain)
	if len(domainBytes) > 255 {
		panic("domain string must be at most 255 bytes")
	}
	h := sha3.New256()
	h.Write([]byte{byte(len(domainBytes))})
	h.Write(domainBytes)
	h.Write(data)
	return h.Sum(nil)
}
