package rsa

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	cryptolab "github.com/BackendStack21/cryptolab-go"
	"github.com/BackendStack21/cryptolab-go/numtheory"
	"github.com/BackendStack21/cryptolab-go/utils"
)

// PublicKey is the pair (n, e). It is immutable once created.
type PublicKey struct {
	n uint64
	e uint64
}

// NewPublicKey validates and returns the public key (n, e).
// n must be composite and 0 < e < n. Whether e is invertible modulo φ(n)
// cannot be checked without the factors of n.
func NewPublicKey(n, e uint64) (*PublicKey, error) {
	if n < 4 || numtheory.IsPrime(n) {
		return nil, fmt.Errorf("public key: %w: modulus %d is not composite", cryptolab.ErrInvalidModulus, n)
	}
	if e == 0 || e >= n {
		return nil, fmt.Errorf("public key: %w: exponent %d outside (0, %d)", cryptolab.ErrInvalidKeyShape, e, n)
	}
	return &PublicKey{n: n, e: e}, nil
}

// N returns the modulus.
func (pk *PublicKey) N() uint64 { return pk.n }

// E returns the public exponent.
func (pk *PublicKey) E() uint64 { return pk.e }

func (pk *PublicKey) String() string {
	return fmt.Sprintf("(%d, %d)", pk.n, pk.e)
}

// Bytes encodes the key as n || e, both big-endian uint64.
func (pk *PublicKey) Bytes() []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf, pk.n)
	binary.BigEndian.PutUint64(buf[8:], pk.e)
	return buf
}

// Fingerprint is the hex SHA3-256 digest of Bytes.
func (pk *PublicKey) Fingerprint() string {
	return hex.EncodeToString(utils.HashWithDomain(utils.DomainFingerprint, pk.Bytes()))
}

type publicKeyJSON struct {
	N uint64 `json:"n"`
	E uint64 `json:"e"`
}

func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(publicKeyJSON{N: pk.n, E: pk.e})
}

func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var raw publicKeyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewPublicKey(raw.N, raw.E)
	if err != nil {
		return err
	}
	*pk = *parsed
	return nil
}

// PrivateKey is the triple (p, q, d). Its fields are only reachable through
// the owning KeyPair.
type PrivateKey struct {
	p, q uint64
	d    uint64
	n    uint64
}

// P returns the first prime factor.
func (sk *PrivateKey) P() uint64 { return sk.p }

// Q returns the second prime factor.
func (sk *PrivateKey) Q() uint64 { return sk.q }

// D returns the private exponent.
func (sk *PrivateKey) D() uint64 { return sk.d }

// KeyPair associates a public key with the private key it was created with.
type KeyPair struct {
	PublicKey  PublicKey
	privateKey PrivateKey
}

// Private returns the private half. Only the key's holder should call it.
func (kp *KeyPair) Private() *PrivateKey {
	return &kp.privateKey
}

// KeyPairExport is the serialized form of a key pair written by the CLI.
type KeyPairExport struct {
	PublicKey   PublicKey `json:"public_key"`
	P           uint64    `json:"p"`
	Q           uint64    `json:"q"`
	D           uint64    `json:"d"`
	Fingerprint string    `json:"fingerprint"`
}

// Export returns the serializable form of kp, private half included.
func (kp *KeyPair) Export() KeyPairExport {
	return KeyPairExport{
		PublicKey:   kp.PublicKey,
		P:           kp.privateKey.p,
		Q:           kp.privateKey.q,
		D:           kp.privateKey.d,
		Fingerprint: kp.PublicKey.Fingerprint(),
	}
}

// ImportKeyPair rebuilds a key pair from its export, re-checking every
// invariant and that the stored public key and fingerprint match.
func ImportKeyPair(x KeyPairExport) (*KeyPair, error) {
	kp, err := CreateKeyPair(x.P, x.Q, x.D)
	if err != nil {
		return nil, err
	}
	if kp.PublicKey != x.PublicKey {
		return nil, fmt.Errorf("import: %w: public key %s does not match private key", cryptolab.ErrInvalidKeyShape, &x.PublicKey)
	}
	if x.Fingerprint != "" && x.Fingerprint != kp.PublicKey.Fingerprint() {
		return nil, fmt.Errorf("import: %w: fingerprint mismatch", cryptolab.ErrInvalidKeyShape)
	}
	return kp, nil
}
