package rsa

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	cryptolab "github.com/BackendStack21/cryptolab-go"
	"github.com/BackendStack21/cryptolab-go/log"
	"github.com/BackendStack21/cryptolab-go/log/testlogger"
	"github.com/BackendStack21/cryptolab-go/numtheory"
	"github.com/BackendStack21/cryptolab-go/utils"
)

func testContext(t *testing.T) context.Context {
	return log.ToContext(context.Background(), testlogger.New(t))
}

func TestCreateKeyPairScenario(t *testing.T) {
	kp, err := CreateKeyPair(3, 7, 11)
	require.NoError(t, err)
	require.Equal(t, uint64(21), kp.PublicKey.N())
	require.Equal(t, uint64(11), kp.PublicKey.E())

	c, err := Encrypt(12, &kp.PublicKey)
	require.NoError(t, err)
	require.Equal(t, uint64(3), c)

	m, err := Decrypt(c, kp.Private())
	require.NoError(t, err)
	require.Equal(t, uint64(12), m)
}

func TestCreateKeyPairErrors(t *testing.T) {
	tests := []struct {
		name    string
		p, q, d uint64
		want    error
	}{
		{"composite p", 4, 7, 5, cryptolab.ErrNonPrimeInput},
		{"composite q", 3, 9, 5, cryptolab.ErrNonPrimeInput},
		{"equal primes", 7, 7, 5, cryptolab.ErrInvalidKeyShape},
		{"zero d", 3, 7, 0, cryptolab.ErrInvalidKeyShape},
		{"d equals phi", 3, 7, 12, cryptolab.ErrInvalidKeyShape},
		{"d not coprime", 3, 7, 4, cryptolab.ErrInvalidKeyShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, err := CreateKeyPair(tt.p, tt.q, tt.d)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, kp)
		})
	}
}

func TestKeyInvariantAndRoundTrip(t *testing.T) {
	ctx := testContext(t)
	pool := numtheory.PrimesInRange(5, 200)

	for i := 0; i < 25; i++ {
		kp, err := GenerateKeyPairFromSeed(ctx, pool, []byte{byte(i), 0x42})
		require.NoError(t, err)

		sk := kp.Private()
		require.True(t, numtheory.IsPrime(sk.P()))
		require.True(t, numtheory.IsPrime(sk.Q()))
		require.NotEqual(t, sk.P(), sk.Q())
		require.Equal(t, sk.P()*sk.Q(), kp.PublicKey.N())

		phi := (sk.P() - 1) * (sk.Q() - 1)
		g, err := numtheory.GCD(int64(sk.D()), int64(phi))
		require.NoError(t, err)
		require.Equal(t, uint64(1), g)
		require.Equal(t, uint64(1), sk.D()*kp.PublicKey.E()%phi)

		n := kp.PublicKey.N()
		for m := uint64(1); m < n; m++ {
			c, err := Encrypt(m, &kp.PublicKey)
			require.NoError(t, err)
			got, err := Decrypt(c, sk)
			require.NoError(t, err)
			require.Equal(t, m, got, "key %s, m = %d", &kp.PublicKey, m)
		}
	}
}

func TestGenerateKeyPairDeterministic(t *testing.T) {
	ctx := testContext(t)
	pool := numtheory.PrimesInRange(5, 200)

	a, err := GenerateKeyPairFromSeed(ctx, pool, []byte("fixed seed"))
	require.NoError(t, err)
	b, err := GenerateKeyPairFromSeed(ctx, pool, []byte("fixed seed"))
	require.NoError(t, err)
	require.Equal(t, a.Export(), b.Export())

	c, err := GenerateKeyPair(ctx, pool, utils.NewSeededReader([]byte("other seed")))
	require.NoError(t, err)
	require.NotEqual(t, a.Export(), c.Export())
}

func TestGenerateKeyPairSecureRandom(t *testing.T) {
	kp, err := GenerateKeyPair(testContext(t), []uint64{5, 7, 11, 13}, nil)
	require.NoError(t, err)
	require.Contains(t, []uint64{5, 7, 11, 13}, kp.Private().P())
}

func TestGenerateKeyPairBadPool(t *testing.T) {
	ctx := testContext(t)

	_, err := GenerateKeyPair(ctx, []uint64{5, 9}, nil)
	require.ErrorIs(t, err, cryptolab.ErrNonPrimeInput)

	_, err = GenerateKeyPair(ctx, []uint64{5, 5}, nil)
	require.Error(t, err)

	_, err = GenerateKeyPair(ctx, nil, nil)
	require.Error(t, err)

	_, err = GenerateKeyPairFromSeed(ctx, []uint64{5, 7}, nil)
	require.Error(t, err)
}

func TestGenerateKeyPairCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()
	_, err := GenerateKeyPair(ctx, []uint64{5, 7, 11}, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEncryptDecryptRange(t *testing.T) {
	kp, err := CreateKeyPair(3, 7, 11)
	require.NoError(t, err)

	_, err = Encrypt(0, &kp.PublicKey)
	require.ErrorIs(t, err, cryptolab.ErrMessageOutOfRange)
	_, err = Encrypt(21, &kp.PublicKey)
	require.ErrorIs(t, err, cryptolab.ErrMessageOutOfRange)
	_, err = Decrypt(21, kp.Private())
	require.ErrorIs(t, err, cryptolab.ErrMessageOutOfRange)
}

func TestNewPublicKey(t *testing.T) {
	pk, err := NewPublicKey(21, 11)
	require.NoError(t, err)
	require.Equal(t, "(21, 11)", pk.String())

	_, err = NewPublicKey(23, 3)
	require.ErrorIs(t, err, cryptolab.ErrInvalidModulus)
	_, err = NewPublicKey(1, 1)
	require.ErrorIs(t, err, cryptolab.ErrInvalidModulus)
	_, err = NewPublicKey(21, 0)
	require.ErrorIs(t, err, cryptolab.ErrInvalidKeyShape)
	_, err = NewPublicKey(21, 21)
	require.ErrorIs(t, err, cryptolab.ErrInvalidKeyShape)
}

func TestExportImport(t *testing.T) {
	kp, err := CreateKeyPair(61, 53, 2753)
	require.NoError(t, err)
	require.Equal(t, uint64(17), kp.PublicKey.E())

	data, err := json.Marshal(kp.Export())
	require.NoError(t, err)

	var x KeyPairExport
	require.NoError(t, json.Unmarshal(data, &x))
	restored, err := ImportKeyPair(x)
	require.NoError(t, err)
	require.Equal(t, kp.PublicKey, restored.PublicKey)
	require.Equal(t, kp.Private().D(), restored.Private().D())

	x.Fingerprint = "00"
	_, err = ImportKeyPair(x)
	require.ErrorIs(t, err, cryptolab.ErrInvalidKeyShape)

	x = kp.Export()
	x.D = 7
	_, err = ImportKeyPair(x)
	require.ErrorIs(t, err, cryptolab.ErrInvalidKeyShape)
}

func TestPublicKeyJSONValidates(t *testing.T) {
	var pk PublicKey
	require.NoError(t, json.Unmarshal([]byte(`{"n":3233,"e":17}`), &pk))
	require.Equal(t, uint64(3233), pk.N())

	require.Error(t, json.Unmarshal([]byte(`{"n":13,"e":5}`), &pk))
}
