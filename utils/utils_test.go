package utils

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomInt(t *testing.T) {
	_, err := RandomInt(0)
	require.Error(t, err)

	val, err := RandomInt(1)
	require.NoError(t, err)
	require.Equal(t, 0, val)

	max := 100
	for i := 0; i < 1000; i++ {
		val, err := RandomInt(max)
		require.NoError(t, err)
		require.True(t, val >= 0 && val < max, "out of range: %d", val)
	}
}

func TestRandomUint64FromCoversRange(t *testing.T) {
	r := NewSeededReader([]byte("coverage"))
	seen := make(map[uint64]bool)
	for i := 0; i < 2000; i++ {
		v, err := RandomUint64From(r, 7)
		require.NoError(t, err)
		require.Less(t, v, uint64(7))
		seen[v] = true
	}
	require.Len(t, seen, 7)
}

func TestRandomUint64FromFullWidth(t *testing.T) {
	r := NewSeededReader([]byte("wide"))
	_, err := RandomUint64From(r, math.MaxUint64)
	require.NoError(t, err)
}

func TestRandomRange(t *testing.T) {
	r := NewSeededReader([]byte("range"))
	for i := 0; i < 500; i++ {
		v, err := RandomRange(r, 10, 13)
		require.NoError(t, err)
		require.True(t, v >= 10 && v < 13)
	}
	_, err := RandomRange(r, 5, 5)
	require.Error(t, err)
}

func TestRandomBytesFromShortReader(t *testing.T) {
	_, err := RandomBytesFrom(bytes.NewReader([]byte{1, 2}), 4)
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestSeededReaderDeterministic(t *testing.T) {
	a := make([]byte, 64)
	b := make([]byte, 64)
	_, err := io.ReadFull(NewSeededReader([]byte("alice")), a)
	require.NoError(t, err)
	_, err = io.ReadFull(NewSeededReader([]byte("alice")), b)
	require.NoError(t, err)
	require.Equal(t, a, b)

	_, err = io.ReadFull(NewSeededReader([]byte("bob")), b)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed("00ff10")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xff, 0x10}, seed)

	_, err = ParseSeed("")
	require.Error(t, err)
	_, err = ParseSeed("not-hex")
	require.Error(t, err)
}

func TestHashWithDomain(t *testing.T) {
	h1 := HashWithDomain("a", []byte("data"))
	h2 := HashWithDomain("b", []byte("data"))
	require.Len(t, h1, 32)
	require.NotEqual(t, h1, h2)
	require.Equal(t, h1, HashWithDomain("a", []byte("data")))

	require.Panics(t, func() {
		HashWithDomain(string(make([]byte, 256)), nil)
	})
}

func TestSafeMultiply(t *testing.T) {
	v, err := SafeMultiply(1<<32, 1<<31)
	require.NoError(t, err)
	require.Equal(t, uint64(1)<<63, v)

	_, err = SafeMultiply(1<<32, 1<<32)
	require.ErrorIs(t, err, ErrOverflow)

	v, err = SafeMultiply(0, math.MaxUint64)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestSafeInt64(t *testing.T) {
	v, err := SafeInt64(math.MaxInt64)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), v)

	_, err = SafeInt64(math.MaxInt64 + 1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestCheckPositive(t *testing.T) {
	require.NoError(t, CheckPositive(1, "x"))
	require.EqualError(t, CheckPositive(0, "x"), "x must be positive")
}
