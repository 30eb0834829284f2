// Package test runs cross-package scenarios: keys built from configuration,
// attacked with crack, and Vigenère ciphertexts broken by frequency analysis.
package test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/BackendStack21/cryptolab-go/core"
	"github.com/BackendStack21/cryptolab-go/crack"
	"github.com/BackendStack21/cryptolab-go/frequency"
	"github.com/BackendStack21/cryptolab-go/log"
	"github.com/BackendStack21/cryptolab-go/log/testlogger"
	"github.com/BackendStack21/cryptolab-go/metrics"
	"github.com/BackendStack21/cryptolab-go/rsa"
	"github.com/BackendStack21/cryptolab-go/vigenere"
)

func testContext(t *testing.T) context.Context {
	return log.ToContext(context.Background(), testlogger.New(t))
}

// TestRSAAttackRecoversEveryKey generates keys from the default pool, sends
// a message under each and checks the attack reads it back.
func TestRSAAttackRecoversEveryKey(t *testing.T) {
	ctx := testContext(t)
	pool := core.PrimePool(core.DefaultParams)

	for i := 0; i < 20; i++ {
		kp, err := rsa.GenerateKeyPairFromSeed(ctx, pool, []byte(fmt.Sprintf("alice-%d", i)))
		require.NoError(t, err)

		n := kp.PublicKey.N()
		m := uint64(57) % n
		if m == 0 {
			m = 1
		}
		ct, err := rsa.Encrypt(m, &kp.PublicKey)
		require.NoError(t, err)

		res, err := crack.Crack(ctx, ct, &kp.PublicKey)
		require.NoError(t, err)
		require.True(t, res.Found)
		require.Equal(t, m, res.Plaintext)
		require.Equal(t, kp.Private().D(), res.D)
		require.ElementsMatch(t, []uint64{kp.Private().P(), kp.Private().Q()}, []uint64{res.P, res.Q})
		require.LessOrEqual(t, res.P, res.Q)
	}
}

func TestRSAAttackCancellation(t *testing.T) {
	// 999983 and 1000003 are prime, so the search runs for about a million steps.
	pk, err := rsa.NewPublicKey(999983*1000003, 65537)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	cancelled := metrics.CrackResults.WithLabelValues(metrics.ResultCancelled)
	before := testutil.ToFloat64(cancelled)

	_, err = crack.Crack(ctx, 42, pk)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, before+1, testutil.ToFloat64(cancelled))
}

func TestConfiguredKeyGeneration(t *testing.T) {
	params, err := core.DecodeParams(strings.NewReader(`
seed = "5eed"

[prime_pool]
min = 100
max = 400
`))
	require.NoError(t, err)
	pool := core.PrimePool(params)

	generate := func() *rsa.KeyPair {
		random, err := core.RandomSource(params)
		require.NoError(t, err)
		kp, err := rsa.GenerateKeyPair(testContext(t), pool, random)
		require.NoError(t, err)
		return kp
	}
	a, b := generate(), generate()
	require.Equal(t, a.PublicKey, b.PublicKey)
	require.Equal(t, a.Private().D(), b.Private().D())

	for _, p := range []uint64{a.Private().P(), a.Private().Q()} {
		require.GreaterOrEqual(t, p, uint64(100))
		require.Less(t, p, uint64(400))
	}
}

func TestVigenereAnalysisBreaksKeys(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "frequency", "testdata", "english.txt"))
	require.NoError(t, err)
	plaintext := vigenere.Normalize(string(data))

	for _, word := range []string{"key", "lemon", "cipher", "xqzvbwm", "cryptology"} {
		t.Run(word, func(t *testing.T) {
			key, err := vigenere.KeyFromWord(word)
			require.NoError(t, err)
			ct, err := vigenere.Encrypt(string(data), key)
			require.NoError(t, err)

			res, err := frequency.Analyze(testContext(t), ct, 1, 2*len(key)-1)
			require.NoError(t, err)
			require.Equal(t, len(key), res.Period.Period)
			require.Equal(t, key, res.Key)
			require.Equal(t, plaintext, res.Plaintext)
		})
	}
}

func TestCLIBinary(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the CLI")
	}

	dir := t.TempDir()
	cliPath := filepath.Join(dir, "cryptolab-cli")
	build := exec.Command("go", "build", "-o", cliPath, "./cmd/cryptolab-cli")
	build.Dir = ".."
	if output, err := build.CombinedOutput(); err != nil {
		t.Skipf("cannot build CLI: %v\n%s", err, output)
	}

	run := func(args ...string) string {
		t.Helper()
		cmd := exec.Command(cliPath, args...)
		output, err := cmd.Output()
		require.NoError(t, err, "args: %v", args)
		return strings.TrimSpace(string(output))
	}

	keyPath := filepath.Join(dir, "alice.json")
	run("rsa", "keygen", "--seed", "ab12", "--output", keyPath)
	ct := run("rsa", "encrypt", "--key", keyPath, "--message", "3")
	require.Equal(t, "3", run("rsa", "decrypt", "--key", keyPath, "--ciphertext", ct))
	require.Contains(t, run("rsa", "crack", "--key", keyPath, "--ciphertext", ct), "plaintext = 3")

	ct = run("vigenere", "encrypt", "--key", "lemon", "--text", "attack at dawn")
	require.Equal(t, "attackatdawn", run("vigenere", "decrypt", "--key", "lemon", "--text", ct))
}
