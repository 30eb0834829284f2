package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/BackendStack21/cryptolab-go/core"
	"github.com/BackendStack21/cryptolab-go/crack"
	"github.com/BackendStack21/cryptolab-go/log"
	"github.com/BackendStack21/cryptolab-go/metrics"
	"github.com/BackendStack21/cryptolab-go/rsa"
)

var seedFlag = &cli.StringFlag{
	Name:  "seed",
	Usage: "Hex seed making key generation deterministic. Overrides the config file.",
}

var poolMinFlag = &cli.Uint64Flag{
	Name:  "pool-min",
	Usage: "Smallest prime candidate (inclusive). Overrides the config file.",
}

var poolMaxFlag = &cli.Uint64Flag{
	Name:  "pool-max",
	Usage: "Prime candidates stop below this bound. Overrides the config file.",
}

var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "Write the key file here instead of stdout.",
}

var keyFileFlag = &cli.StringFlag{
	Name:    "key",
	Aliases: []string{"k"},
	Usage:   "Key file written by keygen or create.",
}

var messageFlag = &cli.Uint64Flag{
	Name:     "message",
	Aliases:  []string{"m"},
	Usage:    "Integer message m with 0 < m < n.",
	Required: true,
}

var ciphertextFlag = &cli.Uint64Flag{
	Name:     "ciphertext",
	Usage:    "Integer ciphertext c with 0 <= c < n.",
	Required: true,
}

var modulusFlag = &cli.Uint64Flag{
	Name:  "n",
	Usage: "Public modulus, used when --key is not given.",
}

var exponentFlag = &cli.Uint64Flag{
	Name:  "e",
	Usage: "Public exponent, used when --key is not given.",
}

var timeoutFlag = &cli.DurationFlag{
	Name:  "timeout",
	Usage: "Give up the factor search after this long. Zero means never.",
}

var metricsFlag = &cli.StringFlag{
	Name:  "metrics",
	Usage: "Serve prometheus metrics at the given (host:)port while the command runs.",
}

var rsaCommand = &cli.Command{
	Name:  "rsa",
	Usage: "RSA key generation, encryption, decryption and the factoring attack.",
	Subcommands: []*cli.Command{
		{
			Name:   "keygen",
			Usage:  "Generate a key pair from the prime pool.",
			Flags:  []cli.Flag{seedFlag, poolMinFlag, poolMaxFlag, outputFlag},
			Action: rsaKeygen,
		},
		{
			Name:  "create",
			Usage: "Build a key pair from explicit p, q and d.",
			Flags: []cli.Flag{
				&cli.Uint64Flag{Name: "p", Required: true},
				&cli.Uint64Flag{Name: "q", Required: true},
				&cli.Uint64Flag{Name: "d", Required: true},
				outputFlag,
			},
			Action: rsaCreate,
		},
		{
			Name:   "encrypt",
			Usage:  "Encrypt an integer message with a public key.",
			Flags:  []cli.Flag{keyFileFlag, modulusFlag, exponentFlag, messageFlag},
			Action: rsaEncrypt,
		},
		{
			Name:   "decrypt",
			Usage:  "Decrypt an integer ciphertext with a key file.",
			Flags:  []cli.Flag{keyFileFlag, ciphertextFlag},
			Action: rsaDecrypt,
		},
		{
			Name:   "crack",
			Usage:  "Recover the plaintext from the public key alone.",
			Flags:  []cli.Flag{keyFileFlag, modulusFlag, exponentFlag, ciphertextFlag, timeoutFlag, metricsFlag},
			Action: rsaCrack,
		},
	},
}

func rsaKeygen(c *cli.Context) error {
	params := paramsFrom(c.Context)
	if c.IsSet(seedFlag.Name) {
		params.Seed = c.String(seedFlag.Name)
	}
	if c.IsSet(poolMinFlag.Name) {
		params.PrimePool.Min = c.Uint64(poolMinFlag.Name)
	}
	if c.IsSet(poolMaxFlag.Name) {
		params.PrimePool.Max = c.Uint64(poolMaxFlag.Name)
	}
	if err := core.ValidateParams(params); err != nil {
		return err
	}

	random, err := core.RandomSource(params)
	if err != nil {
		return err
	}
	kp, err := rsa.GenerateKeyPair(c.Context, core.PrimePool(params), random)
	if err != nil {
		return err
	}
	return writeKeyPair(c, kp)
}

func rsaCreate(c *cli.Context) error {
	kp, err := rsa.CreateKeyPair(c.Uint64("p"), c.Uint64("q"), c.Uint64("d"))
	if err != nil {
		return err
	}
	return writeKeyPair(c, kp)
}

func writeKeyPair(c *cli.Context, kp *rsa.KeyPair) error {
	data, err := json.MarshalIndent(newKeyFile(kp), "", "  ")
	if err != nil {
		return err
	}
	log.FromContextOrDefault(c.Context).Infow("created key pair",
		"public_key", kp.PublicKey.String(), "fingerprint", kp.PublicKey.Fingerprint())
	return writeOutput(c.App.Writer, data, c.String(outputFlag.Name))
}

// publicKeyArg resolves the public key from --key or from --n and --e.
func publicKeyArg(c *cli.Context) (*rsa.PublicKey, error) {
	if path := c.String(keyFileFlag.Name); path != "" {
		return loadPublicKey(path)
	}
	if !c.IsSet(modulusFlag.Name) || !c.IsSet(exponentFlag.Name) {
		return nil, errors.New("either --key or both --n and --e are required")
	}
	return rsa.NewPublicKey(c.Uint64(modulusFlag.Name), c.Uint64(exponentFlag.Name))
}

func rsaEncrypt(c *cli.Context) error {
	pk, err := publicKeyArg(c)
	if err != nil {
		return err
	}
	ct, err := rsa.Encrypt(c.Uint64(messageFlag.Name), pk)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, ct)
	return nil
}

func rsaDecrypt(c *cli.Context) error {
	path := c.String(keyFileFlag.Name)
	if path == "" {
		return errors.New("--key is required")
	}
	kp, err := loadKeyPair(path)
	if err != nil {
		return err
	}
	m, err := rsa.Decrypt(c.Uint64(ciphertextFlag.Name), kp.Private())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, m)
	return nil
}

func rsaCrack(c *cli.Context) error {
	pk, err := publicKeyArg(c)
	if err != nil {
		return err
	}

	ctx := c.Context
	if timeout := c.Duration(timeoutFlag.Name); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if addr := c.String(metricsFlag.Name); addr != "" {
		metricsCtx, stop := context.WithCancel(ctx)
		defer stop()
		go func() {
			if err := metrics.Start(metricsCtx, addr); err != nil {
				log.FromContextOrDefault(ctx).Errorw("metrics server failed", "err", err)
			}
		}()
	}

	res, err := crack.Crack(ctx, c.Uint64(ciphertextFlag.Name), pk)
	if err != nil {
		return err
	}
	if !res.Found {
		fmt.Fprintf(c.App.Writer, "no factor of %d found after %d candidates\n", pk.N(), res.Candidates)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "p = %d\nq = %d\nd = %d\nplaintext = %d\n", res.P, res.Q, res.D, res.Plaintext)
	return nil
}
