package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/BackendStack21/cryptolab-go/numtheory"
)

var numtheoryCommand = &cli.Command{
	Name:    "numtheory",
	Aliases: []string{"nt"},
	Usage:   "Number theory primitives behind the ciphers.",
	Subcommands: []*cli.Command{
		{
			Name:      "gcd",
			Usage:     "Greatest common divisor of two integers.",
			ArgsUsage: "<m> <n>",
			Action: func(c *cli.Context) error {
				m, n, err := twoInts(c)
				if err != nil {
					return err
				}
				g, err := numtheory.GCD(m, n)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, g)
				return nil
			},
		},
		{
			Name:      "coprime",
			Usage:     "Report whether two integers share no divisor above one.",
			ArgsUsage: "<m> <n>",
			Action: func(c *cli.Context) error {
				m, n, err := twoInts(c)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, numtheory.IsCoprime(m, n))
				return nil
			},
		},
		{
			Name:      "inverse",
			Usage:     "Multiplicative inverse of a modulo n.",
			ArgsUsage: "<a> <n>",
			Action: func(c *cli.Context) error {
				a, n, err := twoInts(c)
				if err != nil {
					return err
				}
				x, err := numtheory.ModInverse(a, n)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, x)
				return nil
			},
		},
		{
			Name:      "prime",
			Usage:     "Primality test.",
			ArgsUsage: "<n>",
			Action: func(c *cli.Context) error {
				n, err := oneUint(c)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, numtheory.IsPrime(n))
				return nil
			},
		},
		{
			Name:      "totient",
			Usage:     "Euler's totient of n.",
			ArgsUsage: "<n>",
			Action: func(c *cli.Context) error {
				n, err := oneUint(c)
				if err != nil {
					return err
				}
				phi, err := numtheory.TotientContext(c.Context, n)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, phi)
				return nil
			},
		},
	},
}

func twoInts(c *cli.Context) (int64, int64, error) {
	if c.NArg() != 2 {
		return 0, 0, fmt.Errorf("expected 2 arguments, got %d", c.NArg())
	}
	a, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseInt(c.Args().Get(1), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func oneUint(c *cli.Context) (uint64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected 1 argument, got %d", c.NArg())
	}
	return strconv.ParseUint(c.Args().First(), 10, 64)
}
