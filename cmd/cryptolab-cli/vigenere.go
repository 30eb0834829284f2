package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/BackendStack21/cryptolab-go/frequency"
	"github.com/BackendStack21/cryptolab-go/vigenere"
)

var vigenereKeyFlag = &cli.StringFlag{
	Name:     "key",
	Aliases:  []string{"k"},
	Usage:    "Keyword (\"lemon\") or comma separated shifts (\"11,4,12\").",
	Required: true,
}

var textFlag = &cli.StringFlag{
	Name:    "text",
	Aliases: []string{"t"},
	Usage:   "Input text. Read from --file or stdin when empty.",
}

var textFileFlag = &cli.StringFlag{
	Name:  "file",
	Usage: "Read the input text from this file.",
}

var minPeriodFlag = &cli.IntFlag{
	Name:  "min-period",
	Usage: "Smallest key length to try. Overrides the config file.",
}

var maxPeriodFlag = &cli.IntFlag{
	Name:  "max-period",
	Usage: "Largest key length to try. Overrides the config file.",
}

var scoresFlag = &cli.BoolFlag{
	Name:  "scores",
	Usage: "Print the score of every candidate period.",
}

var vigenereCommand = &cli.Command{
	Name:  "vigenere",
	Usage: "Vigenère encryption, decryption and ciphertext-only analysis.",
	Subcommands: []*cli.Command{
		{
			Name:   "encrypt",
			Usage:  "Encrypt text with a key.",
			Flags:  []cli.Flag{vigenereKeyFlag, textFlag, textFileFlag},
			Action: vigenereEncrypt,
		},
		{
			Name:   "decrypt",
			Usage:  "Decrypt text with a key.",
			Flags:  []cli.Flag{vigenereKeyFlag, textFlag, textFileFlag},
			Action: vigenereDecrypt,
		},
		{
			Name:   "analyze",
			Usage:  "Estimate the key length, recover the key and decrypt.",
			Flags:  []cli.Flag{textFlag, textFileFlag, minPeriodFlag, maxPeriodFlag, scoresFlag},
			Action: vigenereAnalyze,
		},
		{
			Name:   "frequency",
			Usage:  "Print letter counts and the index of coincidence.",
			Flags:  []cli.Flag{textFlag, textFileFlag},
			Action: vigenereFrequency,
		},
	},
}

// parseVigenereKey accepts a keyword or a list of numeric shifts.
func parseVigenereKey(s string) (vigenere.Key, error) {
	if !strings.ContainsAny(s, "0123456789") {
		return vigenere.KeyFromWord(s)
	}
	fields := strings.Split(s, ",")
	shifts := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("parsing key shift %q: %w", f, err)
		}
		shifts = append(shifts, v)
	}
	return vigenere.NewKey(shifts...)
}

// inputText returns --text, the contents of --file, or stdin, in that order.
func inputText(c *cli.Context) (string, error) {
	if t := c.String(textFlag.Name); t != "" {
		return t, nil
	}
	var (
		data []byte
		err  error
	)
	if path := c.String(textFileFlag.Name); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("no input text")
	}
	return string(data), nil
}

func vigenereEncrypt(c *cli.Context) error {
	return vigenereApply(c, vigenere.Encrypt)
}

func vigenereDecrypt(c *cli.Context) error {
	return vigenereApply(c, vigenere.Decrypt)
}

func vigenereApply(c *cli.Context, fn func(string, vigenere.Key) (string, error)) error {
	key, err := parseVigenereKey(c.String(vigenereKeyFlag.Name))
	if err != nil {
		return err
	}
	text, err := inputText(c)
	if err != nil {
		return err
	}
	out, err := fn(text, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, out)
	return nil
}

func vigenereAnalyze(c *cli.Context) error {
	period := paramsFrom(c.Context).Period
	if c.IsSet(minPeriodFlag.Name) {
		period.Min = c.Int(minPeriodFlag.Name)
	}
	if c.IsSet(maxPeriodFlag.Name) {
		period.Max = c.Int(maxPeriodFlag.Name)
	}
	text, err := inputText(c)
	if err != nil {
		return err
	}

	res, err := frequency.Analyze(c.Context, text, period.Min, period.Max)
	if c.Bool(scoresFlag.Name) {
		for _, s := range res.Period.Scores {
			fmt.Fprintf(c.App.Writer, "period %2d  score %+.5f\n", s.Period, s.Score)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "period = %d\nkey = %s (%v)\nplaintext = %s\n",
		res.Period.Period, res.Key, []int(res.Key), res.Plaintext)
	return nil
}

func vigenereFrequency(c *cli.Context) error {
	text, err := inputText(c)
	if err != nil {
		return err
	}
	table := frequency.NewTable(text)
	for _, r := range table.Letters() {
		fmt.Fprintf(c.App.Writer, "%c %d\n", r, table.Count(r))
	}
	fmt.Fprintf(c.App.Writer, "letters = %d\nic = %+.5f\n", table.Total(), frequency.IndexOfCoincidence(text))
	return nil
}
