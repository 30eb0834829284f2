// Package main provides the cryptolab-cli command line interface.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	cryptolab "github.com/BackendStack21/cryptolab-go"
	"github.com/BackendStack21/cryptolab-go/core"
	"github.com/BackendStack21/cryptolab-go/log"
)

const appName = "cryptolab-cli"

// Automatically set through -ldflags
// Example: go install -ldflags "-X main.version=`git describe --tags`"
var version = "dev"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "TOML file with prime pool, period range, seed and log settings.",
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "If set, verbosity is at the debug level.",
}

var jsonLogsFlag = &cli.BoolFlag{
	Name:  "json-logs",
	Usage: "Write logs as JSON instead of console lines.",
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      appName,
		Usage:     "RSA and Vigenère toolkit, with the attacks that break them",
		Version:   fmt.Sprintf("%s (library %s)", version, cryptolab.Version),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{configFlag, verboseFlag, jsonLogsFlag},
		Before:    setup,
		Commands: []*cli.Command{
			rsaCommand,
			vigenereCommand,
			numtheoryCommand,
			configCommand,
		},
	}
}

// setup loads the configuration, builds the logger and stores both on the
// context every subcommand inherits.
func setup(c *cli.Context) error {
	params := core.DefaultParams
	if path := c.String(configFlag.Name); path != "" {
		loaded, err := core.LoadParams(path)
		if err != nil {
			return err
		}
		params = loaded
	}
	if c.Bool(verboseFlag.Name) {
		params.Log.Level = "debug"
	}
	if c.Bool(jsonLogsFlag.Name) {
		params.Log.JSON = true
	}

	logger, err := core.NewLogger(params)
	if err != nil {
		return err
	}
	ctx := log.ToContext(c.Context, logger.Named(appName))
	c.Context = withParams(ctx, params)
	return nil
}

type paramsKey struct{}

func withParams(ctx context.Context, p cryptolab.Params) context.Context {
	return context.WithValue(ctx, paramsKey{}, p)
}

func paramsFrom(ctx context.Context) cryptolab.Params {
	if p, ok := ctx.Value(paramsKey{}).(cryptolab.Params); ok {
		return p
	}
	return core.DefaultParams
}

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "Print the effective configuration as TOML.",
	Action: func(c *cli.Context) error {
		return core.EncodeParams(c.App.Writer, paramsFrom(c.Context))
	},
}
