package main

import (
	"errors"
	"log/slog"
	"os"

	"palswap/remap"
	"palswap/swap"

	"github.com/alecthomas/kong"
)

const (
	exitFailure  = 1
	exitUsage    = 2
	exitInternal = 3
)

func newParser(cli *swap.CLICmd) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("palswap"),
		kong.Description("Recolor a texture with the palette of another image and print it as base64 PNG."),
	)
}

func exitCode(err error) int {
	if errors.Is(err, remap.ErrColorNotFound) {
		return exitInternal
	}
	return exitFailure
}

func main() {
	var cli swap.CLICmd
	parser, err := newParser(&cli)
	if err != nil {
		slog.Error("invalid command line model", "error", err)
		os.Exit(exitInternal)
	}

	if _, err = parser.Parse(os.Args[1:]); err != nil {
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(false)
		}
		slog.Error("invalid arguments", "error", err)
		os.Exit(exitUsage)
	}

	if err = cli.Run(os.Stdout); err != nil {
		slog.Error("palette swap failed", "error", err)
		os.Exit(exitCode(err))
	}
}
