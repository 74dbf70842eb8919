package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { cli.PrintHelp(os.Stdout) }

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(cli.ExitOK)
		}
		ui.NewPrinter(os.Stdout, os.Stderr, "").Fail("config: " + err.Error())
		os.Exit(cli.ExitUsage)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		ui.NewPrinter(os.Stdout, os.Stderr, cfg.Theme).Fail("config: " + err.Error())
		os.Exit(cli.ExitUsage)
	}
	logger := logging.New(os.Stderr, level)
	printer := ui.NewPrinter(os.Stdout, os.Stderr, cfg.Theme)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(cfg.Args, cli.Options{
		Group: cfg.Group,
		Store: jsonstore.New(cfg.DataFile, logger),
		UI:    printer,
		Log:   logger,
	})
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
