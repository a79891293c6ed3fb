// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/terminal"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run(retroapp.Context()))
}

// run executes the program and returns the process exit code. All cleanup
// including restoring the terminal happens before it returns.
func run(parent context.Context) int {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Flags)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		return 1
	}

	logger := config.CreateLogger(opts.Flags)
	app.PrintBanner(logger, opts, version, commit, date)
	app.PrintInfo(logger, opts)

	var keys interpreter.KeySource
	if !opts.Headless {
		pad, stop := startKeyHost(logger, opts, cancel)
		defer stop()
		if pad != nil {
			keys = pad
		}
	}

	r := runner.New(logger)
	if _, err := r.Execute(ctx, opts, keys, os.Stdout); err != nil {
		logger.Error("Running failed", log.Err(err))
		return 1
	}
	if ctx.Err() != nil {
		logger.Info("Operation cancelled")
	}
	return 0
}

// startKeyHost reads the keypad from the terminal on stdin. ESC and Ctrl-C
// cancel the run. Without a terminal no keypad is returned.
func startKeyHost(logger *log.Logger, opts options.Program, cancel context.CancelFunc) (*keypad.Keypad, func()) {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		logger.Warn("Standard input is not a terminal, keypad disabled")
		return nil, func() {}
	}

	if fits, err := terminal.Fits(int(os.Stdout.Fd()), chip8.DisplayWidth, chip8.DisplayHeight); err == nil && !fits {
		logger.Warn("Terminal is smaller than the display",
			log.Int("columns", chip8.DisplayWidth),
			log.Int("rows", chip8.DisplayHeight))
	}

	pad := keypad.New()
	host := terminal.NewHost(logger, pad, opts.KeyHold, cancel)
	if err := host.Start(fd); err != nil {
		logger.Warn("Reading keys from terminal failed, keypad disabled", log.Err(err))
		return nil, func() {}
	}
	return pad, host.Stop
}
