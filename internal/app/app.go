// Package app provides the application helpers for the emulator banner and
// ROM information output.
package app

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner logs the program name and version unless running quietly.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo logs the ROM that is about to run and the interpreter settings.
func PrintInfo(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	logger.Info("Processing Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("speed", opts.Speed),
	)
	if opts.ShiftSourceY {
		logger.Info("Shift instructions use Vy as source")
	}
	if opts.MaxCycles > 0 {
		logger.Info("Stopping after cycle limit", log.Int("cycles", int(opts.MaxCycles)))
	}
}
