// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the message of the error and the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after rom file, please pass the rom file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks the option values
func validateOptions(opts options.Program) error {
	switch {
	case opts.Speed <= 0:
		return fmt.Errorf("invalid speed %d, must be positive", opts.Speed)
	case opts.TimerFrequency <= 0:
		return fmt.Errorf("invalid timer frequency %d, must be positive", opts.TimerFrequency)
	case opts.KeyHold <= 0:
		return fmt.Errorf("invalid key hold duration %s, must be positive", opts.KeyHold)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.IntVar(&opts.Speed, "speed", options.DefaultSpeed, "instructions executed per second")
	flags.IntVar(&opts.TimerFrequency, "timerfreq", options.DefaultTimerFrequency, "delay and sound timer frequency in Hz")
	flags.Uint64Var(&opts.MaxCycles, "cycles", 0, "stop after executing this many instructions, 0 runs until interrupted")
	flags.DurationVar(&opts.KeyHold, "keyhold", options.DefaultKeyHold, "duration a key stays pressed after a terminal key press")
	flags.BoolVar(&opts.ShiftSourceY, "shift-vy", false, "shift instructions use Vy as source like the COSMAC VIP")
	flags.BoolVar(&opts.Headless, "headless", false, "do not render the display or read keys from the terminal")
	flags.BoolVar(&opts.Dump, "dump", false, "print state, registers, disassembly and memory when the run ends")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, enables debug logging")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
