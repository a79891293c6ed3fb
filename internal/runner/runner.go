// Package runner orchestrates loading and running a CHIP-8 program.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/dump"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the number of frames per second. Instructions are executed in
// batches once per frame.
const FrameRate = 60

// Runner orchestrates the complete run workflow.
type Runner struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new runner.
func New(logger *log.Logger) *Runner {
	return &Runner{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute detects the system, loads the ROM named by the options and runs it.
func (r *Runner) Execute(ctx context.Context, opts options.Program, keys interpreter.KeySource,
	out io.Writer) (*interpreter.Interpreter, error) {

	system, err := r.detector.Detect(opts)
	if err != nil {
		return nil, fmt.Errorf("detecting system: %w", err)
	}

	rom, err := r.loader.Load(opts, system)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	return r.Run(ctx, opts, rom, keys, out)
}

// Run executes the program until the context is cancelled, the cycle limit
// is reached or a fatal error occurs. Recoverable errors are logged and the
// failing instruction is skipped. Unless headless, the display is rendered
// to out after every frame that changed it. The interpreter is returned for
// inspection, its timers are closed.
func (r *Runner) Run(ctx context.Context, opts options.Program, rom []byte, keys interpreter.KeySource,
	out io.Writer) (*interpreter.Interpreter, error) {

	if opts.Speed <= 0 {
		return nil, fmt.Errorf("invalid speed %d", opts.Speed)
	}

	ipOpts := []interpreter.Option{
		interpreter.WithQuirks(opts.Quirks),
		interpreter.WithTrace(opts.Trace),
		interpreter.WithTimerFrequency(opts.TimerFrequency),
	}
	if keys != nil {
		ipOpts = append(ipOpts, interpreter.WithKeys(keys))
	}

	ip, err := interpreter.New(r.logger, ipOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating interpreter: %w", err)
	}
	defer ip.Close()

	if err := ip.Load(rom); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	r.logger.Info("Running program",
		log.Int("size", len(rom)),
		log.Int("speed", opts.Speed),
		log.Int("timer_frequency", opts.TimerFrequency))

	err = r.run(ctx, ip, opts, out)

	if opts.Dump {
		if dumpErr := writeDump(out, ip, len(rom)); dumpErr != nil {
			return ip, errors.Join(err, dumpErr)
		}
	}
	return ip, err
}

// run executes frames of instructions paced by a ticker.
func (r *Runner) run(ctx context.Context, ip *interpreter.Interpreter, opts options.Program, out io.Writer) error {
	var renderer *terminal.Renderer
	changed := false
	if !opts.Headless {
		renderer = terminal.NewRenderer(out)
		ip.Display().SetDrawHook(func() { changed = true })
	}

	steps := max(opts.Speed/FrameRate, 1)
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Run cancelled", log.Int("cycles", int(ip.Cycles())))
			return nil
		case <-ticker.C:
		}

		done, err := r.frame(ip, steps, opts.MaxCycles)

		if changed {
			changed = false
			if renderErr := renderer.Render(ip.Display()); renderErr != nil {
				return fmt.Errorf("rendering frame: %w", renderErr)
			}
		}

		if err != nil || done {
			return err
		}
	}
}

// frame executes up to steps instructions. It returns whether the cycle limit
// was reached or a fatal error occurred.
func (r *Runner) frame(ip *interpreter.Interpreter, steps int, maxCycles uint64) (bool, error) {
	for range steps {
		if maxCycles > 0 && ip.Cycles() >= maxCycles {
			r.logger.Info("Cycle limit reached", log.Int("cycles", int(ip.Cycles())))
			return true, nil
		}

		err := ip.Step()
		if err == nil {
			continue
		}

		address, word := errorLocation(err)
		if interpreter.IsFatal(err) {
			r.logger.Error("Execution stopped",
				log.Err(err), log.Hex("address", address), log.Hex("opcode", word))
			return true, fmt.Errorf("executing program: %w", err)
		}
		r.logger.Warn("Skipping instruction",
			log.Err(err), log.Hex("address", address), log.Hex("opcode", word))
	}
	return false, nil
}

// errorLocation returns the address and word of the failing instruction.
func errorLocation(err error) (uint16, uint16) {
	var insErr *interpreter.InstructionError
	if errors.As(err, &insErr) {
		return insErr.Address, insErr.Word
	}
	return 0, 0
}

// writeDump writes the interpreter state, the registers, the disassembly of
// the program and the memory image.
func writeDump(w io.Writer, ip *interpreter.Interpreter, romSize int) error {
	mem := ip.Memory()
	end := uint16(chip8.ProgramStart + romSize + romSize%2)

	sections := []struct {
		name  string
		write func() error
	}{
		{"state", func() error { return dump.Write(w, dump.State(ip)) }},
		{"registers", func() error { return dump.Write(w, dump.Registers(ip.Registers())) }},
		{"disassembly", func() error {
			return dump.Write(w, dump.Disassembly(mem, chip8.ProgramStart, end, ip.Executed()))
		}},
		{"memory", func() error { return dump.Write(w, dump.Memory(mem)) }},
	}

	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "; %s\n", section.name); err != nil {
			return fmt.Errorf("writing dump header: %w", err)
		}
		if err := section.write(); err != nil {
			return fmt.Errorf("writing %s dump: %w", section.name, err)
		}
	}
	return nil
}
