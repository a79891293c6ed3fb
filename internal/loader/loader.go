// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
)

var (
	// ErrUnsupportedSystem is returned for ROMs of systems other than CHIP-8.
	ErrUnsupportedSystem = errors.New("unsupported system")
	// ErrEmptyROM is returned for a ROM file without content.
	ErrEmptyROM = errors.New("empty rom")
	// ErrROMTooLarge is returned for a ROM that does not fit into program memory.
	ErrROMTooLarge = errors.New("rom too large")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file named by the options. CHIP-8 ROMs are raw program
// bytes without a header.
func (l *Loader) Load(opts options.Program, system arch.System) ([]byte, error) {
	if system != arch.CHIP8System {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSystem, system)
	}

	rom, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	switch {
	case len(rom) == 0:
		return nil, fmt.Errorf("%w: %s", ErrEmptyROM, opts.Input)
	case len(rom) > chip8.MaxProgramSize:
		return nil, fmt.Errorf("%w: %s has %d bytes (max: %d)",
			ErrROMTooLarge, opts.Input, len(rom), chip8.MaxProgramSize)
	}
	return rom, nil
}
