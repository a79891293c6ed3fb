// Package options contains the program options.
package options

import "time"

// Default option values.
const (
	DefaultSpeed          = 500 // instructions per second
	DefaultTimerFrequency = 60
	DefaultKeyHold        = 150 * time.Millisecond
)

// Parameters contains file path options.
type Parameters struct {
	Input  string // ROM file to run
	System string // system of the ROM, detected from the file extension if empty
}

// Flags contains behavior options.
type Flags struct {
	Speed          int           // instructions per second
	TimerFrequency int           // delay and sound timer frequency in Hz
	MaxCycles      uint64        // stop after this many instructions, 0 runs until cancelled
	KeyHold        time.Duration // how long a terminal key press is held
	Headless       bool          // do not render the display or read keys from the terminal
	Dump           bool          // write registers, state and memory when the run ends
	Trace          bool          // log every executed instruction
	Debug          bool
	Quiet          bool
}

// Quirks selects between instruction behaviors that differ across CHIP-8
// interpreter revisions.
type Quirks struct {
	// ShiftSourceY makes 8xy6 and 8xyE shift Vy into Vx like the
	// COSMAC VIP interpreter. By default Vx is shifted in place.
	ShiftSourceY bool
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Quirks
}

// New returns program options with default values.
func New() Program {
	return Program{
		Flags: Flags{
			Speed:          DefaultSpeed,
			TimerFrequency: DefaultTimerFrequency,
			KeyHold:        DefaultKeyHold,
		},
	}
}
