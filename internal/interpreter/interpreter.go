// Package interpreter implements the CHIP-8 execute engine: memory, program
// counter, index register, call stack, register bank, framebuffer and the
// delay and sound timers.
package interpreter

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/register"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// KeySource provides the keypad state to the interpreter.
type KeySource interface {
	// IsPressed returns whether the key 0-F is pressed.
	IsPressed(key uint8) bool
	// PressedKey returns a pressed key, if any.
	PressedKey() (uint8, bool)
}

// Option configures an Interpreter.
type Option func(*config)

type config struct {
	keys           KeySource
	source         rand.Source
	quirks         options.Quirks
	trace          bool
	timerFrequency int
}

// WithKeys sets the keypad state source. Without one no key is ever pressed.
func WithKeys(keys KeySource) Option {
	return func(c *config) {
		c.keys = keys
	}
}

// WithRandom sets the random source used by the rnd instruction.
func WithRandom(source rand.Source) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithQuirks selects revision specific instruction behavior.
func WithQuirks(quirks options.Quirks) Option {
	return func(c *config) {
		c.quirks = quirks
	}
}

// WithTrace enables logging of every executed instruction and tracking of
// the executed addresses.
func WithTrace(trace bool) Option {
	return func(c *config) {
		c.trace = trace
	}
}

// WithTimerFrequency sets the frequency of the delay and sound timers.
func WithTimerFrequency(frequency int) Option {
	return func(c *config) {
		c.timerFrequency = frequency
	}
}

// Interpreter is a CHIP-8 virtual machine. It is not safe for concurrent use,
// only the timers run on their own goroutines.
type Interpreter struct {
	logger *log.Logger

	memory [chip8.MemorySize]byte
	rom    []byte // last loaded program, restored by Reset

	pc    uint16
	index uint16
	stack []uint16

	registers *register.Bank
	screen    *display.Framebuffer
	delay     *timer.Timer
	sound     *timer.Timer

	keys   KeySource
	random *rand.Rand
	quirks options.Quirks

	trace    bool
	executed set.Set[uint16]

	cycles uint64
	halted error // fatal error that stopped execution
}

// New returns an interpreter with the font loaded and the program counter at
// the program start.
func New(logger *log.Logger, opts ...Option) (*Interpreter, error) {
	cfg := config{
		keys:           noKeys{},
		timerFrequency: timer.DefaultFrequency,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.source == nil {
		cfg.source = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	registers, err := register.New(chip8.RegisterCount, chip8.RegisterBits)
	if err != nil {
		return nil, fmt.Errorf("creating registers: %w", err)
	}
	screen, err := display.New(chip8.DisplayWidth, chip8.DisplayHeight)
	if err != nil {
		return nil, fmt.Errorf("creating display: %w", err)
	}
	delay, err := timer.New(cfg.timerFrequency)
	if err != nil {
		return nil, fmt.Errorf("creating delay timer: %w", err)
	}
	sound, err := timer.New(cfg.timerFrequency)
	if err != nil {
		return nil, fmt.Errorf("creating sound timer: %w", err)
	}

	ip := &Interpreter{
		logger:    logger,
		registers: registers,
		screen:    screen,
		delay:     delay,
		sound:     sound,
		keys:      cfg.keys,
		random:    rand.New(cfg.source),
		quirks:    cfg.quirks,
		trace:     cfg.trace,
		stack:     make([]uint16, 0, chip8.StackDepth),
		executed:  set.New[uint16](),
		pc:        chip8.ProgramStart,
	}
	copy(ip.memory[chip8.FontAddress:], chip8.Font[:])
	return ip, nil
}

// Load copies the program into memory at the program start. The program area
// beyond the ROM is cleared.
func (ip *Interpreter) Load(rom []byte) error {
	if len(rom) > chip8.MaxProgramSize {
		return &LoadError{Size: len(rom)}
	}

	ip.rom = slices.Clone(rom)
	clear(ip.memory[chip8.ProgramStart:])
	copy(ip.memory[chip8.ProgramStart:], rom)

	ip.logger.Debug("Program loaded",
		log.Int("size", len(rom)),
		log.Hex("address", uint16(chip8.ProgramStart)))
	return nil
}

// Reset restores the state after construction and reloads the last program.
func (ip *Interpreter) Reset() {
	ip.memory = [chip8.MemorySize]byte{}
	copy(ip.memory[chip8.FontAddress:], chip8.Font[:])
	copy(ip.memory[chip8.ProgramStart:], ip.rom)

	ip.pc = chip8.ProgramStart
	ip.index = 0
	ip.stack = ip.stack[:0]
	ip.registers.Reset()
	ip.screen.Clear()
	ip.delay.Abort()
	ip.sound.Abort()
	ip.executed = set.New[uint16]()
	ip.cycles = 0
	ip.halted = nil
}

// Close stops the timers.
func (ip *Interpreter) Close() {
	ip.delay.Close()
	ip.sound.Close()
}

// PC returns the program counter.
func (ip *Interpreter) PC() uint16 {
	return ip.pc
}

// Index returns the index register I.
func (ip *Interpreter) Index() uint16 {
	return ip.index
}

// SP returns the number of return addresses on the stack.
func (ip *Interpreter) SP() int {
	return len(ip.stack)
}

// Stack returns a copy of the return addresses, oldest first.
func (ip *Interpreter) Stack() []uint16 {
	return slices.Clone(ip.stack)
}

// Registers returns the register bank V0-VF.
func (ip *Interpreter) Registers() *register.Bank {
	return ip.registers
}

// V returns the value of register Vx.
func (ip *Interpreter) V(x uint8) uint8 {
	return uint8(ip.registers.Read(int(x)))
}

// Display returns the framebuffer.
func (ip *Interpreter) Display() *display.Framebuffer {
	return ip.screen
}

// DelayTimer returns the delay timer.
func (ip *Interpreter) DelayTimer() *timer.Timer {
	return ip.delay
}

// SoundTimer returns the sound timer.
func (ip *Interpreter) SoundTimer() *timer.Timer {
	return ip.sound
}

// Memory returns a copy of the memory image.
func (ip *Interpreter) Memory() []byte {
	return slices.Clone(ip.memory[:])
}

// ReadMemory returns the byte at the address, wrapping at the memory size.
func (ip *Interpreter) ReadMemory(address uint16) byte {
	return ip.memory[address&chip8.MaxAddress]
}

// Cycles returns the number of executed instructions.
func (ip *Interpreter) Cycles() uint64 {
	return ip.cycles
}

// Halted returns whether a fatal error stopped the interpreter.
func (ip *Interpreter) Halted() bool {
	return ip.halted != nil
}

// Executed returns the addresses of executed instructions, only tracked while
// tracing is enabled.
func (ip *Interpreter) Executed() set.Set[uint16] {
	return ip.executed
}

// noKeys is a key source without any pressed key.
type noKeys struct{}

func (noKeys) IsPressed(uint8) bool      { return false }
func (noKeys) PressedKey() (uint8, bool) { return 0, false }
