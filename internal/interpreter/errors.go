package interpreter

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

// Fatal errors, the interpreter halts and keeps its state for inspection.
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrHalted         = errors.New("interpreter halted")
)

// Recoverable errors, the offending instruction is skipped.
var (
	ErrInvalidFontIndex = errors.New("invalid font index")
	ErrProtectedMemory  = errors.New("write to protected memory")
)

// ErrROMTooLarge is returned when a ROM does not fit into program memory.
var ErrROMTooLarge = errors.New("rom too large")

// InstructionError adds the location of the failing instruction to an error
// returned by Step.
type InstructionError struct {
	Address uint16
	Word    uint16
	Err     error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("instruction %04X at $%03X: %s", e.Word, e.Address, e.Err)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}

// FontError is returned for a font lookup of a value that is not a hex digit.
type FontError struct {
	Value int
}

func (e *FontError) Error() string {
	return fmt.Sprintf("%s: $%02X", ErrInvalidFontIndex, e.Value)
}

func (e *FontError) Unwrap() error {
	return ErrInvalidFontIndex
}

// MemoryError is returned for a memory write into the reserved area below the
// program start.
type MemoryError struct {
	Address uint16
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("%s: $%03X", ErrProtectedMemory, e.Address)
}

func (e *MemoryError) Unwrap() error {
	return ErrProtectedMemory
}

// LoadError is returned for a ROM that does not fit into memory.
type LoadError struct {
	Size int
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %d bytes (max: %d)", ErrROMTooLarge, e.Size, chip8.MaxProgramSize)
}

func (e *LoadError) Unwrap() error {
	return ErrROMTooLarge
}

// IsFatal returns whether the error stops the interpreter.
func IsFatal(err error) bool {
	return errors.Is(err, ErrStackOverflow) ||
		errors.Is(err, ErrStackUnderflow) ||
		errors.Is(err, ErrHalted)
}

// IsRecoverable returns whether execution can continue after the error.
func IsRecoverable(err error) bool {
	return err != nil && !IsFatal(err)
}
