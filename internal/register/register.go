// Package register implements a bank of fixed width unsigned registers with
// modulo write semantics and a last write overflow flag.
package register

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrInvalidConfig is returned for a bank with an unsupported size or width.
	ErrInvalidConfig = errors.New("invalid register bank configuration")
	// ErrIndexOutOfRange is the panic value cause for accessing a register
	// that does not exist.
	ErrIndexOutOfRange = errors.New("register index out of range")
)

// MaxBits is the widest supported register.
const MaxBits = 16

// Bank is a fixed array of registers of the same bit width.
type Bank struct {
	bits     int
	modulus  int
	values   []int
	overflow bool // result of the most recent write
}

// New returns a bank of count registers that are bits wide.
func New(count, bits int) (*Bank, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: register count %d", ErrInvalidConfig, count)
	}
	if bits < 1 || bits > MaxBits {
		return nil, fmt.Errorf("%w: register width %d bits", ErrInvalidConfig, bits)
	}

	return &Bank{
		bits:    bits,
		modulus: 1 << bits,
		values:  make([]int, count),
	}, nil
}

// Read returns the value of the register.
func (b *Bank) Read(index int) int {
	b.check(index)
	return b.values[index]
}

// Write stores value reduced modulo 2^bits into the register. It returns the
// stored value and whether the raw value was outside of the register range.
// The overflow result is also kept until the next write, see Overflow.
func (b *Bank) Write(index, value int) (int, bool) {
	b.check(index)

	b.overflow = value < 0 || value >= b.modulus
	stored := value % b.modulus
	if stored < 0 {
		stored += b.modulus
	}
	b.values[index] = stored
	return stored, b.overflow
}

// Overflow returns whether the most recent write overflowed.
func (b *Bank) Overflow() bool {
	return b.overflow
}

// Count returns the number of registers.
func (b *Bank) Count() int {
	return len(b.values)
}

// Bits returns the register width.
func (b *Bank) Bits() int {
	return b.bits
}

// Max returns the largest value a register can hold.
func (b *Bank) Max() int {
	return b.modulus - 1
}

// Reset zeroes all registers and clears the overflow flag.
func (b *Bank) Reset() {
	clear(b.values)
	b.overflow = false
}

// All iterates over register index and value pairs.
func (b *Bank) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i, v := range b.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (b *Bank) check(index int) {
	if index < 0 || index >= len(b.values) {
		panic(fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(b.values)))
	}
}
