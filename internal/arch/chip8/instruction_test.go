package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestOperation_Shape(t *testing.T) {
	tests := []struct {
		op       Operation
		expected Shape
	}{
		{OpClear, ShapeNone},
		{OpJump, ShapeAddress},
		{OpLoadConst, ShapeRegConst},
		{OpAdd, ShapeRegReg},
		{OpStoreBCD, ShapeReg},
		{OpDraw, ShapeRegRegNibble},
		{OpInvalid, ShapeNone},
		{Operation(200), ShapeNone},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op.Shape())
		})
	}
}

func TestOperation_Valid(t *testing.T) {
	assert.False(t, OpInvalid.Valid())
	assert.True(t, OpClear.Valid())
	assert.True(t, OpLoadRegs.Valid())
	assert.False(t, operationEnd.Valid())
	assert.Equal(t, "Operation(0)", OpInvalid.String())
	assert.Equal(t, "drw", OpDraw.String())
}

func TestInstruction_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ins   Instruction
		valid bool
	}{
		{"valid jump", Instruction{Op: OpJump, Address: 0xFFF}, true},
		{"address too large", Instruction{Op: OpJump, Address: 0x1000}, false},
		{"valid register", Instruction{Op: OpSetDelay, X: 0xF}, true},
		{"register x too large", Instruction{Op: OpSetDelay, X: 0x10}, false},
		{"register y too large", Instruction{Op: OpAdd, X: 1, Y: 0x10}, false},
		{"const with bad register", Instruction{Op: OpLoadConst, X: 0x20}, false},
		{"draw count too large", Instruction{Op: OpDraw, Nibble: 0x10}, false},
		{"unknown operation", Instruction{Op: OpInvalid}, false},
		{"no operands", Instruction{Op: OpClear, X: 0xFF}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ins.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrOperandShape))
		})
	}
}
