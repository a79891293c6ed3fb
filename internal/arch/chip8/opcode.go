package chip8

import (
	"errors"
	"fmt"
)

// ErrInvalidOpcode is returned for instruction words that do not decode to a
// supported operation.
var ErrInvalidOpcode = errors.New("invalid opcode")

// DecodeError describes an instruction word that could not be decoded.
type DecodeError struct {
	Word uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %04X", ErrInvalidOpcode, e.Word)
}

func (e *DecodeError) Unwrap() error {
	return ErrInvalidOpcode
}

// subcode tables of the opcode families that need a secondary dispatch.
var (
	systemOps = map[uint8]Operation{
		0xE0: OpClear,
		0xEE: OpReturn,
	}

	arithmeticOps = map[uint8]Operation{
		0x0: OpMove,
		0x1: OpOr,
		0x2: OpAnd,
		0x3: OpXor,
		0x4: OpAdd,
		0x5: OpSub,
		0x6: OpShiftRight,
		0x7: OpSubReverse,
		0xE: OpShiftLeft,
	}

	keyOps = map[uint8]Operation{
		0x9E: OpSkipPressed,
		0xA1: OpSkipNotPressed,
	}

	miscOps = map[uint8]Operation{
		0x07: OpGetDelay,
		0x0A: OpWaitKey,
		0x15: OpSetDelay,
		0x18: OpSetSound,
		0x1E: OpAddIndex,
		0x29: OpFont,
		0x33: OpStoreBCD,
		0x55: OpStoreRegs,
		0x65: OpLoadRegs,
	}

	// families decoded by the top nibble alone.
	directOps = [16]Operation{
		0x1: OpJump,
		0x2: OpCall,
		0x3: OpSkipEqualConst,
		0x4: OpSkipNotEqualConst,
		0x5: OpSkipEqualReg,
		0x6: OpLoadConst,
		0x7: OpAddConst,
		0x9: OpSkipNotEqual,
		0xA: OpLoadIndex,
		0xB: OpJumpV0,
		0xC: OpRandom,
		0xD: OpDraw,
	}
)

// Decode decodes a 16-bit instruction word into an Instruction.
// Unknown words return a *DecodeError.
func Decode(word uint16) (Instruction, error) {
	nibble := word >> 12
	low := uint8(word & 0x00FF)

	var op Operation
	switch nibble {
	case 0x0:
		if word&0x0F00 == 0 {
			op = systemOps[low]
		}
	case 0x8:
		op = arithmeticOps[low&0x0F]
	case 0xE:
		op = keyOps[low]
	case 0xF:
		op = miscOps[low]
	case 0x5, 0x9:
		if word&0x000F == 0 {
			op = directOps[nibble]
		}
	default:
		op = directOps[nibble]
	}

	if op == OpInvalid {
		return Instruction{Word: word}, &DecodeError{Word: word}
	}
	return operands(op, word), nil
}

// operands extracts the operand fields used by the shape of the operation.
func operands(op Operation, word uint16) Instruction {
	ins := Instruction{
		Op:   op,
		Word: word,
	}

	switch op.Shape() {
	case ShapeAddress:
		ins.Address = word & 0x0FFF
	case ShapeRegConst:
		ins.X = registerX(word)
		ins.Byte = uint8(word & 0x00FF)
	case ShapeRegReg:
		ins.X = registerX(word)
		ins.Y = registerY(word)
	case ShapeReg:
		ins.X = registerX(word)
	case ShapeRegRegNibble:
		ins.X = registerX(word)
		ins.Y = registerY(word)
		ins.Nibble = uint8(word & 0x000F)
	case ShapeNone:
	}
	return ins
}

// registerX extracts the X register nibble from a CHIP-8 opcode.
func registerX(word uint16) uint8 {
	return uint8((word & 0x0F00) >> 8)
}

// registerY extracts the Y register nibble from a CHIP-8 opcode.
func registerY(word uint16) uint8 {
	return uint8((word & 0x00F0) >> 4)
}
