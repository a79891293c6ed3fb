package chip8

import (
	"errors"
	"fmt"
)

// ErrOperandShape is returned for an instruction whose operands do not fit the
// shape of its operation.
var ErrOperandShape = errors.New("operands do not match instruction shape")

// Operation identifies a decoded CHIP-8 instruction.
type Operation uint8

// Supported operations, grouped by opcode family.
const (
	OpInvalid Operation = iota

	OpClear  // 00E0
	OpReturn // 00EE

	OpJump              // 1nnn
	OpCall              // 2nnn
	OpSkipEqualConst    // 3xkk
	OpSkipNotEqualConst // 4xkk
	OpSkipEqualReg      // 5xy0
	OpLoadConst         // 6xkk
	OpAddConst          // 7xkk

	OpMove         // 8xy0
	OpOr           // 8xy1
	OpAnd          // 8xy2
	OpXor          // 8xy3
	OpAdd          // 8xy4
	OpSub          // 8xy5
	OpShiftRight   // 8xy6
	OpSubReverse   // 8xy7
	OpShiftLeft    // 8xyE
	OpSkipNotEqual // 9xy0

	OpLoadIndex // Annn
	OpJumpV0    // Bnnn
	OpRandom    // Cxkk
	OpDraw      // Dxyn

	OpSkipPressed    // Ex9E
	OpSkipNotPressed // ExA1

	OpGetDelay   // Fx07
	OpWaitKey    // Fx0A
	OpSetDelay   // Fx15
	OpSetSound   // Fx18
	OpAddIndex   // Fx1E
	OpFont       // Fx29
	OpStoreBCD   // Fx33
	OpStoreRegs  // Fx55
	OpLoadRegs   // Fx65
	operationEnd // marker, keep last
)

// Shape describes which operand fields of an Instruction are used.
type Shape uint8

// Operand shapes.
const (
	ShapeNone         Shape = iota
	ShapeAddress            // nnn
	ShapeRegConst           // x, kk
	ShapeRegReg             // x, y
	ShapeReg                // x
	ShapeRegRegNibble       // x, y, n
)

type operationInfo struct {
	mnemonic string
	shape    Shape
}

var operations = [operationEnd]operationInfo{
	OpInvalid:           {"invalid", ShapeNone},
	OpClear:             {"cls", ShapeNone},
	OpReturn:            {"ret", ShapeNone},
	OpJump:              {"jp", ShapeAddress},
	OpCall:              {"call", ShapeAddress},
	OpSkipEqualConst:    {"se", ShapeRegConst},
	OpSkipNotEqualConst: {"sne", ShapeRegConst},
	OpSkipEqualReg:      {"se", ShapeRegReg},
	OpLoadConst:         {"ld", ShapeRegConst},
	OpAddConst:          {"add", ShapeRegConst},
	OpMove:              {"ld", ShapeRegReg},
	OpOr:                {"or", ShapeRegReg},
	OpAnd:               {"and", ShapeRegReg},
	OpXor:               {"xor", ShapeRegReg},
	OpAdd:               {"add", ShapeRegReg},
	OpSub:               {"sub", ShapeRegReg},
	OpShiftRight:        {"shr", ShapeRegReg},
	OpSubReverse:        {"subn", ShapeRegReg},
	OpShiftLeft:         {"shl", ShapeRegReg},
	OpSkipNotEqual:      {"sne", ShapeRegReg},
	OpLoadIndex:         {"ld", ShapeAddress},
	OpJumpV0:            {"jp", ShapeAddress},
	OpRandom:            {"rnd", ShapeRegConst},
	OpDraw:              {"drw", ShapeRegRegNibble},
	OpSkipPressed:       {"skp", ShapeReg},
	OpSkipNotPressed:    {"sknp", ShapeReg},
	OpGetDelay:          {"ld", ShapeReg},
	OpWaitKey:           {"ld", ShapeReg},
	OpSetDelay:          {"ld", ShapeReg},
	OpSetSound:          {"ld", ShapeReg},
	OpAddIndex:          {"add", ShapeReg},
	OpFont:              {"ld", ShapeReg},
	OpStoreBCD:          {"ld", ShapeReg},
	OpStoreRegs:         {"ld", ShapeReg},
	OpLoadRegs:          {"ld", ShapeReg},
}

// Mnemonic returns the assembler mnemonic of the operation.
func (o Operation) Mnemonic() string {
	if o >= operationEnd {
		return operations[OpInvalid].mnemonic
	}
	return operations[o].mnemonic
}

// Shape returns the operand shape of the operation.
func (o Operation) Shape() Shape {
	if o >= operationEnd {
		return ShapeNone
	}
	return operations[o].shape
}

// Valid returns whether the operation is one of the supported operations.
func (o Operation) Valid() bool {
	return o > OpInvalid && o < operationEnd
}

func (o Operation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Operation(%d)", uint8(o))
	}
	return o.Mnemonic()
}

func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeAddress:
		return "address"
	case ShapeRegConst:
		return "register+constant"
	case ShapeRegReg:
		return "register+register"
	case ShapeReg:
		return "register"
	case ShapeRegRegNibble:
		return "register+register+nibble"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// Instruction is a decoded CHIP-8 instruction. Only the operand fields of the
// operation's shape are meaningful.
type Instruction struct {
	Op   Operation
	Word uint16 // raw instruction word

	Address uint16 // nnn
	X       uint8  // register index x
	Y       uint8  // register index y
	Byte    uint8  // kk
	Nibble  uint8  // n
}

// OperandError is returned for an instruction with operands outside its shape.
type OperandError struct {
	Op     Operation
	Detail string
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("%s (%s): %s", ErrOperandShape, e.Op, e.Detail)
}

func (e *OperandError) Unwrap() error {
	return ErrOperandShape
}

// Validate checks that the operation is known and that all operands used by
// its shape are in range.
func (i Instruction) Validate() error {
	if !i.Op.Valid() {
		return &OperandError{Op: i.Op, Detail: "unknown operation"}
	}

	shape := i.Op.Shape()
	switch shape {
	case ShapeAddress:
		if i.Address > MaxAddress {
			return &OperandError{Op: i.Op, Detail: fmt.Sprintf("address $%X exceeds 12 bits", i.Address)}
		}
	case ShapeReg, ShapeRegConst:
		return checkRegisters(i.Op, i.X)
	case ShapeRegReg:
		return checkRegisters(i.Op, i.X, i.Y)
	case ShapeRegRegNibble:
		if i.Nibble > 0xF {
			return &OperandError{Op: i.Op, Detail: fmt.Sprintf("count %d exceeds 4 bits", i.Nibble)}
		}
		return checkRegisters(i.Op, i.X, i.Y)
	case ShapeNone:
	}
	return nil
}

func checkRegisters(op Operation, regs ...uint8) error {
	for _, r := range regs {
		if r >= RegisterCount {
			return &OperandError{Op: op, Detail: fmt.Sprintf("register V%d does not exist", r)}
		}
	}
	return nil
}
