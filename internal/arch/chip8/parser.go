package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// lookupOpcode finds the opcode table entry of the instruction word by
// matching the masked word against the entries of its top nibble.
func lookupOpcode(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// Name returns the mnemonic of the instruction word as listed in the opcode
// table, falling back to the decoded operation mnemonic.
func Name(ins Instruction) string {
	if op, ok := lookupOpcode(ins.Word); ok && ins.Op.Valid() {
		return op.Instruction.Name
	}
	return ins.Op.Mnemonic()
}

// IsSkip returns whether the instruction conditionally skips the next one.
func IsSkip(ins Instruction) bool {
	return ins.Op.Valid() && chip8.SkipInstructions.Contains(Name(ins))
}

// IsControlFlow returns whether the instruction sets the program counter
// directly.
func IsControlFlow(ins Instruction) bool {
	switch ins.Op {
	case OpJump, OpJumpV0, OpCall, OpReturn:
		return true
	default:
		return false
	}
}
