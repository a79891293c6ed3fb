package chip8

import "fmt"

// Format returns the assembler text of the instruction, for example "jp $234"
// or "ld V0, $05". Invalid instructions are formatted as a data word.
func Format(ins Instruction) string {
	if !ins.Op.Valid() {
		return fmt.Sprintf("dw $%04X", ins.Word)
	}

	name := Name(ins)
	if params := formatParams(ins); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operands of an instruction.
func formatParams(ins Instruction) string {
	switch ins.Op {
	case OpClear, OpReturn:
		return "" // No parameters
	case OpJump, OpCall:
		return fmt.Sprintf("$%03X", ins.Address)
	case OpJumpV0:
		return fmt.Sprintf("V0, $%03X", ins.Address)
	case OpLoadIndex:
		return fmt.Sprintf("I, $%03X", ins.Address)
	case OpSkipEqualConst, OpSkipNotEqualConst, OpLoadConst, OpAddConst, OpRandom:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.Byte)
	case OpSkipEqualReg, OpSkipNotEqual, OpMove, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpSubReverse:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case OpShiftRight, OpShiftLeft, OpSkipPressed, OpSkipNotPressed:
		return fmt.Sprintf("V%X", ins.X)
	case OpDraw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.Nibble)
	default:
		return formatMiscParams(ins)
	}
}

// formatMiscParams formats the operands of the Fx instruction family.
func formatMiscParams(ins Instruction) string {
	switch ins.Op {
	case OpGetDelay:
		return fmt.Sprintf("V%X, DT", ins.X)
	case OpWaitKey:
		return fmt.Sprintf("V%X, K", ins.X)
	case OpSetDelay:
		return fmt.Sprintf("DT, V%X", ins.X)
	case OpSetSound:
		return fmt.Sprintf("ST, V%X", ins.X)
	case OpAddIndex:
		return fmt.Sprintf("I, V%X", ins.X)
	case OpFont:
		return fmt.Sprintf("F, V%X", ins.X)
	case OpStoreBCD:
		return fmt.Sprintf("B, V%X", ins.X)
	case OpStoreRegs:
		return fmt.Sprintf("[I], V%X", ins.X)
	case OpLoadRegs:
		return fmt.Sprintf("V%X, [I]", ins.X)
	default:
		return ""
	}
}

// Disassemble decodes the word and formats it.
func Disassemble(word uint16) string {
	ins, err := Decode(word)
	if err != nil {
		return fmt.Sprintf("dw $%04X", word)
	}
	return Format(ins)
}
