// Package dump produces text diagnostics of the interpreter state.
package dump

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/register"
	"github.com/retroenv/retrogolib/set"
)

// Memory returns one line per big-endian word of the memory image.
func Memory(mem []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		for address := 0; address+1 < len(mem); address += chip8.InstructionSize {
			word := chip8.Word(mem[address], mem[address+1])
			if !yield(fmt.Sprintf("%04x --- %04x", address, word)) {
				return
			}
		}
	}
}

// Registers returns one line per register of the bank.
func Registers(bank *register.Bank) iter.Seq[string] {
	return func(yield func(string) bool) {
		for index, value := range bank.All() {
			if !yield(fmt.Sprintf("V%X --- %02x", index, value)) {
				return
			}
		}
	}
}

// Disassembly returns the disassembled instructions in the address range
// [from, to). Addresses contained in executed are marked with a '*'.
func Disassembly(mem []byte, from, to uint16, executed set.Set[uint16]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for address := from; address < to && int(address)+1 < len(mem); address += chip8.InstructionSize {
			word := chip8.Word(mem[address], mem[address+1])

			marker := " "
			if executed.Contains(address) {
				marker = "*"
			}
			line := fmt.Sprintf("%s%04X  %04X  %s", marker, address, word, chip8.Disassemble(word))
			if !yield(line) {
				return
			}
		}
	}
}

// State returns the control state of the interpreter.
func State(ip *interpreter.Interpreter) iter.Seq[string] {
	return func(yield func(string) bool) {
		stack := make([]string, 0, ip.SP())
		for _, address := range ip.Stack() {
			stack = append(stack, fmt.Sprintf("%03x", address))
		}

		lines := []string{
			fmt.Sprintf("PC --- %04x", ip.PC()),
			fmt.Sprintf("I  --- %04x", ip.Index()),
			fmt.Sprintf("SP --- %d [%s]", ip.SP(), strings.Join(stack, " ")),
			fmt.Sprintf("DT --- %02x", ip.DelayTimer().Value()),
			fmt.Sprintf("ST --- %02x", ip.SoundTimer().Value()),
			fmt.Sprintf("cycles --- %d", ip.Cycles()),
		}
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// Write writes every line followed by a newline.
func Write(w io.Writer, lines iter.Seq[string]) error {
	for line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("writing dump line: %w", err)
		}
	}
	return nil
}
