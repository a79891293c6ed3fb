// Package chip8 provides the CHIP-8 machine definition shared by the interpreter
// and its diagnostics.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - FontAddress-0x04F: built-in hexadecimal font, 16 glyphs of 5 bytes
//   - 0x050-0x1FF: reserved interpreter area
//   - ProgramStart-MaxAddress: program and data area
//
// # Instruction Set
//
// All instructions are 2 bytes (16 bits), stored big-endian. Decode splits a word
// on its top nibble and, for the 0x0, 0x8, 0xE and 0xF families, on a sub-code
// taken from the low byte or low nibble. The result is an Instruction value
// tagged with its Operation; the operands it carries are described by the
// operation's Shape:
//   - ShapeAddress: 12-bit address (nnn)
//   - ShapeRegConst: register and 8-bit constant (x, kk)
//   - ShapeRegReg: two registers (x, y)
//   - ShapeReg: a single register (x)
//   - ShapeRegRegNibble: two registers and a 4-bit count (x, y, n)
//
// Words that do not map to one of the supported operations decode to an error
// wrapping ErrInvalidOpcode. The 0nnn machine code call is not supported.
//
// # Usage Example
//
//	ins, err := chip8.Decode(0x6005)
//	if err != nil {
//		return fmt.Errorf("decoding: %w", err)
//	}
//	fmt.Println(chip8.Format(ins)) // ld V0, $05
package chip8
