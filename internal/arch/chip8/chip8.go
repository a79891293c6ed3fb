package chip8

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer (64x32 pixels) and stack are maintained separately from
// the 4KB main memory address space.
const (
	// MemorySize is the number of addressable memory cells.
	MemorySize = 0x1000

	// ProgramStart is the memory address where CHIP-8 programs are loaded and
	// begin execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = 0xFFF

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// FontAddress is the address of the first built-in font glyph.
	FontAddress = 0x000

	// FontGlyphSize is the number of bytes of a single font glyph.
	FontGlyphSize = 5

	// InstructionSize is the size of CHIP-8 instructions in bytes.
	InstructionSize = 2
)

// Machine dimensions.
const (
	RegisterCount = 16
	RegisterBits  = 8
	FlagRegister  = 0xF
	StackDepth    = 16
	KeyCount      = 16

	DisplayWidth  = 64
	DisplayHeight = 32
)

// Font contains the sprites for the hexadecimal digits 0-F, 5 rows each.
var Font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// GlyphAddress returns the memory address of the font glyph for the hex digit.
func GlyphAddress(digit uint8) uint16 {
	return FontAddress + uint16(digit)*FontGlyphSize
}

// Word combines two bytes into a big-endian 16-bit instruction word.
func Word(high, low byte) uint16 {
	return uint16(high)<<8 | uint16(low)
}
