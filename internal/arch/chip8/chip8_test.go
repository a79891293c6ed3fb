package chip8

import (
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFont(t *testing.T) {
	assert.Equal(t, 80, len(Font))
	assert.Equal(t, uint16(0), GlyphAddress(0))
	assert.Equal(t, uint16(0x4B), GlyphAddress(0xF))
	assert.Equal(t, byte(0xF0), Font[GlyphAddress(0xF)])
	assert.True(t, FontAddress+len(Font) <= ProgramStart)
}

func TestWord(t *testing.T) {
	assert.Equal(t, uint16(0x6005), Word(0x60, 0x05))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"cls", 0x00E0, "cls"},
		{"jump", 0x1234, "jp $234"},
		{"call", 0x2300, "call $300"},
		{"jump v0", 0xB210, chip8cpu.JpName + " V0, $210"},
		{"load const", 0x6005, chip8cpu.LdName + " V0, $05"},
		{"load index", 0xA300, chip8cpu.LdName + " I, $300"},
		{"skip equal", 0x3A12, chip8cpu.SeName + " VA, $12"},
		{"skip not equal reg", 0x9340, chip8cpu.SneName + " V3, V4"},
		{"xor", 0x8123, chip8cpu.XorName + " V1, V2"},
		{"shift right", 0x8126, chip8cpu.ShrName + " V1"},
		{"random", 0xC70F, chip8cpu.RndName + " V7, $0F"},
		{"draw", 0xD125, chip8cpu.DrwName + " V1, V2, $5"},
		{"skip pressed", 0xE59E, chip8cpu.SkpName + " V5"},
		{"get delay", 0xF107, chip8cpu.LdName + " V1, DT"},
		{"store registers", 0xF855, chip8cpu.LdName + " [I], V8"},
		{"load registers", 0xF965, chip8cpu.LdName + " V9, [I]"},
		{"add index", 0xF51E, chip8cpu.AddName + " I, V5"},
		{"invalid", 0xF100, "dw $F100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Disassemble(tt.word))
		})
	}
}

func TestIsSkip(t *testing.T) {
	tests := []struct {
		word     uint16
		expected bool
	}{
		{0x3A12, true},
		{0x4A12, true},
		{0x5120, true},
		{0x9120, true},
		{0xE59E, true},
		{0xE5A1, true},
		{0x1234, false},
		{0x6005, false},
	}

	for _, tt := range tests {
		ins, err := Decode(tt.word)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, IsSkip(ins))
	}
	assert.False(t, IsSkip(Instruction{}))
}

func TestIsControlFlow(t *testing.T) {
	for _, word := range []uint16{0x00EE, 0x1234, 0x2345, 0xB123} {
		ins, err := Decode(word)
		assert.NoError(t, err)
		assert.True(t, IsControlFlow(ins))
	}

	ins, err := Decode(0x6005)
	assert.NoError(t, err)
	assert.False(t, IsControlFlow(ins))
}
