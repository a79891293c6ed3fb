package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/assert"
)

func TestRender(t *testing.T) {
	fb, err := display.New(8, 2)
	assert.NoError(t, err)
	fb.Draw(0, 0, []byte{0xA0, 0x01})

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.SetGlyphs("#", ".")

	assert.NoError(t, r.Render(fb))
	assert.Equal(t, clearScreen+cursorHome+"#.#.....\r\n.......#\r\n", buf.String())
	assert.Equal(t, 1, r.Frames())

	buf.Reset()
	assert.NoError(t, r.Render(fb))
	assert.True(t, strings.HasPrefix(buf.String(), cursorHome))
	assert.False(t, strings.Contains(buf.String(), clearScreen))
	assert.Equal(t, 2, r.Frames())
}

func TestRenderDefaultGlyphs(t *testing.T) {
	fb, err := display.New(8, 1)
	assert.NoError(t, err)
	fb.Draw(7, 0, []byte{0x80})

	var buf bytes.Buffer
	assert.NoError(t, NewRenderer(&buf).Render(fb))
	assert.True(t, strings.HasSuffix(buf.String(), strings.Repeat(PixelOff, 7)+PixelOn+"\r\n"))
}

func TestFitsInvalidDescriptor(t *testing.T) {
	_, err := Fits(-1, 64, 32)
	assert.Error(t, err)
	assert.False(t, IsTerminal(-1))
}
