// Package terminal presents the framebuffer as text and reads keypad input
// from a raw mode terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/display"
	"golang.org/x/term"
)

// ANSI sequences used between frames.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

// Default pixel glyphs.
const (
	PixelOn  = "█"
	PixelOff = " "
)

// Renderer writes framebuffer frames as text.
type Renderer struct {
	w      io.Writer
	on     string
	off    string
	frames int
}

// NewRenderer returns a renderer writing to w with the default glyphs.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		w:   w,
		on:  PixelOn,
		off: PixelOff,
	}
}

// SetGlyphs sets the text used for set and cleared pixels.
func (r *Renderer) SetGlyphs(on, off string) {
	r.on = on
	r.off = off
}

// Frames returns the number of rendered frames.
func (r *Renderer) Frames() int {
	return r.frames
}

// Render writes the framebuffer. The first frame clears the screen, later
// frames overwrite the previous one from the home position. Lines end with
// CRLF as the terminal may be in raw mode.
func (r *Renderer) Render(fb *display.Framebuffer) error {
	var sb strings.Builder
	if r.frames == 0 {
		sb.WriteString(clearScreen)
	}
	sb.WriteString(cursorHome)

	for y := range fb.Height() {
		for x := range fb.Width() {
			if fb.Pixel(x, y) {
				sb.WriteString(r.on)
			} else {
				sb.WriteString(r.off)
			}
		}
		sb.WriteString("\r\n")
	}

	if _, err := io.WriteString(r.w, sb.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	r.frames++
	return nil
}

// Fits returns whether the terminal of the file descriptor has at least the
// given number of columns and rows.
func Fits(fd, columns, rows int) (bool, error) {
	width, height, err := term.GetSize(fd)
	if err != nil {
		return false, fmt.Errorf("getting terminal size: %w", err)
	}
	return width >= columns && height >= rows, nil
}

// IsTerminal returns whether the file descriptor is a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
