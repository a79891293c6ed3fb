// Package display implements a monochrome 1 bit per pixel framebuffer with
// XOR sprite compositing and collision reporting.
package display

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSize is returned for a framebuffer whose width is not a positive
// multiple of 8 pixels or whose height is not positive.
var ErrInvalidSize = errors.New("invalid framebuffer size")

// PixelsPerByte is the number of horizontal pixels stored in one byte.
const PixelsPerByte = 8

// Framebuffer stores the pixels as rows of bytes, MSB first. Pixel <0,0> is
// bit 0x80 of the first byte of row 0.
type Framebuffer struct {
	width     int // in pixels
	height    int
	pitch     int // bytes per row
	rows      [][]byte
	collision bool
	onDraw    func()
}

// New returns a cleared framebuffer of the given pixel size.
func New(width, height int) (*Framebuffer, error) {
	if width <= 0 || width%PixelsPerByte != 0 {
		return nil, fmt.Errorf("%w: width %d is not a positive multiple of %d", ErrInvalidSize, width, PixelsPerByte)
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: height %d", ErrInvalidSize, height)
	}

	pitch := width / PixelsPerByte
	rows := make([][]byte, height)
	for i := range rows {
		rows[i] = make([]byte, pitch)
	}

	return &Framebuffer{
		width:  width,
		height: height,
		pitch:  pitch,
		rows:   rows,
	}, nil
}

// Draw XORs the sprite rows onto the framebuffer starting at pixel <x,y>.
// Coordinates wrap around the screen edges. It returns whether any pixel
// that was set got cleared, which is also available from Collision until
// the next draw.
func (f *Framebuffer) Draw(x, y int, sprite []byte) bool {
	x = wrap(x, f.width)
	y = wrap(y, f.height)

	col := x / PixelsPerByte
	shift := uint(x % PixelsPerByte)
	next := (col + 1) % f.pitch

	var cleared byte
	for _, part := range sprite {
		row := f.rows[y]

		left := part >> shift
		before := row[col]
		row[col] ^= left
		cleared |= before & left

		if shift > 0 {
			right := part << (PixelsPerByte - shift)
			before = row[next]
			row[next] ^= right
			cleared |= before & right
		}

		y = (y + 1) % f.height
	}

	f.collision = cleared != 0
	if f.onDraw != nil {
		f.onDraw()
	}
	return f.collision
}

// Clear turns off all pixels and calls the draw hook.
func (f *Framebuffer) Clear() {
	for _, row := range f.rows {
		clear(row)
	}
	f.collision = false
	if f.onDraw != nil {
		f.onDraw()
	}
}

// Collision returns whether the most recent draw cleared a set pixel.
func (f *Framebuffer) Collision() bool {
	return f.collision
}

// Width returns the width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// Pitch returns the number of bytes per row.
func (f *Framebuffer) Pitch() int {
	return f.pitch
}

// Pixel returns whether the pixel is set. Coordinates wrap like in Draw.
func (f *Framebuffer) Pixel(x, y int) bool {
	x = wrap(x, f.width)
	y = wrap(y, f.height)
	return f.rows[y][x/PixelsPerByte]&(0x80>>uint(x%PixelsPerByte)) != 0
}

// Row returns a copy of the bytes of a row.
func (f *Framebuffer) Row(y int) []byte {
	row := make([]byte, f.pitch)
	copy(row, f.rows[wrap(y, f.height)])
	return row
}

// Bytes returns a row-major copy of the whole bitmap.
func (f *Framebuffer) Bytes() []byte {
	data := make([]byte, 0, f.pitch*f.height)
	for _, row := range f.rows {
		data = append(data, row...)
	}
	return data
}

// SetDrawHook sets a function that is called after every draw and clear.
func (f *Framebuffer) SetDrawHook(hook func()) {
	f.onDraw = hook
}

// String renders the bitmap as text, '*' for set and ' ' for cleared pixels,
// one line per row.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((f.width + 1) * f.height)
	for _, row := range f.rows {
		for _, b := range row {
			for mask := byte(0x80); mask != 0; mask >>= 1 {
				if b&mask != 0 {
					sb.WriteByte('*')
				} else {
					sb.WriteByte(' ')
				}
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
