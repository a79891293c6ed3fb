package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func testOptions(maxCycles uint64) options.Program {
	opts := options.New()
	opts.Speed = 600
	opts.MaxCycles = maxCycles
	opts.Headless = true
	return opts
}

func TestRunStopsAtCycleLimit(t *testing.T) {
	r := New(log.NewTestLogger(t))
	// 200: add V0, 1; 202: jp 200
	rom := []byte{0x70, 0x01, 0x12, 0x00}

	var out bytes.Buffer
	ip, err := r.Run(context.Background(), testOptions(25), rom, nil, &out)
	assert.NoError(t, err)
	assert.Equal(t, uint64(25), ip.Cycles())
	assert.Equal(t, uint8(13), ip.V(0))
	assert.Equal(t, "", out.String())
}

func TestRunStopsOnFatalError(t *testing.T) {
	// the test logger fails the test on error records, fatal errors are logged at error level
	r := New(log.NewWithConfig(log.DefaultConfig()))
	rom := []byte{0x60, 0x01, 0x00, 0xEE}

	ip, err := r.Run(context.Background(), testOptions(0), rom, nil, &bytes.Buffer{})
	assert.True(t, errors.Is(err, interpreter.ErrStackUnderflow))
	assert.True(t, ip.Halted())
	assert.Equal(t, uint8(1), ip.V(0))
}

func TestRunSkipsRecoverableErrors(t *testing.T) {
	r := New(log.NewTestLogger(t))
	// invalid opcode, then ld V1, 7
	rom := []byte{0xFF, 0xFF, 0x61, 0x07, 0x12, 0x04}

	ip, err := r.Run(context.Background(), testOptions(3), rom, nil, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.False(t, ip.Halted())
	assert.Equal(t, uint8(7), ip.V(1))
}

func TestRunRendersDisplay(t *testing.T) {
	r := New(log.NewTestLogger(t))
	// draw glyph 0 at (0, 0), then loop
	rom := []byte{0x60, 0x00, 0xF0, 0x29, 0xD0, 0x05, 0x12, 0x06}
	opts := testOptions(10)
	opts.Headless = false

	var out bytes.Buffer
	_, err := r.Run(context.Background(), opts, rom, nil, &out)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "████")
}

func TestRunDump(t *testing.T) {
	r := New(log.NewTestLogger(t))
	rom := []byte{0x60, 0x05, 0x12, 0x02}
	opts := testOptions(4)
	opts.Dump = true
	opts.Trace = true

	var out bytes.Buffer
	_, err := r.Run(context.Background(), opts, rom, nil, &out)
	assert.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "; state\n")
	assert.Contains(t, text, "V0 --- 05")
	assert.Contains(t, text, "*0200  6005")
	assert.Contains(t, text, "0200 --- 6005")
}

func TestRunCancelled(t *testing.T) {
	r := New(log.NewTestLogger(t))
	rom := []byte{0x12, 0x00}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ip, err := r.Run(ctx, testOptions(0), rom, nil, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.False(t, ip.Halted())
	assert.True(t, ip.Cycles() > 0)
}

func TestRunWithKeys(t *testing.T) {
	r := New(log.NewTestLogger(t))
	// wait for a key into V2, then loop
	rom := []byte{0xF2, 0x0A, 0x12, 0x02}
	keys := keypad.New()
	keys.Press(0x7)

	ip, err := r.Run(context.Background(), testOptions(5), rom, keys, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.Equal(t, uint8(7), ip.V(2))
}

func TestRunInvalidSpeed(t *testing.T) {
	r := New(log.NewTestLogger(t))
	opts := testOptions(1)
	opts.Speed = 0

	_, err := r.Run(context.Background(), opts, []byte{0x00, 0xE0}, nil, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x6A, 0x42, 0x12, 0x02}, 0o600))

	r := New(log.NewTestLogger(t))
	opts := testOptions(2)
	opts.Input = path

	ip, err := r.Execute(context.Background(), opts, nil, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x42), ip.V(0xA))
}

func TestExecuteUnsupportedSystem(t *testing.T) {
	r := New(log.NewTestLogger(t))
	opts := testOptions(1)
	opts.Input = "game.nes"

	_, err := r.Execute(context.Background(), opts, nil, &bytes.Buffer{})
	assert.True(t, errors.Is(err, loader.ErrUnsupportedSystem))
	assert.True(t, strings.Contains(err.Error(), "loading rom"))
}
