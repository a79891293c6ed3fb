package terminal

import (
	"errors"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// ErrUnsupported is returned by Start on platforms without raw terminal input.
var ErrUnsupported = errors.New("raw terminal input not supported")

// Control bytes that request to quit.
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// KeyPresser receives key presses of a fixed duration. Terminals do not report
// key releases.
type KeyPresser interface {
	PressFor(key uint8, d time.Duration)
}

// Host reads keys from a raw mode terminal and forwards them to the keypad.
type Host struct {
	logger *log.Logger
	keys   KeyPresser
	hold   time.Duration
	onQuit func()

	fd          int
	stopCh      chan struct{}
	done        chan struct{}
	stopped     sync.Once
	started     bool
	nonblockSet bool
	oldState    *term.State
}

// NewHost returns a host that presses keys for the hold duration. onQuit is
// called when ESC or Ctrl-C is read.
func NewHost(logger *log.Logger, keys KeyPresser, hold time.Duration, onQuit func()) *Host {
	return &Host{
		logger: logger,
		keys:   keys,
		hold:   hold,
		onQuit: onQuit,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// handle processes one byte read from the terminal.
func (h *Host) handle(b byte) {
	switch b {
	case keyCtrlC, keyEscape:
		if h.onQuit != nil {
			h.onQuit()
		}
		return
	}

	key, ok := keypad.KeyForRune(rune(b))
	if !ok {
		return
	}
	h.logger.Debug("Key pressed", log.String("rune", string(rune(b))), log.Uint8("key", key))
	h.keys.PressFor(key, h.hold)
}

// Stop terminates the reader goroutine and restores the terminal state.
// It is safe to call Stop multiple times or without a successful Start.
func (h *Host) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	if !h.started {
		return
	}
	<-h.done
	h.restore()
}
