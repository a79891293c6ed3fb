//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const pollInterval = 5 * time.Millisecond

// Start puts the terminal in raw non-blocking mode and reads keys in a
// goroutine until Stop is called.
func (h *Host) Start(fd int) error {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	h.fd = fd
	h.oldState = oldState

	if err := unix.SetNonblock(fd, true); err != nil {
		h.restore()
		return fmt.Errorf("setting non-blocking input: %w", err)
	}
	h.nonblockSet = true
	h.started = true

	go h.read()
	return nil
}

func (h *Host) read() {
	defer close(h.done)
	buf := make([]byte, 1)

	for {
		select {
		case <-h.stopCh:
			return
		default:
		}

		n, err := unix.Read(h.fd, buf)
		if n > 0 {
			h.handle(buf[0])
		}
		switch {
		case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EWOULDBLOCK), err == nil && n <= 0:
			time.Sleep(pollInterval)
		case err != nil:
			h.logger.Error("Reading terminal input failed", log.Err(err))
			return
		}
	}
}

func (h *Host) restore() {
	if h.nonblockSet {
		_ = unix.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldState != nil {
		_ = term.Restore(h.fd, h.oldState)
		h.oldState = nil
	}
}
