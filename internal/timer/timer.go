// Package timer implements an 8-bit countdown timer that decrements at a fixed
// frequency on its own goroutine, independent of instruction execution.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidFrequency is returned for a timer frequency that is not positive.
var ErrInvalidFrequency = errors.New("invalid timer frequency")

// DefaultFrequency is the CHIP-8 timer frequency in Hz.
const DefaultFrequency = 60

// Timer is a countdown timer. A timer with value 0 is idle, setting a value
// above 0 starts a countdown that stops by itself when it reaches 0.
type Timer struct {
	frequency int
	period    time.Duration

	mu    sync.Mutex
	value uint8
	stop  chan struct{} // stop channel of the running countdown, nil if idle

	wg sync.WaitGroup
}

// New returns an idle timer that ticks at the given frequency in Hz.
func New(frequency int) (*Timer, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("%w: %d Hz", ErrInvalidFrequency, frequency)
	}

	return &Timer{
		frequency: frequency,
		period:    time.Second / time.Duration(frequency),
	}, nil
}

// Set stops a running countdown and starts a new one from value.
// Setting 0 leaves the timer idle.
func (t *Timer) Set(value uint8) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.value = value
	if value == 0 {
		return
	}

	stop := make(chan struct{})
	t.stop = stop
	t.wg.Add(1)
	go t.countdown(stop)
}

// Value returns the current countdown value.
func (t *Timer) Value() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Running returns whether a countdown is in progress.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Frequency returns the tick frequency in Hz.
func (t *Timer) Frequency() int {
	return t.frequency
}

// Abort stops a running countdown and resets the value to 0.
func (t *Timer) Abort() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.value = 0
}

// Close aborts the timer and waits for all countdown goroutines to exit.
func (t *Timer) Close() {
	t.Abort()
	t.wg.Wait()
}

func (t *Timer) stopLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

// countdown decrements the value once per period until it reaches 0 or the
// stop channel is closed. The stop channel is checked again while holding the
// lock, a replaced countdown never modifies the value.
func (t *Timer) countdown(stop chan struct{}) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		if t.tick(stop) {
			return
		}
	}
}

// tick decrements the value and returns whether the countdown finished.
func (t *Timer) tick(stop chan struct{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-stop:
		return true
	default:
	}

	t.value--
	if t.value == 0 {
		t.stop = nil
		return true
	}
	return false
}
