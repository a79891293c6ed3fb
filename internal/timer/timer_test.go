package timer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func newTestTimer(t *testing.T) *Timer {
	t.Helper()
	tm, err := New(DefaultFrequency)
	assert.NoError(t, err)
	t.Cleanup(tm.Close)
	return tm
}

// waitIdle polls until the timer is idle or the deadline passes.
func waitIdle(tm *Timer, deadline time.Duration) bool {
	end := time.Now().Add(deadline)
	for time.Now().Before(end) {
		if !tm.Running() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func TestNew(t *testing.T) {
	tm, err := New(60)
	assert.NoError(t, err)
	assert.Equal(t, 60, tm.Frequency())
	assert.Equal(t, uint8(0), tm.Value())
	assert.False(t, tm.Running())

	for _, freq := range []int{0, -60} {
		tm, err = New(freq)
		assert.True(t, errors.Is(err, ErrInvalidFrequency))
		assert.Nil(t, tm)
	}
}

func TestTimer_CountsDown(t *testing.T) {
	tm := newTestTimer(t)

	start := time.Now()
	tm.Set(6)
	assert.True(t, tm.Running())
	assert.True(t, tm.Value() <= 6)

	assert.True(t, waitIdle(tm, 2*time.Second))
	elapsed := time.Since(start)

	// 6 ticks at 60 Hz can not complete in less than 100ms
	assert.True(t, elapsed >= 95*time.Millisecond)
	assert.Equal(t, uint8(0), tm.Value())
}

func TestTimer_DecrementRate(t *testing.T) {
	tm := newTestTimer(t)

	tm.Set(200)
	time.Sleep(100 * time.Millisecond)
	value := tm.Value()

	// about 6 ticks in 100ms, at most one tick of jitter ahead
	assert.True(t, value >= 200-7)
	assert.True(t, value < 200)
}

func TestTimer_SetRestartsCountdown(t *testing.T) {
	tm := newTestTimer(t)

	tm.Set(255)
	time.Sleep(50 * time.Millisecond)

	tm.Set(100)
	assert.True(t, tm.Value() == 100 || tm.Value() == 99)
	time.Sleep(100 * time.Millisecond)

	// two concurrent countdowns would have consumed about 12 ticks
	value := tm.Value()
	assert.True(t, value >= 100-7)
	assert.True(t, value < 100)
	assert.True(t, tm.Running())
}

func TestTimer_SetZeroStops(t *testing.T) {
	tm := newTestTimer(t)

	tm.Set(50)
	tm.Set(0)
	assert.False(t, tm.Running())
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, uint8(0), tm.Value())
}

func TestTimer_Abort(t *testing.T) {
	tm := newTestTimer(t)

	tm.Set(200)
	tm.Abort()
	assert.False(t, tm.Running())
	assert.Equal(t, uint8(0), tm.Value())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, uint8(0), tm.Value())
}

func TestTimer_SetAfterFinish(t *testing.T) {
	tm := newTestTimer(t)

	tm.Set(1)
	assert.True(t, waitIdle(tm, time.Second))

	tm.Set(3)
	assert.True(t, tm.Running())
	assert.True(t, waitIdle(tm, time.Second))
	assert.Equal(t, uint8(0), tm.Value())
}

func TestTimer_Close(t *testing.T) {
	tm, err := New(DefaultFrequency)
	assert.NoError(t, err)

	for i := range 10 {
		tm.Set(uint8(100 + i))
	}
	tm.Close()
	assert.False(t, tm.Running())
	assert.Equal(t, uint8(0), tm.Value())
}

func TestTimer_ConcurrentAccess(t *testing.T) {
	tm, err := New(1000)
	assert.NoError(t, err)
	defer tm.Close()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := range 50 {
				tm.Set(uint8(i*50 + j))
			}
		}()
		go func() {
			defer wg.Done()
			for range 200 {
				_ = tm.Value()
				_ = tm.Running()
			}
		}()
	}
	wg.Wait()
}
