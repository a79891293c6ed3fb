package terminal

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type press struct {
	key  uint8
	hold time.Duration
}

type recordingKeys struct {
	presses []press
}

func (r *recordingKeys) PressFor(key uint8, d time.Duration) {
	r.presses = append(r.presses, press{key: key, hold: d})
}

func TestHostHandle(t *testing.T) {
	keys := &recordingKeys{}
	quits := 0
	h := NewHost(log.NewTestLogger(t), keys, 100*time.Millisecond, func() { quits++ })

	for _, b := range []byte("1qVz?") {
		h.handle(b)
	}
	assert.Equal(t, []press{
		{key: 0x1, hold: 100 * time.Millisecond},
		{key: 0x4, hold: 100 * time.Millisecond},
		{key: 0xF, hold: 100 * time.Millisecond},
		{key: 0xA, hold: 100 * time.Millisecond},
	}, keys.presses)
	assert.Equal(t, 0, quits)

	h.handle(keyEscape)
	h.handle(keyCtrlC)
	assert.Equal(t, 2, quits)
	assert.Equal(t, 4, len(keys.presses))
}

func TestHostStopWithoutStart(t *testing.T) {
	h := NewHost(log.NewTestLogger(t), &recordingKeys{}, time.Millisecond, nil)
	h.Stop()
	h.Stop()
	h.handle(keyEscape)
}
