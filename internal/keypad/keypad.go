// Package keypad holds the state of the 16-key hexadecimal CHIP-8 keypad.
// It is safe for concurrent use, keys are usually updated by an input
// goroutine while the interpreter queries them.
package keypad

import (
	"sync"
	"time"
)

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// keyMap maps a modern keyboard layout to the CHIP-8 keys.
//
//	1 2 3 4     1 2 3 C
//	Q W E R     4 5 6 D
//	A S D F  -> 7 8 9 E
//	Z X C V     A 0 B F
var keyMap = map[rune]uint8{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// KeyForRune returns the CHIP-8 key for a keyboard character.
func KeyForRune(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	key, ok := keyMap[r]
	return key, ok
}

// Keypad is the set of currently pressed keys.
type Keypad struct {
	mu       sync.Mutex
	pressed  [KeyCount]bool
	releases [KeyCount]*time.Timer
}

// New returns a keypad with no keys pressed.
func New() *Keypad {
	return &Keypad{}
}

// Press marks the key as pressed. Keys outside 0-F are ignored.
func (k *Keypad) Press(key uint8) {
	if key >= KeyCount {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.cancelReleaseLocked(key)
	k.pressed[key] = true
}

// PressFor marks the key as pressed and releases it after the duration.
// Pressing the key again before that extends the hold.
func (k *Keypad) PressFor(key uint8, d time.Duration) {
	if key >= KeyCount {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.cancelReleaseLocked(key)
	k.pressed[key] = true

	var release *time.Timer
	release = time.AfterFunc(d, func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		if k.releases[key] == release {
			k.pressed[key] = false
			k.releases[key] = nil
		}
	})
	k.releases[key] = release
}

// Release marks the key as not pressed.
func (k *Keypad) Release(key uint8) {
	if key >= KeyCount {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.cancelReleaseLocked(key)
	k.pressed[key] = false
}

// ReleaseAll releases all keys.
func (k *Keypad) ReleaseAll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key := range uint8(KeyCount) {
		k.cancelReleaseLocked(key)
	}
	k.pressed = [KeyCount]bool{}
}

// IsPressed returns whether the key is pressed. Only the low nibble of the
// key is used.
func (k *Keypad) IsPressed(key uint8) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[key&0xF]
}

// PressedKey returns the lowest pressed key.
func (k *Keypad) PressedKey() (uint8, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key, pressed := range k.pressed {
		if pressed {
			return uint8(key), true
		}
	}
	return 0, false
}

func (k *Keypad) cancelReleaseLocked(key uint8) {
	if release := k.releases[key]; release != nil {
		release.Stop()
		k.releases[key] = nil
	}
}
