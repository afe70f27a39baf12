package memory

import "github.com/valerio/go-cretro/cretro/addr"

// Key identifies one of the 16 hex keys, 0x0 through 0xF.
type Key uint8

// Keypad holds the current state of the hex keypad and the latest press event,
// which is what a program waiting for a key consumes.
type Keypad struct {
	pressed   [addr.KeyCount]bool
	lastPress Key
	hasPress  bool
}

// NewKeypad creates a keypad with every key released.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Press marks the key as held and records a press event if it was up before.
func (k *Keypad) Press(key Key) {
	key &= 0x0F
	if !k.pressed[key] {
		k.lastPress = key
		k.hasPress = true
	}
	k.pressed[key] = true
}

// Release marks the key as up.
func (k *Keypad) Release(key Key) {
	k.pressed[key&0x0F] = false
}

// IsPressed reports whether the key is currently held.
func (k *Keypad) IsPressed(key Key) bool {
	return k.pressed[key&0x0F]
}

// TakePress returns and clears the pending press event, if any.
func (k *Keypad) TakePress() (Key, bool) {
	if !k.hasPress {
		return 0, false
	}
	k.hasPress = false
	return k.lastPress, true
}

// DiscardPress drops a pending press event without consuming it.
func (k *Keypad) DiscardPress() {
	k.hasPress = false
}

// State returns a snapshot of all key states.
func (k *Keypad) State() [addr.KeyCount]bool {
	return k.pressed
}
