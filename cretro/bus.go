package cretro

import (
	"github.com/valerio/go-cretro/cretro/cpu"
	"github.com/valerio/go-cretro/cretro/memory"
	"github.com/valerio/go-cretro/cretro/video"
)

// Bus connects the CPU to memory, display, keypad and timers.
type Bus struct {
	Memory  *memory.Memory
	Display *video.Display
	Keypad  *memory.Keypad
	Timers  *memory.Timers
}

func NewBus() *Bus {
	return &Bus{
		Memory:  memory.New(),
		Display: video.NewDisplay(),
		Keypad:  memory.NewKeypad(),
		Timers:  memory.NewTimers(),
	}
}

func (b *Bus) Read(address uint16) byte {
	return b.Memory.Read(address)
}

func (b *Bus) Write(address uint16, value byte) {
	b.Memory.Write(address, value)
}

func (b *Bus) ClearDisplay() {
	b.Display.Clear()
}

func (b *Bus) Draw(x, y uint8, sprite []byte) bool {
	return b.Display.Draw(x, y, sprite)
}

func (b *Bus) KeyPressed(key uint8) bool {
	return b.Keypad.IsPressed(memory.Key(key))
}

func (b *Bus) TakeKeyPress() (uint8, bool) {
	key, ok := b.Keypad.TakePress()
	return uint8(key), ok
}

func (b *Bus) DiscardKeyPress() {
	b.Keypad.DiscardPress()
}

func (b *Bus) DelayTimer() uint8 {
	return b.Timers.Delay()
}

func (b *Bus) SetDelayTimer(value uint8) {
	b.Timers.SetDelay(value)
}

func (b *Bus) SetSoundTimer(value uint8) {
	b.Timers.SetSound(value)
}

var _ cpu.Bus = (*Bus)(nil)
