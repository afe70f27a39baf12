package cpu

import (
	"github.com/valerio/go-cretro/cretro/memory"
	"github.com/valerio/go-cretro/cretro/video"
)

// testBus wires the real components together without the interpreter.
type testBus struct {
	mem     *memory.Memory
	display *video.Display
	keypad  *memory.Keypad
	timers  *memory.Timers
}

func newTestBus() *testBus {
	return &testBus{
		mem:     memory.New(),
		display: video.NewDisplay(),
		keypad:  memory.NewKeypad(),
		timers:  memory.NewTimers(),
	}
}

func (b *testBus) Read(address uint16) byte         { return b.mem.Read(address) }
func (b *testBus) Write(address uint16, value byte) { b.mem.Write(address, value) }
func (b *testBus) ClearDisplay()                    { b.display.Clear() }
func (b *testBus) Draw(x, y uint8, sprite []byte) bool {
	return b.display.Draw(x, y, sprite)
}
func (b *testBus) KeyPressed(key uint8) bool { return b.keypad.IsPressed(memory.Key(key)) }
func (b *testBus) TakeKeyPress() (uint8, bool) {
	key, ok := b.keypad.TakePress()
	return uint8(key), ok
}
func (b *testBus) DiscardKeyPress()          { b.keypad.DiscardPress() }
func (b *testBus) DelayTimer() uint8         { return b.timers.Delay() }
func (b *testBus) SetDelayTimer(value uint8) { b.timers.SetDelay(value) }
func (b *testBus) SetSoundTimer(value uint8) { b.timers.SetSound(value) }

// load places big-endian instruction words at the program start.
func (b *testBus) load(words ...uint16) {
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	if err := b.mem.Load(program); err != nil {
		panic(err)
	}
}

// newTestCPU returns a CPU running the given program.
func newTestCPU(words []uint16, opts ...Option) (*CPU, *testBus) {
	bus := newTestBus()
	bus.load(words...)
	return New(bus, opts...), bus
}
