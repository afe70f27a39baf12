package cretro

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/valerio/go-cretro/cretro/audio"
	"github.com/valerio/go-cretro/cretro/cpu"
	"github.com/valerio/go-cretro/cretro/debug"
	"github.com/valerio/go-cretro/cretro/fault"
	"github.com/valerio/go-cretro/cretro/input/action"
	"github.com/valerio/go-cretro/cretro/memory"
	"github.com/valerio/go-cretro/cretro/timing"
	"github.com/valerio/go-cretro/cretro/video"
)

const (
	// debug snapshot window around PC
	snapshotBefore = 16
	snapshotAfter  = 32
)

// Interpreter owns the whole machine: CPU, memory, display, keypad, timers
// and the virtual clock that ties instruction steps to timer ticks.
type Interpreter struct {
	config Config
	bus    *Bus
	cpu    *cpu.CPU
	clock  *timing.Clock
	buzzer *audio.Buzzer

	frame  *video.FrameBuffer
	frames uint64

	debuggerState debug.DebuggerState
}

// New creates an interpreter with an empty program area.
func New(config Config) (*Interpreter, error) {
	config, err := config.Validate()
	if err != nil {
		return nil, err
	}

	opts := []cpu.Option{cpu.WithQuirks(config.Quirks)}
	if config.Random != nil {
		opts = append(opts, cpu.WithRandom(config.Random))
	}

	bus := NewBus()
	e := &Interpreter{
		config: config,
		bus:    bus,
		cpu:    cpu.New(bus, opts...),
		clock:  timing.NewClock(config.Frequency),
		buzzer: audio.NewBuzzer(),
		frame:  video.NewFrameBuffer(),
	}
	bus.Display.Render(e.frame)

	return e, nil
}

// NewWithFile creates an interpreter and loads the program image at path into it.
func NewWithFile(path string, config Config) (*Interpreter, error) {
	e, err := New(config)
	if err != nil {
		return nil, err
	}
	if err := e.LoadFile(path); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadProgram copies a program image to the program start address.
func (e *Interpreter) LoadProgram(program []byte) error {
	return e.bus.Memory.Load(program)
}

// LoadFile reads a program image from disk and loads it.
func (e *Interpreter) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fault.Wrap(err, fault.Load, "reading program %s", path)
	}
	if err := e.LoadProgram(data); err != nil {
		return errors.WithMessagef(err, "loading %s", path)
	}

	slog.Info("Loaded program", "path", path, "bytes", len(data))
	return nil
}

// Step executes one CPU step and advances virtual time by one clock period.
// A step that faults does not advance time.
func (e *Interpreter) Step() error {
	_, err := e.step()
	return err
}

// step returns the number of timer ticks that elapsed during the step.
func (e *Interpreter) step() (int, error) {
	if err := e.cpu.Exec(); err != nil {
		return 0, err
	}

	ticks := e.clock.Advance()
	for range ticks {
		e.bus.Timers.Tick()
	}
	// the tone tracks ST after every instruction, not only on ticks
	e.buzzer.SetTone(e.bus.Timers.Tone())
	return ticks, nil
}

// RunUntilFrame runs the machine for one frame, i.e. until the next timer
// tick, then refreshes the framebuffer. The debugger state decides how much
// actually runs: nothing while paused, a single instruction or a whole frame
// when stepping.
func (e *Interpreter) RunUntilFrame() error {
	var err error

	switch e.debuggerState {
	case debug.DebuggerPaused:
	case debug.DebuggerStepInstruction:
		err = e.Step()
		e.debuggerState = debug.DebuggerPaused
	case debug.DebuggerStepFrame:
		err = e.runFrame()
		e.debuggerState = debug.DebuggerPaused
	default:
		err = e.runFrame()
	}

	if e.bus.Display.Dirty() {
		e.bus.Display.Render(e.frame)
	}
	e.frames++

	return err
}

func (e *Interpreter) runFrame() error {
	for {
		ticks, err := e.step()
		if err != nil {
			return err
		}
		if ticks > 0 {
			return nil
		}
	}
}

// State returns the execution state of the CPU.
func (e *Interpreter) State() cpu.State {
	return e.cpu.State()
}

// Fault returns the fault that halted the interpreter, if any.
func (e *Interpreter) Fault() error {
	return e.cpu.Fault()
}

func (e *Interpreter) GetCurrentFrame() *video.FrameBuffer {
	return e.frame
}

// Frames returns the number of frames run so far.
func (e *Interpreter) Frames() uint64 {
	return e.frames
}

func (e *Interpreter) Audio() audio.Provider {
	return e.buzzer
}

// Keypad exposes the key state for input routing.
func (e *Interpreter) Keypad() *memory.Keypad {
	return e.bus.Keypad
}

// Bus exposes the machine components.
func (e *Interpreter) Bus() *Bus {
	return e.bus
}

// CPU exposes the processor, mainly for inspection.
func (e *Interpreter) CPU() *cpu.CPU {
	return e.cpu
}

// HandleAction applies keypad and debugger actions.
func (e *Interpreter) HandleAction(act action.Action, pressed bool) {
	if key, ok := act.Key(); ok {
		if pressed {
			e.bus.Keypad.Press(memory.Key(key))
		} else {
			e.bus.Keypad.Release(memory.Key(key))
		}
		return
	}
	if !pressed {
		return
	}

	switch act {
	case action.EmulatorPauseToggle:
		if e.debuggerState == debug.DebuggerRunning {
			e.debuggerState = debug.DebuggerPaused
			slog.Info("Paused")
		} else {
			e.debuggerState = debug.DebuggerRunning
			slog.Info("Resumed")
		}
	case action.EmulatorStepInstruction:
		if e.debuggerState != debug.DebuggerRunning {
			e.debuggerState = debug.DebuggerStepInstruction
		}
	case action.EmulatorStepFrame:
		if e.debuggerState != debug.DebuggerRunning {
			e.debuggerState = debug.DebuggerStepFrame
		}
	}
}

// DebuggerState returns whether the interpreter is running, paused or stepping.
func (e *Interpreter) DebuggerState() debug.DebuggerState {
	return e.debuggerState
}

func (e *Interpreter) ExtractDebugData() *debug.Data {
	data := &debug.Data{
		CPU: &debug.CPUState{
			V:            e.cpu.Registers(),
			I:            e.cpu.I(),
			PC:           e.cpu.PC(),
			SP:           e.cpu.SP(),
			Stack:        e.cpu.Stack(),
			DelayTimer:   e.bus.Timers.Delay(),
			SoundTimer:   e.bus.Timers.Sound(),
			State:        e.cpu.State().String(),
			Opcode:       e.cpu.CurrentOpcode(),
			Instructions: e.cpu.Instructions(),
			Steps:        e.clock.Steps(),
			Ticks:        e.clock.Ticks(),
		},
		Memory:        debug.SnapshotAround(e.bus.Memory, e.cpu.PC(), snapshotBefore, snapshotAfter),
		Keys:          e.bus.Keypad.State(),
		DebuggerState: e.debuggerState,
	}
	if err := e.cpu.Fault(); err != nil {
		data.Fault = err.Error()
	}
	return data
}
