package cretro

import (
	"context"
	"log/slog"

	"github.com/valerio/go-cretro/cretro/backend"
	"github.com/valerio/go-cretro/cretro/input"
	"github.com/valerio/go-cretro/cretro/input/action"
	"github.com/valerio/go-cretro/cretro/input/event"
	"github.com/valerio/go-cretro/cretro/memory"
	"github.com/valerio/go-cretro/cretro/timing"
)

// emulatorActions are forwarded to the emulator on press.
var emulatorActions = []action.Action{
	action.EmulatorPauseToggle,
	action.EmulatorStepInstruction,
	action.EmulatorStepFrame,
	action.EmulatorTestPatternCycle,
}

// backendActions are forwarded to backends implementing backend.ActionHandler.
var backendActions = []action.Action{
	action.EmulatorSnapshot,
	action.EmulatorDebugToggle,
	action.EmulatorTestPatternCycle,
	action.DebugLogLevelIncrease,
	action.DebugLogLevelDecrease,
}

// Runner drives an emulator frame by frame against a backend.
type Runner struct {
	emu     Emulator
	backend backend.Backend
	input   *input.Manager
	limiter timing.Limiter

	quit bool
}

type RunnerOption func(*Runner)

// WithLimiter paces frames with the given limiter instead of running flat out.
func WithLimiter(l timing.Limiter) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.limiter = l
		}
	}
}

func NewRunner(emu Emulator, be backend.Backend, opts ...RunnerOption) *Runner {
	var keypad *memory.Keypad
	if k, ok := emu.(interface{ Keypad() *memory.Keypad }); ok {
		keypad = k.Keypad()
	}

	r := &Runner{
		emu:     emu,
		backend: be,
		input:   input.NewManager(keypad),
		limiter: timing.NewNoOpLimiter(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.input.On(action.EmulatorQuit, event.Press, func() {
		slog.Info("Quit requested")
		r.quit = true
	})
	for _, act := range emulatorActions {
		r.input.On(act, event.Press, func() { emu.HandleAction(act, true) })
	}
	if handler, ok := be.(backend.ActionHandler); ok {
		for _, act := range backendActions {
			r.input.On(act, event.Press, func() { handler.HandleAction(act) })
		}
	}

	return r
}

// Input returns the manager events are dispatched through, so callers can
// register extra callbacks.
func (r *Runner) Input() *input.Manager {
	return r.input
}

// Run initializes the backend and loops until a quit action, a cancelled
// context or an error. Emulator faults end the loop and are returned as is.
func (r *Runner) Run(ctx context.Context, config backend.BackendConfig) error {
	if config.DebugProvider == nil {
		config.DebugProvider = r.emu
	}
	if config.AudioProvider == nil {
		config.AudioProvider = r.emu.Audio()
	}

	if err := r.backend.Init(config); err != nil {
		return err
	}
	defer func() {
		if err := r.backend.Cleanup(); err != nil {
			slog.Error("Backend cleanup failed", "error", err)
		}
	}()

	r.limiter.Reset()
	for !r.quit {
		if err := ctx.Err(); err != nil {
			slog.Info("Stopping", "reason", err)
			return nil
		}

		if err := r.emu.RunUntilFrame(); err != nil {
			return err
		}

		events, err := r.backend.Update(r.emu.GetCurrentFrame())
		if err != nil {
			return err
		}
		for _, evt := range events {
			r.input.Trigger(evt.Action, evt.Type)
		}

		r.limiter.WaitForNextFrame()
	}

	return nil
}
