package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli"
	"github.com/valerio/go-cretro/cretro"
	"github.com/valerio/go-cretro/cretro/backend"
	"github.com/valerio/go-cretro/cretro/backend/headless"
	"github.com/valerio/go-cretro/cretro/backend/sdl2"
	"github.com/valerio/go-cretro/cretro/backend/terminal"
	"github.com/valerio/go-cretro/cretro/cpu"
	"github.com/valerio/go-cretro/cretro/disasm"
	"github.com/valerio/go-cretro/cretro/display"
	"github.com/valerio/go-cretro/cretro/fault"
	"github.com/valerio/go-cretro/cretro/timing"
)

// printStacks is set at the highest debug level, fatal errors are then
// printed with their stack trace.
var printStacks bool

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		slog.Log(context.Background(), cretro.LevelFatal, "Error running interpreter", "error", err)
		if printStacks {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cretro"
	app.Description = "An interpreter for CHIP-8 programs"
	app.Usage = "cretro [options] <program file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "debug, d",
			Usage: "Log verbosity, 0 (fatal only) to 4 (every instruction)",
			Value: cretro.DefaultConfig().DebugLevel,
		},
		cli.IntFlag{
			Name:  "frequency, f",
			Usage: "Instructions executed per second",
			Value: timing.DefaultFrequency,
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Output backend: terminal or sdl2",
			Value: "terminal",
		},
		cli.BoolFlag{
			Name:  "show-debug",
			Usage: "Start with the register and disassembly panels visible",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the interpreter without any interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "test-pattern",
			Usage: "Display a test pattern instead of running a program (for debugging display)",
		},
		cli.BoolFlag{
			Name:  "disasm",
			Usage: "Print a disassembly of the program and exit",
		},
		cli.BoolFlag{
			Name:  "quirk-shift-vy",
			Usage: "SHR/SHL shift VY into VX instead of shifting VX in place",
		},
		cli.BoolFlag{
			Name:  "quirk-load-store-keep-i",
			Usage: "Fx55/Fx65 leave I unchanged instead of pointing past the last register transferred",
		},
		cli.BoolFlag{
			Name:  "quirk-index-overflow-vf",
			Usage: "ADD I, Vx sets VF on overflow past FFF instead of faulting",
		},
	}
	app.Action = runInterpreter
	return app
}

func runInterpreter(c *cli.Context) error {
	config := configFromFlags(c)
	setupLogging(errWriter(c), config.LogLevel())
	printStacks = config.DebugLevel >= cretro.MaxDebugLevel

	config, err := config.Validate()
	if err != nil {
		return err
	}

	if c.Bool("test-pattern") {
		slog.Info("Running in test pattern mode")
		return runWithBackend(c, cretro.NewTestPatternEmulator(), "test pattern", config)
	}

	if c.NArg() != 1 {
		cli.ShowAppHelp(c)
		return fault.New(fault.Config, "expected exactly one program file, got %d", c.NArg())
	}
	path := c.Args().First()

	if c.Bool("disasm") {
		data, err := os.ReadFile(path)
		if err != nil {
			return fault.Wrap(err, fault.Load, "reading program %s", path)
		}
		return disasm.WriteListing(c.App.Writer, data)
	}

	emu, err := cretro.NewWithFile(path, config)
	if err != nil {
		return err
	}
	return runWithBackend(c, emu, path, config)
}

// configFromFlags reads the raw settings. Validation runs once logging is
// set up, so its reports honour --debug.
func configFromFlags(c *cli.Context) cretro.Config {
	config := cretro.DefaultConfig()
	config.Frequency = c.Int("frequency")
	config.DebugLevel = c.Int("debug")
	config.Quirks = cpu.Quirks{
		ShiftUsesVY:         c.Bool("quirk-shift-vy"),
		LoadStoreLeavesI:    c.Bool("quirk-load-store-keep-i"),
		IndexOverflowSetsVF: c.Bool("quirk-index-overflow-vf"),
	}
	return config
}

func runWithBackend(c *cli.Context, emu cretro.Emulator, programPath string, config cretro.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, limiter, err := createBackend(c, programPath)
	if err != nil {
		return err
	}
	if ticker, ok := limiter.(*timing.TickerLimiter); ok {
		defer ticker.Stop()
	}

	name := strings.TrimSuffix(filepath.Base(programPath), filepath.Ext(programPath))
	backendConfig := backend.BackendConfig{
		Title:       "cretro - " + name,
		Scale:       display.DefaultPixelScale,
		ShowDebug:   c.Bool("show-debug"),
		TestPattern: c.Bool("test-pattern"),
		LogLevel:    config.LogLevel(),
	}

	err = cretro.NewRunner(emu, be, cretro.WithLimiter(limiter)).Run(ctx, backendConfig)

	if interp, ok := emu.(*cretro.Interpreter); ok {
		state := interp.ExtractDebugData().CPU
		slog.Info("Execution finished",
			"frames", interp.Frames(),
			"instructions", state.Instructions,
			"steps", state.Steps,
			"timer_ticks", state.Ticks,
			"state", interp.State())
	}
	return err
}

// createBackend picks the backend and the limiter pacing it. Headless runs
// unpaced.
func createBackend(c *cli.Context, programPath string) (backend.Backend, timing.Limiter, error) {
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return nil, nil, fault.New(fault.Config, "headless mode requires --frames option with a positive value")
		}

		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), programPath)
		if err != nil {
			return nil, nil, err
		}
		return headless.New(frames, snapshotConfig), nil, nil
	}

	frameTime := timing.FrameDuration()
	switch name := c.String("backend"); name {
	case "terminal":
		return terminal.New(), timing.NewAdaptiveLimiter(frameTime), nil
	case "sdl2":
		return sdl2.New(), timing.NewTickerLimiter(frameTime), nil
	default:
		return nil, nil, fault.New(fault.Config, "unknown backend %q", name)
	}
}

// setupLogging installs a text logger on w. Backends that own the terminal
// replace it once they start.
func setupLogging(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l >= cretro.LevelFatal {
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	})
	slog.SetDefault(slog.New(handler))
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}
