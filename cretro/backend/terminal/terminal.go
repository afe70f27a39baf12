package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-cretro/cretro/addr"
	"github.com/valerio/go-cretro/cretro/audio"
	"github.com/valerio/go-cretro/cretro/backend"
	"github.com/valerio/go-cretro/cretro/backend/terminal/render"
	"github.com/valerio/go-cretro/cretro/debug"
	"github.com/valerio/go-cretro/cretro/display"
	"github.com/valerio/go-cretro/cretro/input"
	"github.com/valerio/go-cretro/cretro/input/action"
	"github.com/valerio/go-cretro/cretro/input/event"
	"github.com/valerio/go-cretro/cretro/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	// two pixel rows share one terminal row
	gameAreaWidth  = width
	gameAreaHeight = height / 2
	keypadY        = gameAreaHeight + 2
	registerHeight = 10
	disasmHeight   = 9
	minTermWidth   = 100
	minTermHeight  = 24
	logCapacity    = 100
)

// levelFatal is the most restrictive filter, matching debug level 0.
const levelFatal = slog.Level(12)

// keypadLayout is the 4x4 hex keypad as it appears on the original hardware.
var keypadLayout = [4][4]uint8{
	{0x1, 0x2, 0x3, 0xC},
	{0x4, 0x5, 0x6, 0xD},
	{0x7, 0x8, 0x9, 0xE},
	{0xA, 0x0, 0xB, 0xF},
}

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	running    bool
	logBuffer  *render.LogBuffer
	logLevel   *slog.LevelVar
	config     backend.BackendConfig
	eventQueue []backend.InputEvent
	signals    chan os.Signal

	keyStates  map[action.Action]time.Time // Last time each key was seen
	activeKeys map[action.Action]bool      // Keys active in previous frame
	now        func() time.Time

	debugProvider backend.DebugDataProvider
	audio         audio.Provider
	toneOn        bool

	patternIndex int
	currentFrame *video.FrameBuffer
}

// New creates a new terminal backend drawing on the controlling terminal.
func New() *Backend {
	return &Backend{
		logLevel: new(slog.LevelVar),
		now:      time.Now,
	}
}

// NewWithScreen creates a backend drawing on the given screen, e.g. a tcell
// simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	b := New()
	b.screen = screen
	return b
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.debugProvider = config.DebugProvider
	t.audio = config.AudioProvider
	t.eventQueue = nil
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.running = true

	// From here on logs go to the log panel instead of stderr
	t.logLevel.Set(config.LogLevel)
	t.logBuffer = render.NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, t.logLevel)))

	if config.TestPattern {
		slog.Info("Terminal backend initialized in test pattern mode")
	} else {
		slog.Info("Terminal backend initialized")
		if config.ShowDebug {
			slog.Debug("Debug mode enabled")
		}
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	return nil
}

// Terminals only report key presses and auto-repeats, never releases. A key
// counts as held until no repeat arrived for keyTimeout, slightly longer
// than a typical repeat interval.
const keyTimeout = 100 * time.Millisecond

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := t.now()

	t.checkSignals()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	currentlyActive := make(map[action.Action]bool)
	for act, lastSeen := range t.keyStates {
		if now.Sub(lastSeen) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if !t.activeKeys[act] {
			slog.Debug("Key press", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		} else {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
	t.activeKeys = currentlyActive

	for _, evt := range t.eventQueue {
		slog.Debug("UI event", "action", evt.Action, "type", evt.Type)
	}
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	if !t.running {
		return events, nil
	}

	t.updateTone()

	t.currentFrame = frame
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(t.currentFrame, "")
	case action.EmulatorTestPatternCycle:
		if t.config.TestPattern {
			t.patternIndex = (t.patternIndex + 1) % display.TestPatternCount
		}
	case action.EmulatorDebugToggle:
		t.config.ShowDebug = !t.config.ShowDebug
		if t.config.ShowDebug {
			slog.Info("Debug display enabled")
		} else {
			slog.Info("Debug display disabled")
		}
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

// ShowDebug reports whether the register and disassembly panels are visible.
func (t *Backend) ShowDebug() bool {
	return t.config.ShowDebug
}

// LogLevel returns the current capture level of the log panel.
func (t *Backend) LogLevel() slog.Level {
	return t.logLevel.Level()
}

func (t *Backend) checkSignals() {
	select {
	case sig := <-t.signals:
		slog.Info("Received signal", "signal", sig)
		t.running = false
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	default:
	}
}

// updateTone rings the terminal bell when the buzzer starts. A terminal
// has no way to hold a tone.
func (t *Backend) updateTone() {
	if t.audio == nil {
		return
	}
	on := t.audio.ToneOn()
	if on && !t.toneOn && !t.audio.Muted() {
		_ = t.screen.Beep()
	}
	t.toneOn = on
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = runeMapping[unicode.ToLower(ev.Rune())]
	}
	if !ok {
		return
	}

	if act == action.EmulatorQuit {
		t.running = false
	}
	if act.IsKeypad() {
		t.keyStates[act] = now
		return
	}
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
	tcell.KeyF9:     "F9",
	tcell.KeyF10:    "F10",
	tcell.KeyF12:    "F12",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)
	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	mapping[tcell.KeyCtrlC] = action.EmulatorQuit
	return mapping
}

// buildRuneMapping picks every single character key out of the default
// mappings.
func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)
	for keyName, act := range input.DefaultKeyMap {
		runes := []rune(keyName)
		switch {
		case keyName == "Space":
			mapping[' '] = act
		case len(runes) == 1:
			mapping[runes[0]] = act
		}
	}
	return mapping
}

var (
	keyMapping  = buildKeyMapping()
	runeMapping = buildRuneMapping()
)

// logLevels are the capture levels the log panel steps through, least
// verbose first.
var logLevels = []slog.Level{levelFatal, slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug}

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel.Level()

	idx := 0
	for i, l := range logLevels {
		if l == oldLevel {
			idx = i
		}
	}
	idx += direction
	if idx < 0 || idx >= len(logLevels) {
		return
	}

	t.logLevel.Set(logLevels[idx])
	slog.Info("Log filter changed", "from", render.LevelTag(oldLevel), "to", render.LevelTag(logLevels[idx]))
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, style)
		return
	}

	dividerX := gameAreaWidth + 2
	rightPanelX := dividerX + 2
	rightPanelWidth := termWidth - rightPanelX

	var data *debug.Data
	if t.debugProvider != nil {
		data = t.debugProvider.ExtractDebugData()
	}

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawScreen(frame)
	if data != nil {
		t.drawKeypad(1, keypadY, data.Keys)
	}

	logsY := 1
	if t.config.ShowDebug && data != nil && data.CPU != nil {
		t.drawRegisters(rightPanelX, 1, rightPanelWidth, data)
		t.drawDisassembly(rightPanelX, registerHeight+2, rightPanelWidth, data)
		logsY = registerHeight + disasmHeight + 3
	}
	t.drawLogs(rightPanelX, logsY, rightPanelWidth, termHeight)
}

func (t *Backend) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	for i, ch := range []rune(render.Truncate(text, maxWidth)) {
		t.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight-1; y++ {
		t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}
	for x := 0; x < dividerX; x++ {
		t.screen.SetContent(x, gameAreaHeight+1, '─', nil, borderStyle)
	}
	t.screen.SetContent(dividerX, gameAreaHeight+1, '┤', nil, borderStyle)

	title := " CHIP-8 "
	if t.config.TestPattern {
		title = fmt.Sprintf(" Test Pattern: %s ", display.PatternNames[t.patternIndex])
	} else if t.config.Title != "" {
		title = " " + t.config.Title + " "
	}
	t.drawText(1, 0, dividerX-1, title, titleStyle)
	t.drawText(1, gameAreaHeight+1, dividerX-1, " Keypad ", titleStyle)

	startX := dividerX + 2
	panelWidth := termWidth - startX
	registerEndY := registerHeight + 1
	disasmEndY := registerEndY + disasmHeight + 1

	logsTitleY := 0
	if t.config.ShowDebug {
		for _, y := range []int{registerEndY, disasmEndY} {
			for x := dividerX + 1; x < termWidth; x++ {
				t.screen.SetContent(x, y, '─', nil, borderStyle)
			}
			t.screen.SetContent(dividerX, y, '├', nil, borderStyle)
		}
		t.drawText(startX, 0, panelWidth, " CPU Registers ", titleStyle)
		t.drawText(startX, registerEndY, panelWidth, " Disassembly ", titleStyle)
		logsTitleY = disasmEndY
	}
	logsTitle := fmt.Sprintf(" Logs [%s] (-/+ filter) ", render.LevelTag(t.logLevel.Level()))
	t.drawText(startX, logsTitleY, panelWidth, logsTitle, titleStyle)

	helpText := " F10=debug view SPACE=pause N=step O=frame F9=snapshot ESC=exit | Logs: +/- filter "
	if t.config.TestPattern {
		helpText = " Test Pattern Mode: F12=cycle patterns F9=snapshot ESC=exit "
	}
	t.drawText(0, termHeight-1, termWidth, helpText, borderStyle)
}

// drawScreen packs two framebuffer rows into each terminal row using half
// block characters.
func (t *Backend) drawScreen(frame *video.FrameBuffer) {
	if frame == nil {
		return
	}
	frameData := frame.ToSlice()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := render.PixelLit(frameData[y*width+x])
			bottom := y+1 < height && render.PixelLit(frameData[(y+1)*width+x])
			t.screen.SetContent(x+1, y/2+1, render.HalfBlockChar(top, bottom), nil, style)
		}
	}
}

func (t *Backend) drawKeypad(startX, startY int, keys [addr.KeyCount]bool) {
	upStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	downStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)

	for row, line := range keypadLayout {
		for col, key := range line {
			style := upStyle
			if keys[key] {
				style = downStyle
			}
			t.drawText(startX+col*3, startY+row, 3, fmt.Sprintf(" %X ", key), style)
		}
	}
}

func (t *Backend) drawRegisters(startX, startY, width int, data *debug.Data) {
	cpu := data.CPU

	var stack strings.Builder
	for _, ret := range cpu.Stack {
		fmt.Fprintf(&stack, " %03X", ret)
	}
	if stack.Len() == 0 {
		stack.WriteString(" empty")
	}

	lines := []string{
		fmt.Sprintf("Status: %s  CPU: %s", strings.ToUpper(data.DebuggerState.String()), cpu.State),
	}
	for row := 0; row < addr.RegisterCount; row += 4 {
		lines = append(lines, fmt.Sprintf("V%X: %02X  V%X: %02X  V%X: %02X  V%X: %02X",
			row, cpu.V[row], row+1, cpu.V[row+1], row+2, cpu.V[row+2], row+3, cpu.V[row+3]))
	}
	lines = append(lines,
		fmt.Sprintf("I: %03X  PC: %03X  SP: %d", cpu.I, cpu.PC, cpu.SP),
		fmt.Sprintf("DT: %02X  ST: %02X  Ticks: %d", cpu.DelayTimer, cpu.SoundTimer, cpu.Ticks),
		"Stack:"+stack.String(),
		fmt.Sprintf("Opcode: %04X  Executed: %d", cpu.Opcode, cpu.Instructions),
	)

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines {
		if i >= registerHeight {
			break
		}
		t.drawText(startX, startY+i, width, line, style)
	}

	if data.Fault != "" {
		t.drawText(startX, startY+len(lines), width, data.Fault, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}
}

func (t *Backend) drawDisassembly(startX, startY, width int, data *debug.Data) {
	if data.Memory == nil {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	for i, l := range debug.CreateDisassembly(data.Memory, data.CPU.PC, disasmHeight) {
		line := fmt.Sprintf("  %03X: %s", l.Address, l.Instruction)
		useStyle := style
		if l.IsCurrent {
			line = "→" + line[1:]
			useStyle = currentStyle
		}
		t.drawText(startX, startY+i, width, line, useStyle)
	}
}

func (t *Backend) drawLogs(startX, startY, width, termHeight int) {
	availableHeight := termHeight - startY - 1
	if width <= 0 || availableHeight <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(availableHeight) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}
		t.drawText(startX, startY+i, width, render.FormatLogEntry(entry), style)
	}
}
