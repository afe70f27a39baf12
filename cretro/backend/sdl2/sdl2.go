//go:build sdl2

package sdl2

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"unicode"
	"unsafe"

	"github.com/valerio/go-cretro/cretro/audio"
	"github.com/valerio/go-cretro/cretro/backend"
	"github.com/valerio/go-cretro/cretro/debug"
	"github.com/valerio/go-cretro/cretro/display"
	"github.com/valerio/go-cretro/cretro/input"
	"github.com/valerio/go-cretro/cretro/input/action"
	"github.com/valerio/go-cretro/cretro/input/event"
	"github.com/valerio/go-cretro/cretro/video"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	// samples per channel queued per frame, and how many frames may be in flight
	samplesPerFrame = audio.SampleRate / 60
	queuedFrames    = 3
	bytesPerSample  = 2
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed renderer, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	running  bool
	config   backend.BackendConfig

	audio       audio.Provider
	audioDevice sdl.AudioDeviceID

	pixels       []byte
	currentFrame *video.FrameBuffer
	events       []backend.InputEvent
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{
		pixels: make([]byte, video.FramebufferSize*display.RGBABytesPerPixel),
	}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	scale := int32(config.Scale)
	if scale < 1 {
		scale = display.DefaultPixelScale
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		video.FramebufferWidth*scale,
		video.FramebufferHeight*scale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	if config.AudioProvider != nil {
		if err := s.initAudio(config.AudioProvider); err != nil {
			// sound is optional, keep running silent
			slog.Warn("Audio unavailable", "error", err)
		}
	}

	s.running = true
	if config.TestPattern {
		slog.Info("SDL2 backend initialized in test pattern mode")
	} else {
		slog.Info("SDL2 backend initialized")
	}

	return nil
}

func (s *Backend) initAudio(provider audio.Provider) error {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return err
	}

	spec := &sdl.AudioSpec{
		Freq:     audio.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: audio.Channels,
		Samples:  512,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return err
	}

	s.audio = provider
	s.audioDevice = dev
	sdl.PauseAudioDevice(dev, false)
	return nil
}

// Update renders a frame and processes events
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	s.events = s.events[:0]

	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		s.handleEvent(e)
	}
	events := append([]backend.InputEvent(nil), s.events...)

	if !s.running {
		return events, nil
	}

	s.queueAudio()

	if s.config.ShowDebug && s.config.DebugProvider != nil {
		s.updateTitle(s.config.DebugProvider.ExtractDebugData())
	}

	s.currentFrame = frame
	s.renderFrame(frame)

	return events, nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.audioDevice != 0 {
		sdl.CloseAudioDevice(s.audioDevice)
	}
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

// HandleAction processes backend-specific actions
func (s *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(s.currentFrame, "")
	case action.EmulatorDebugToggle:
		s.config.ShowDebug = !s.config.ShowDebug
		if !s.config.ShowDebug {
			s.window.SetTitle(s.config.Title)
		}
	}
}

func (s *Backend) handleEvent(e sdl.Event) {
	switch e := e.(type) {
	case *sdl.QuitEvent:
		s.running = false
		s.push(action.EmulatorQuit, event.Press)

	case *sdl.KeyboardEvent:
		act, ok := keyMapping[e.Keysym.Sym]
		if !ok {
			return
		}
		switch {
		case e.Type == sdl.KEYDOWN && e.Repeat == 0:
			if act == action.EmulatorQuit {
				s.running = false
			}
			s.push(act, event.Press)
		case e.Type == sdl.KEYUP && act.IsKeypad():
			s.push(act, event.Release)
		}
	}
}

func (s *Backend) push(act action.Action, typ event.Type) {
	s.events = append(s.events, backend.InputEvent{Action: act, Type: typ})
}

// sdlKeyNames maps the non printable key names used in default mappings.
var sdlKeyNames = map[string]sdl.Keycode{
	"Space":  sdl.K_SPACE,
	"Escape": sdl.K_ESCAPE,
	"F9":     sdl.K_F9,
	"F10":    sdl.K_F10,
	"F12":    sdl.K_F12,
}

// buildKeyMapping creates the key mapping from default mappings. SDL
// keycodes of printable keys are their lower case character.
func buildKeyMapping() map[sdl.Keycode]action.Action {
	mapping := make(map[sdl.Keycode]action.Action)
	for name, act := range input.DefaultKeyMap {
		if key, ok := sdlKeyNames[name]; ok {
			mapping[key] = act
			continue
		}
		if runes := []rune(name); len(runes) == 1 {
			mapping[sdl.Keycode(unicode.ToLower(runes[0]))] = act
		}
	}
	return mapping
}

var keyMapping = buildKeyMapping()

// queueAudio keeps a few frames of samples queued on the device.
func (s *Backend) queueAudio() {
	if s.audioDevice == 0 {
		return
	}

	frameBytes := uint32(samplesPerFrame * audio.Channels * bytesPerSample)
	if sdl.GetQueuedAudioSize(s.audioDevice) >= frameBytes*queuedFrames {
		return
	}

	samples := s.audio.GetSamples(samplesPerFrame * audio.Channels)
	buf := make([]byte, len(samples)*bytesPerSample)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(buf[i*bytesPerSample:], uint16(v))
	}
	if err := sdl.QueueAudio(s.audioDevice, buf); err != nil {
		slog.Warn("Failed to queue audio", "error", err)
	}
}

func (s *Backend) updateTitle(data *debug.Data) {
	if data == nil || data.CPU == nil {
		return
	}
	s.window.SetTitle(fmt.Sprintf("%s [%s] PC=%03X I=%03X DT=%02X ST=%02X",
		s.config.Title, data.DebuggerState, data.CPU.PC, data.CPU.I, data.CPU.DelayTimer, data.CPU.SoundTimer))
}

func (s *Backend) renderFrame(frame *video.FrameBuffer) {
	for i, pixel := range frame.ToSlice() {
		dst := i * display.RGBABytesPerPixel

		// ABGR byte order for little-endian RGBA8888
		s.pixels[dst] = byte(pixel)
		s.pixels[dst+1] = byte(pixel >> display.RGBABShift)
		s.pixels[dst+2] = byte(pixel >> display.RGBAGShift)
		s.pixels[dst+3] = byte(pixel >> display.RGBARShift)
	}

	s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), video.FramebufferWidth*display.RGBABytesPerPixel)

	s.renderer.SetDrawColor(0, 0, 0, 0xFF)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}
