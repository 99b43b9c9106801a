// Package display adapts the CHIP-8 framebuffer and keypad to a host
// window: it owns the pixelgl.Window, presents the 64x32 framebuffer
// scaled up, and translates host key events into CHIP-8 keypad state plus
// the run-control signals (pause/step/quit) the run loop needs.
package display

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const (
	chipWidth  = 64
	chipHeight = 32

	// Scale is the host pixels drawn per CHIP-8 pixel, giving the
	// standard 640x320 window.
	Scale = 10

	windowWidth  = chipWidth * Scale
	windowHeight = chipHeight * Scale

	keyRepeatDur = time.Second / 5

	// StepRateLimit bounds single-step requests to one per 100ms while paused.
	StepRateLimit = 100 * time.Millisecond
)

// keyMap is the standard left-hand CHIP-8 keypad layout:
//
//	1 2 3 4  ->  1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F  ->  7 8 9 E
//	Z X C V  ->  A 0 B F
var keyMap = map[byte]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

const (
	keyPause = pixelgl.KeySpace
	keyStep  = pixelgl.KeyS
	keyQuitA = pixelgl.KeyL
	keyQuitB = pixelgl.KeyEscape
)

// Window wraps a pixelgl window and per-key repeat tickers that are started
// on a key press and stopped on its release. Poll does not read the
// tickers: a held key is reported once, on its press transition.
type Window struct {
	*pixelgl.Window
	keysDown [16]*time.Ticker
	lastStep time.Time
}

// NewWindow creates the host window at the standard scaled resolution.
func NewWindow(title string) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, windowWidth, windowHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("display: creating window: %w", err)
	}
	return &Window{Window: w}, nil
}

// Present draws the 64x32 framebuffer scaled up, background first. Pixel
// color and background are visually distinct per spec: black background,
// green foreground.
func (w *Window) Present(framebuffer *[chipWidth * chipHeight]byte) {
	w.Clear(colornames.Black)
	draw := imdraw.New(nil)
	draw.Color = pixel.RGB(0, 0.8, 0.2)

	for row := 0; row < chipHeight; row++ {
		for col := 0; col < chipWidth; col++ {
			if framebuffer[row*chipWidth+col] == 0 {
				continue
			}
			// CHIP-8's origin is top-left; pixel's is bottom-left.
			flippedRow := chipHeight - 1 - row
			x0 := float64(col * Scale)
			y0 := float64(flippedRow * Scale)
			draw.Push(pixel.V(x0, y0))
			draw.Push(pixel.V(x0+Scale, y0+Scale))
			draw.Rectangle(0)
		}
	}

	draw.Draw(w)
	w.Update()
}

// Events is the set of host-derived signals the run loop reacts to each
// iteration: key transitions plus the run-control toggles.
type Events struct {
	TogglePause  bool
	StepRequest  bool
	Quit         bool
	KeyPressed   [16]bool // transitioned to pressed this iteration
	KeyReleased  [16]bool // transitioned to released this iteration
}

// Poll processes pending host input for one iteration: it reports
// run-control edges (pause toggled, step requested, quit requested) and
// updates kept-alive key-repeat state. Key hold/release transitions are
// derived straight from pixelgl's JustPressed/JustReleased so the caller
// can feed them to VM.SetKey.
func (w *Window) Poll(now time.Time) Events {
	var ev Events

	if w.Closed() {
		ev.Quit = true
	}
	if w.JustPressed(keyQuitA) || w.JustPressed(keyQuitB) {
		ev.Quit = true
	}
	if w.JustPressed(keyPause) {
		ev.TogglePause = true
	}
	if w.JustPressed(keyStep) && now.Sub(w.lastStep) >= StepRateLimit {
		ev.StepRequest = true
		w.lastStep = now
	}

	for hexKey, btn := range keyMap {
		switch {
		case w.JustPressed(btn):
			ev.KeyPressed[hexKey] = true
			if w.keysDown[hexKey] == nil {
				w.keysDown[hexKey] = time.NewTicker(keyRepeatDur)
			}
		case w.JustReleased(btn):
			ev.KeyReleased[hexKey] = true
			if t := w.keysDown[hexKey]; t != nil {
				t.Stop()
				w.keysDown[hexKey] = nil
			}
		}
	}

	w.UpdateInput()
	return ev
}
