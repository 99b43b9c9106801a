// Package app wires the chip8 VM, the host window, and the sound sink
// together into the run loop: event intake, CPU stepping, timer ticking,
// and frame presentation, in that fixed order, plus pause/step/quit
// run-control.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/arcane8/chippy/internal/chip8"
	"github.com/arcane8/chippy/internal/display"
	"github.com/arcane8/chippy/internal/sound"
)

// soundAssetPath is where the optional beep asset is looked for. Its
// absence just means a silent sound.Sink, never an error.
const soundAssetPath = "assets/beep.mp3"

// Run builds a VM from cfg, opens a window, and drives the run loop until
// the user quits or the VM halts on a fatal error. It must be called on
// the main thread via pixelgl.Run, since pixelgl owns windowing.
func Run(cfg chip8.Config) error {
	vm, err := chip8.NewVM(cfg)
	if err != nil {
		return fmt.Errorf("app: creating vm: %w", err)
	}

	win, err := display.NewWindow("chippy")
	if err != nil {
		return fmt.Errorf("app: creating window: %w", err)
	}

	snk := sound.NewSink(soundAssetPath)

	cycleInterval := time.Second / time.Duration(cfg.TickRate)
	ticker := chip8.NewTicker(time.Now())

	paused := false
	lastCycleTime := time.Now()

	for {
		now := time.Now()
		ev := win.Poll(now)

		if ev.Quit {
			break
		}
		if ev.TogglePause {
			paused = !paused
		}
		for key := 0; key < 16; key++ {
			if ev.KeyPressed[key] {
				vm.SetKey(byte(key), true)
			}
			if ev.KeyReleased[key] {
				vm.SetKey(byte(key), false)
			}
		}

		shouldStep := (!paused && now.Sub(lastCycleTime) >= cycleInterval) ||
			(paused && ev.StepRequest)

		if shouldStep {
			lastCycleTime = now
			if cfg.Trace {
				traceStep(vm)
			}
			if err := vm.Step(); err != nil {
				fmt.Fprintf(os.Stderr, "chippy: fatal VM error, shutting down: %v\n", err)
				idleWindow(win)
				return err
			}
		}

		ticker.Tick60Hz(vm, now)
		snk.Observe(vm.SoundTimer())

		if vm.RedrawRequested() {
			win.Present(vm.Framebuffer())
			vm.ClearRedraw()
		}

		time.Sleep(time.Millisecond)
	}

	idleWindow(win)
	return nil
}

// traceStep prints one PC/I diagnostic line before each CPU step, the
// --trace debug aid carried over from the original Python prototype's
// terminal trace. The opcode is not included in the line.
func traceStep(vm *chip8.VM) {
	fmt.Fprintf(os.Stderr, "PC: %#04x | I: %#04x\n", vm.PC(), vm.I())
}

// idleWindow returns the host window to an idle, inert state before exit
// so a fatal VM error doesn't leave a frozen frame on screen.
func idleWindow(win *display.Window) {
	win.Destroy()
}
