package chip8

import "time"

const (
	timerHz       = 60
	timerInterval = time.Second / timerHz

	// maxCatchUpSteps bounds how many timer decrements a single Tick60Hz
	// call will apply after a stall (e.g. the host window was unresponsive
	// for a while), so the timers don't death-spiral trying to catch up.
	maxCatchUpSteps = 4
)

// Ticker decrements the delay and sound timers at a fixed 60 Hz, entirely
// independent of however often the CPU steps. Coupling timer decrement to
// the CPU step rate is the classic CHIP-8 interpreter bug: at a 500 Hz CPU
// rate that would decrement timers ~8x too fast and break game timing.
type Ticker struct {
	last time.Time
}

// NewTicker returns a Ticker referenced to now.
func NewTicker(now time.Time) *Ticker {
	return &Ticker{last: now}
}

// Tick60Hz checks elapsed time since the last decrement and, for every
// whole 1/60s that has passed (capped at maxCatchUpSteps), decrements both
// non-zero timers by one and advances the reference time by 1/60s.
func (t *Ticker) Tick60Hz(vm *VM, now time.Time) {
	steps := 0
	for now.Sub(t.last) >= timerInterval && steps < maxCatchUpSteps {
		if vm.delayTimer > 0 {
			vm.delayTimer--
		}
		if vm.soundTimer > 0 {
			vm.soundTimer--
		}
		t.last = t.last.Add(timerInterval)
		steps++
	}
	// If a whole interval is still pending after the capped decrements (a
	// stall of maxCatchUpSteps+1 intervals or more), the reference is
	// re-anchored to now rather than queuing an ever-growing backlog.
	if now.Sub(t.last) >= timerInterval {
		t.last = now
	}
}
