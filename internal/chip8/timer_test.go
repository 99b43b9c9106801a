package chip8

import (
	"testing"
	"time"
)

func TestTickerDecrementsAt60Hz(t *testing.T) {
	vm := newTestVM(t, nil)
	vm.delayTimer = 10
	vm.soundTimer = 10

	start := time.Now()
	ticker := NewTicker(start)

	// advancing by exactly one interval should decrement exactly once
	ticker.Tick60Hz(vm, start.Add(timerInterval))
	if vm.delayTimer != 9 {
		t.Errorf("delayTimer = %d, want 9", vm.delayTimer)
	}
	if vm.soundTimer != 9 {
		t.Errorf("soundTimer = %d, want 9", vm.soundTimer)
	}
}

func TestTickerIndependentOfManySmallCalls(t *testing.T) {
	vm := newTestVM(t, nil)
	vm.delayTimer = 10

	start := time.Now()
	ticker := NewTicker(start)

	// lots of tiny advances, each well under 1/60s, add up to 100ms of wall
	// time: six whole 1/60s intervals, so exactly six decrements, no more
	// and no fewer than the number of calls would suggest.
	for i := 0; i < 100; i++ {
		start = start.Add(time.Millisecond)
		ticker.Tick60Hz(vm, start)
	}
	if vm.delayTimer != 4 {
		t.Errorf("delayTimer = %d, want 4 (six 1/60s intervals in 100ms)", vm.delayTimer)
	}
}

func TestTickerCatchUpIsCapped(t *testing.T) {
	vm := newTestVM(t, nil)
	vm.delayTimer = 255
	vm.soundTimer = 255

	start := time.Now()
	ticker := NewTicker(start)

	// simulate a huge stall: far more than maxCatchUpSteps worth of ticks
	ticker.Tick60Hz(vm, start.Add(100*timerInterval))

	wantDecrement := byte(maxCatchUpSteps)
	if vm.delayTimer != 255-wantDecrement {
		t.Errorf("delayTimer = %d, want %d (capped catch-up)", vm.delayTimer, 255-wantDecrement)
	}
}

func TestTickerDoesNotDecrementBelowZero(t *testing.T) {
	vm := newTestVM(t, nil)
	vm.delayTimer = 0
	vm.soundTimer = 0

	start := time.Now()
	ticker := NewTicker(start)
	ticker.Tick60Hz(vm, start.Add(10*timerInterval))

	if vm.delayTimer != 0 || vm.soundTimer != 0 {
		t.Errorf("timers should stay at 0, got delay=%d sound=%d", vm.delayTimer, vm.soundTimer)
	}
}
