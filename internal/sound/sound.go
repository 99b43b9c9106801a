// Package sound observes the CHIP-8 sound timer and starts a beep each time
// it goes from zero to non-zero; the beep is not cut off when the timer
// reaches zero. It never blocks the run loop and degrades silently when no
// audio asset or device is available, per spec: the sound timer must be
// observed but need not be audibilized.
package sound

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Sink reacts to the current sound timer value once per run-loop iteration.
type Sink interface {
	// Observe is called with the sound timer's value after each timer tick.
	Observe(soundTimer byte)
}

// noopSink satisfies Sink without making any noise. Used whenever the beep
// asset or audio device can't be opened.
type noopSink struct{}

func (noopSink) Observe(byte) {}

// beepSink re-plays a decoded mp3 streamer every time the sound timer
// transitions from zero to non-zero, mirroring the teacher's own
// ManageAudio: one-shot speaker.Play per beep rather than a paused/resumed
// loop, which keeps this adapter honest about what beep v1.1.0 actually
// offers.
type beepSink struct {
	assetPath   string
	format      beep.Format
	lastNonZero bool
}

// NewSink opens assetPath (an mp3 file), decodes it once to learn its
// format, and initializes the speaker at that sample rate. If any step
// fails — missing file, bad decode, no output device — it returns a
// silent no-op Sink rather than an error, since sound is optional
// everywhere this is used.
func NewSink(assetPath string) Sink {
	f, err := os.Open(assetPath)
	if err != nil {
		return noopSink{}
	}
	defer f.Close()

	_, format, err := mp3.Decode(f)
	if err != nil {
		return noopSink{}
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return noopSink{}
	}

	return &beepSink{assetPath: assetPath, format: format}
}

// Observe fires a fresh playback of the asset on every 0 -> non-zero
// transition of the sound timer; it never blocks the caller.
func (s *beepSink) Observe(soundTimer byte) {
	nonZero := soundTimer > 0
	if nonZero == s.lastNonZero {
		return
	}
	s.lastNonZero = nonZero
	if !nonZero {
		return
	}

	f, err := os.Open(s.assetPath)
	if err != nil {
		return
	}
	streamer, _, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return
	}
	speaker.Play(beep.Seq(streamer, beep.Callback(func() { streamer.Close() })))
}
