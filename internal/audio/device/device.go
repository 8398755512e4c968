// Package device connects a beep streamer to the system audio output.
package device

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Open initializes the speaker at the given rate and starts playing s.
// buffer sets the output latency.
func Open(rate beep.SampleRate, buffer time.Duration, s beep.Streamer) error {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return fmt.Errorf("audio: cannot initialize speaker: %w", err)
	}
	speaker.Play(s)
	return nil
}

// Close stops playback and releases the output device.
func Close() {
	speaker.Clear()
	speaker.Close()
}
