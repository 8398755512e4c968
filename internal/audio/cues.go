package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// Note frequencies in Hz.
const (
	noteG2 = 98.00
	noteA2 = 110.00
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
	noteD5 = 587.33
	noteE5 = 659.25
	noteF5 = 698.46
	noteG5 = 783.99
	noteA5 = 880.00
	noteC6 = 1046.50
)

// cue describes a sound event as a sequence of notes.
type cue struct {
	notes []float64
	note  time.Duration
	wave  Wave
	gain  float64
}

var cues = map[tetris.Sound]cue{
	tetris.SoundRotate:      {notes: []float64{noteE5}, note: 40 * time.Millisecond, wave: WaveSquare, gain: 0.15},
	tetris.SoundMove:        {notes: []float64{noteE4}, note: 25 * time.Millisecond, wave: WaveSine, gain: 0.12},
	tetris.SoundPlace:       {notes: []float64{noteA2}, note: 70 * time.Millisecond, wave: WaveSaw, gain: 0.25},
	tetris.SoundLineClear:   {notes: []float64{noteC5, noteE5, noteG5}, note: 70 * time.Millisecond, wave: WaveSquare, gain: 0.2},
	tetris.SoundTetrisClear: {notes: []float64{noteC5, noteE5, noteG5, noteC6}, note: 110 * time.Millisecond, wave: WaveSquare, gain: 0.25},
	tetris.SoundLevelUp:     {notes: []float64{noteA4, noteC5, noteE5, noteA5}, note: 80 * time.Millisecond, wave: WaveSine, gain: 0.3},
	tetris.SoundLost:        {notes: []float64{noteG4, noteE4, noteC4, noteG2}, note: 180 * time.Millisecond, wave: WaveSaw, gain: 0.25},
	tetris.SoundBootUp:      {notes: []float64{noteC4, noteG4, noteC5, noteE5, noteG5}, note: 120 * time.Millisecond, wave: WaveSine, gain: 0.3},
}

// Streamer builds a finite streamer for the sound, or nil for unknown sounds.
func Streamer(s tetris.Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	c, ok := cues[s]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, len(c.notes))
	for i, f := range c.notes {
		parts[i] = tone(f, c.note, c.wave, rate)
	}
	return newVolume(beep.Seq(parts...), c.gain*volume)
}

// Length returns how long the sound plays.
func Length(s tetris.Sound) time.Duration {
	c := cues[s]
	return time.Duration(len(c.notes)) * c.note
}

// step is one note of the background melody; zero freq is a rest.
type step struct {
	freq  float64
	beats float64
}

// korobeiniki is the opening phrase of the traditional tune, in eighth-note beats.
var korobeiniki = []step{
	{noteE5, 2}, {noteB4, 1}, {noteC5, 1}, {noteD5, 2}, {noteC5, 1}, {noteB4, 1},
	{noteA4, 2}, {noteA4, 1}, {noteC5, 1}, {noteE5, 2}, {noteD5, 1}, {noteC5, 1},
	{noteB4, 3}, {noteC5, 1}, {noteD5, 2}, {noteE5, 2},
	{noteC5, 2}, {noteA4, 2}, {noteA4, 2}, {0, 2},
	{0, 1}, {noteD5, 2}, {noteF5, 1}, {noteA5, 2}, {noteG5, 1}, {noteF5, 1},
	{noteE5, 3}, {noteC5, 1}, {noteE5, 2}, {noteD5, 1}, {noteC5, 1},
	{noteB4, 2}, {noteB4, 1}, {noteC5, 1}, {noteD5, 2}, {noteE5, 2},
	{noteC5, 2}, {noteA4, 2}, {noteA4, 2}, {0, 2},
}

// melody loops a note sequence forever.
type melody struct {
	steps    []step
	beat     int // samples per beat
	rate     beep.SampleRate
	index    int
	position int // within the current step
	phase    float64
}

// NewMelody returns an endless streamer of the background tune at the given tempo.
func NewMelody(rate beep.SampleRate, beat time.Duration) beep.Streamer {
	return newMelody(korobeiniki, rate, beat)
}

func newMelody(steps []step, rate beep.SampleRate, beat time.Duration) *melody {
	return &melody{
		steps: steps,
		beat:  rate.N(beat),
		rate:  rate,
	}
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		st := m.steps[m.index]
		length := int(st.beats * float64(m.beat))

		val := 0.0
		if st.freq > 0 {
			val = sampleWave(WaveSquare, m.phase, nil) * m.gain(m.position, length)
			m.phase += st.freq / float64(m.rate)
			m.phase -= float64(int(m.phase))
		}
		samples[i][0] = val
		samples[i][1] = val

		m.position++
		if m.position >= length {
			m.position = 0
			m.phase = 0
			m.index = (m.index + 1) % len(m.steps)
		}
	}
	return len(samples), true
}

// gain separates consecutive notes with a short fade at each end.
func (m *melody) gain(pos, length int) float64 {
	edge := m.rate.N(8 * time.Millisecond)
	switch {
	case pos < edge:
		return float64(pos) / float64(edge)
	case length-pos < edge:
		return float64(length-pos) / float64(edge)
	}
	return 1
}

func (m *melody) Err() error { return nil }
