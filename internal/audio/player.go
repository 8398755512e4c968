// Package audio synthesizes the game's sound events and background music
// with beep. A Player is a beep.Streamer: hand it to the device package to
// hear it, or stream it directly in tests.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// DefaultSampleRate is used when Options.SampleRate is zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Options configures a Player.
type Options struct {
	SampleRate beep.SampleRate
	Volume     float64 // master volume, 0 to 1
	Fx         bool    // sound effects on
	Music      bool    // background music on
	Beat       time.Duration
	Logger     *log.Logger
}

// DefaultOptions enables effects and music at a moderate volume.
func DefaultOptions() Options {
	return Options{
		SampleRate: DefaultSampleRate,
		Volume:     0.6,
		Fx:         true,
		Music:      true,
		Beat:       150 * time.Millisecond,
	}
}

// Player mixes sound effects over an optional music loop.
// Play is safe to call from any goroutine and never blocks on audio output.
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	music  *beep.Ctrl
	fx     bool
	logger *log.Logger
}

// NewPlayer creates a player. Nothing is audible until the player is streamed.
func NewPlayer(opts Options) *Player {
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Beat <= 0 {
		opts.Beat = DefaultOptions().Beat
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	p := &Player{
		rate:   opts.SampleRate,
		volume: opts.Volume,
		mixer:  &beep.Mixer{},
		fx:     opts.Fx,
		logger: opts.Logger,
	}
	p.music = &beep.Ctrl{
		Streamer: newVolume(NewMelody(p.rate, opts.Beat), 0.08*opts.Volume),
		Paused:   !opts.Music,
	}
	p.mixer.Add(p.music)
	return p
}

// SampleRate returns the rate the player streams at.
func (p *Player) SampleRate() beep.SampleRate { return p.rate }

// Play queues the sound effect. It is dropped while effects are off.
func (p *Player) Play(s tetris.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.fx {
		return
	}
	st := Streamer(s, p.rate, p.volume)
	if st == nil {
		p.logger.Warn("unknown sound", "sound", s)
		return
	}
	p.mixer.Add(st)
}

// ToggleFx switches sound effects and reports the new state.
func (p *Player) ToggleFx() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fx = !p.fx
	p.logger.Debug("sound effects toggled", "on", p.fx)
	return p.fx
}

// ToggleMusic pauses or resumes the music loop and reports the new state.
func (p *Player) ToggleMusic() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.music.Paused = !p.music.Paused
	p.logger.Debug("music toggled", "on", !p.music.Paused)
	return !p.music.Paused
}

// FxOn reports whether sound effects are enabled.
func (p *Player) FxOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fx
}

// MusicOn reports whether the music loop is playing.
func (p *Player) MusicOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.music.Paused
}

// Active returns the number of streamers in the mix, the music loop included.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

// Stream mixes all active sounds into samples. It never drains.
func (p *Player) Stream(samples [][2]float64) (n int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, _ = p.mixer.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

// Err always returns nil.
func (p *Player) Err() error { return nil }

// Stop silences every effect and pauses the music.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.music.Paused = true
	p.mixer.Clear()
	p.mixer.Add(p.music)
}
