package tetris

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Scheduler drives a Session in real time. It wakes every poll interval,
// samples the InputSource, advances intro, gravity and blink timers, and
// hands a snapshot to the RenderSink.
//
// Gravity is suspended while rows are being cleared, so the board is never
// merged while a clear is pending.
type Scheduler struct {
	session   *Session
	input     InputSource
	output    RenderSink
	showIntro bool

	intro   time.Duration
	gravity time.Duration
	blink   time.Duration
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithIntro makes Run start the session with its intro sequence.
func WithIntro(show bool) SchedulerOption {
	return func(sc *Scheduler) {
		sc.showIntro = show
	}
}

// NewScheduler creates a scheduler for s. Nil collaborators are replaced by no-ops.
func NewScheduler(s *Session, in InputSource, out RenderSink, opts ...SchedulerOption) *Scheduler {
	if out == nil {
		out = nopRender{}
	}
	sc := &Scheduler{
		session: s,
		input:   in,
		output:  out,
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Run starts the session and drives it until it ends or ctx is cancelled.
// On cancellation the session is stopped, completing any line clear in
// progress, and ctx.Err() is returned with the final result.
func (sc *Scheduler) Run(ctx context.Context) (Result, error) {
	s := sc.session
	s.Start(sc.showIntro)
	sc.resetTimers()
	sc.output.Render(s.Snapshot())

	ticker := time.NewTicker(s.cfg.Timing.PollInterval)
	defer ticker.Stop()

	last := time.Now()
	for s.Running() {
		select {
		case <-ctx.Done():
			s.Stop()
			sc.output.Render(s.Snapshot())
			return s.Result(), ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			sc.Step(sc.poll(), elapsed)
			sc.output.Render(s.Snapshot())
		}
	}
	return s.Result(), nil
}

func (sc *Scheduler) poll() core.InputFrame {
	if sc.input == nil {
		return core.NewInputFrame()
	}
	return sc.input.Poll()
}

// Step advances the session by elapsed time with the given input.
// It is the deterministic core of Run and reports whether the session is
// still running afterwards.
func (sc *Scheduler) Step(in core.InputFrame, elapsed time.Duration) bool {
	s := sc.session
	before, pieces := s.State(), s.pieces

	s.HandleInput(in)

	switch s.State() {
	case StateIntro:
		sc.intro += elapsed
		if sc.intro >= s.cfg.Timing.IntroDuration {
			s.FinishIntro()
		}

	case StateFalling:
		if before != StateFalling || pieces != s.pieces || s.Paused() {
			break
		}
		// the remainder carries over; short intervals tick several times per wake-up
		sc.gravity += elapsed
		for iv := s.GravityInterval(); sc.gravity >= iv && s.State() == StateFalling && s.pieces == pieces; {
			sc.gravity -= iv
			s.Tick()
		}

	case StateLineClearing:
		if before != StateLineClearing {
			break
		}
		sc.blink += elapsed
		for sc.blink >= s.cfg.Timing.BlinkInterval && s.State() == StateLineClearing {
			sc.blink -= s.cfg.Timing.BlinkInterval
			s.Blink()
		}
	}

	if s.State() != before || s.pieces != pieces {
		sc.resetTimers()
	}
	return s.Running()
}

func (sc *Scheduler) resetTimers() {
	sc.intro = 0
	sc.gravity = 0
	sc.blink = 0
}
