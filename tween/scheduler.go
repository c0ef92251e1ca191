// Package tween animates float64 fields toward targets over scene time.
//
// The Scheduler is single-threaded: tweens step, completion callbacks fire and tick
// hooks run only inside Advance, on the caller's goroutine. Callbacks may create or
// kill tweens and add or remove tick hooks while Advance is running.
package tween

import (
	"time"
)

// Ease maps linear progress t in [0,1] to eased progress
type Ease func(t float64) float64

// Linear is constant-rate easing
func Linear(t float64) float64 { return t }

// InOutQuad accelerates then decelerates
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// RepeatForever makes a tween loop until killed
const RepeatForever = -1

// Options configures a tween created by Scheduler.To
type Options struct {
	To       float64
	Duration time.Duration
	Ease     Ease // nil means Linear

	// Repeat restarts the tween from its start value after each run
	// 0 runs once, n > 0 runs n extra times, RepeatForever never completes
	Repeat int

	// OnComplete fires once after the final run, never for a killed tween
	OnComplete func()
}

type tweenState uint8

const (
	stateRunning tweenState = iota
	stateDone
	stateKilled
)

// Tween is a handle to one running interpolation
type Tween struct {
	field    *float64
	from, to float64
	duration time.Duration
	elapsed  time.Duration
	ease     Ease
	repeat   int
	onDone   func()
	state    tweenState
}

// Kill stops the tween where it is without firing OnComplete
// Safe on completed or already killed tweens
func (t *Tween) Kill() {
	if t == nil || t.state != stateRunning {
		return
	}
	t.state = stateKilled
	t.onDone = nil
}

// Done reports whether the tween has completed or been killed
func (t *Tween) Done() bool {
	return t == nil || t.state != stateRunning
}

// Killed reports whether the tween was stopped by Kill
func (t *Tween) Killed() bool {
	return t != nil && t.state == stateKilled
}

// Progress returns linear progress of the current run in [0,1]
func (t *Tween) Progress() float64 {
	if t == nil {
		return 0
	}
	if t.state == stateDone || t.duration <= 0 {
		return 1
	}
	p := float64(t.elapsed) / float64(t.duration)
	if p > 1 {
		p = 1
	}
	return p
}

// Duration returns the configured run duration
func (t *Tween) Duration() time.Duration {
	return t.duration
}

// step advances the tween by dt and reports whether it finished its final run
func (t *Tween) step(dt time.Duration) bool {
	t.elapsed += dt
	for t.elapsed >= t.duration {
		if t.repeat == 0 {
			*t.field = t.to
			t.state = stateDone
			return true
		}
		if t.repeat > 0 {
			t.repeat--
		}
		if t.duration <= 0 {
			// Zero-length loop would spin; park at the start value
			t.elapsed = 0
			*t.field = t.from
			return false
		}
		t.elapsed -= t.duration
	}
	p := float64(t.elapsed) / float64(t.duration)
	*t.field = t.from + (t.to-t.from)*t.ease(p)
	return false
}

// TickerID identifies a registered tick hook
type TickerID uint64

type ticker struct {
	id TickerID
	fn func()
}

// Scheduler owns running tweens and per-frame tick hooks
type Scheduler struct {
	tweens  []*Tween
	added   []*Tween // Created during Advance, merged after stepping
	tickers []ticker

	nextTicker TickerID
	advancing  bool
	frames     uint64
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		tweens: make([]*Tween, 0, 8),
	}
}

// To starts animating field from its current value toward opts.To
func (s *Scheduler) To(field *float64, opts Options) *Tween {
	ease := opts.Ease
	if ease == nil {
		ease = Linear
	}
	duration := opts.Duration
	if duration < 0 {
		duration = 0
	}
	t := &Tween{
		field:    field,
		from:     *field,
		to:       opts.To,
		duration: duration,
		ease:     ease,
		repeat:   opts.Repeat,
		onDone:   opts.OnComplete,
	}
	if s.advancing {
		s.added = append(s.added, t)
	} else {
		s.tweens = append(s.tweens, t)
	}
	return t
}

// AddTicker registers fn to run once per Advance, after tweens have stepped
func (s *Scheduler) AddTicker(fn func()) TickerID {
	s.nextTicker++
	s.tickers = append(s.tickers, ticker{id: s.nextTicker, fn: fn})
	return s.nextTicker
}

// RemoveTicker unregisters a tick hook, unknown ids are ignored
func (s *Scheduler) RemoveTicker(id TickerID) {
	for i, tk := range s.tickers {
		if tk.id == id {
			s.tickers = append(s.tickers[:i:i], s.tickers[i+1:]...)
			return
		}
	}
}

// Advance steps all running tweens by dt, fires completions, then runs tick hooks
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.frames++

	s.advancing = true
	for _, t := range s.tweens {
		if t.state != stateRunning {
			continue
		}
		if t.step(dt) {
			if fn := t.onDone; fn != nil {
				t.onDone = nil
				fn()
			}
		}
	}
	s.advancing = false

	s.sweep()

	// Snapshot so hooks may register or remove hooks
	hooks := append([]ticker(nil), s.tickers...)
	for _, tk := range hooks {
		tk.fn()
	}
	s.sweep()
}

// sweep drops finished tweens and merges tweens created during Advance
func (s *Scheduler) sweep() {
	live := s.tweens[:0]
	for _, t := range s.tweens {
		if t.state == stateRunning {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live

	for _, t := range s.added {
		if t.state == stateRunning {
			s.tweens = append(s.tweens, t)
		}
	}
	s.added = s.added[:0]
}

// KillAll kills every running tween
func (s *Scheduler) KillAll() {
	for _, t := range s.tweens {
		t.Kill()
	}
	for _, t := range s.added {
		t.Kill()
	}
	if !s.advancing {
		s.sweep()
	}
}

// Len returns the number of running tweens
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tweens {
		if t.state == stateRunning {
			n++
		}
	}
	for _, t := range s.added {
		if t.state == stateRunning {
			n++
		}
	}
	return n
}

// Tickers returns the number of registered tick hooks
func (s *Scheduler) Tickers() int {
	return len(s.tickers)
}

// Frames returns the number of Advance calls
func (s *Scheduler) Frames() uint64 {
	return s.frames
}
