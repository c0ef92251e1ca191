package tween

import "time"

// DefaultMaxStep caps a single frame delta so a stalled terminal does not fast-forward the scene
const DefaultMaxStep = 100 * time.Millisecond

// TimeSource provides wall time readings
type TimeSource interface {
	Now() time.Time
}

// MonotonicTimeSource returns time.Now with its monotonic reading
type MonotonicTimeSource struct{}

func (MonotonicTimeSource) Now() time.Time {
	return time.Now()
}

// Clock provides pausable scene time and per-frame deltas
// Owned by the frame loop goroutine, not safe for concurrent use
type Clock struct {
	source TimeSource

	// MaxStep clamps deltas returned by Step, zero disables clamping
	MaxStep time.Duration

	lastStep        time.Time
	paused          bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration
	elapsed         time.Duration // Scene time handed out by Step
}

// NewClock creates a running clock over source, nil source uses the monotonic wall clock
func NewClock(source TimeSource) *Clock {
	if source == nil {
		source = MonotonicTimeSource{}
	}
	return &Clock{
		source:   source,
		MaxStep:  DefaultMaxStep,
		lastStep: source.Now(),
	}
}

// Step returns the scene time elapsed since the previous Step
// Returns 0 while paused; time spent paused is never handed out
func (c *Clock) Step() time.Duration {
	now := c.source.Now()
	if c.paused {
		return 0
	}

	dt := now.Sub(c.lastStep)
	c.lastStep = now
	if dt < 0 {
		dt = 0
	}
	if c.MaxStep > 0 && dt > c.MaxStep {
		dt = c.MaxStep
	}
	c.elapsed += dt
	return dt
}

// Pause stops scene time advancement
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pauseStartTime = c.source.Now()
}

// Resume continues scene time advancement from the moment it was paused
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	now := c.source.Now()
	c.totalPausedTime += now.Sub(c.pauseStartTime)
	c.pauseStartTime = time.Time{}
	c.paused = false
	c.lastStep = now
}

// Toggle flips pause state and reports the new state
func (c *Clock) Toggle() bool {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
	return c.paused
}

// IsPaused returns current pause state
func (c *Clock) IsPaused() bool {
	return c.paused
}

// Elapsed returns total scene time handed out by Step
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// TotalPauseDuration returns cumulative pause time, including a pause in progress
func (c *Clock) TotalPauseDuration() time.Duration {
	total := c.totalPausedTime
	if c.paused {
		total += c.source.Now().Sub(c.pauseStartTime)
	}
	return total
}
