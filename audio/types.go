package audio

import (
	"errors"
	"fmt"
	"time"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundTick   SoundType = iota // Marker placed
	SoundBell                    // Landmark placed
	SoundWhoosh                  // Pipe died
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundTick:
		return "tick"
	case SoundBell:
		return "bell"
	case SoundWhoosh:
		return "whoosh"
	default:
		return "unknown"
	}
}

// Sound timing
const (
	TickSoundDuration = 40 * time.Millisecond
	TickSoundAttack   = 2 * time.Millisecond
	TickSoundRelease  = 30 * time.Millisecond

	BellSoundDuration           = 600 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 550 * time.Millisecond
	BellSoundOvertoneRelease    = 200 * time.Millisecond

	WhooshSoundDuration = 300 * time.Millisecond
	WhooshSoundAttack   = 150 * time.Millisecond
	WhooshSoundRelease  = 150 * time.Millisecond
)

const (
	DefaultSampleRate   = 48000
	DefaultMasterVolume = 0.5
	DefaultMinSoundGap  = 30 * time.Millisecond
)

// ErrInvalidConfig is wrapped by every Config.Validate failure
var ErrInvalidConfig = errors.New("invalid audio config")

// Config controls sound output
type Config struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"volume"`
	SampleRate   int     `toml:"sample_rate"`

	// Per-effect gain, multiplied by MasterVolume
	EffectVolumes [soundTypeCount]float64 `toml:"-"`

	// Repeats of the same effect closer than this are dropped
	MinSoundGap time.Duration `toml:"-"`
}

// DefaultConfig returns audio enabled at half volume
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		MasterVolume:  DefaultMasterVolume,
		SampleRate:    DefaultSampleRate,
		EffectVolumes: [soundTypeCount]float64{0.2, 0.8, 0.4},
		MinSoundGap:   DefaultMinSoundGap,
	}
}

// Validate rejects volumes outside [0,1] and non-positive sample rates
func (c Config) Validate() error {
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("%w: volume %v outside [0,1]", ErrInvalidConfig, c.MasterVolume)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, c.SampleRate)
	}
	return nil
}
