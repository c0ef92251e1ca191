package pipe

import (
	"errors"
	"fmt"
)

// Growth defaults
const (
	DefaultLifespan       = 2000.0
	DefaultSpeed          = 0.00999 // Seconds per scene unit
	DefaultHalfExtent     = 200.0
	DefaultStroke         = 5.0
	DefaultLandmarkChance = 0.01
)

// ErrInvalidConfig is wrapped by every Config.Validate failure
var ErrInvalidConfig = errors.New("invalid pipe config")

// Config holds the constants of pipe growth
type Config struct {
	Lifespan       float64 `toml:"lifespan"`        // Cumulative length beyond which the pipe dies
	Speed          float64 `toml:"speed"`           // Seconds per unit of distance
	HalfExtent     float64 `toml:"half_extent"`     // Targets are sampled in [-HalfExtent, HalfExtent)
	Stroke         float64 `toml:"stroke"`          // Polyline width, markers are twice this
	LandmarkChance float64 `toml:"landmark_chance"` // Probability an ornament is a landmark instead of a marker
}

// DefaultConfig returns the stock growth constants
func DefaultConfig() Config {
	return Config{
		Lifespan:       DefaultLifespan,
		Speed:          DefaultSpeed,
		HalfExtent:     DefaultHalfExtent,
		Stroke:         DefaultStroke,
		LandmarkChance: DefaultLandmarkChance,
	}
}

// Validate rejects values that would stall or mis-scale growth
func (c Config) Validate() error {
	switch {
	case c.Lifespan < 0:
		return fmt.Errorf("%w: lifespan %v is negative", ErrInvalidConfig, c.Lifespan)
	case c.Speed < 0:
		return fmt.Errorf("%w: speed %v is negative", ErrInvalidConfig, c.Speed)
	case c.HalfExtent <= 0:
		return fmt.Errorf("%w: half extent %v must be positive", ErrInvalidConfig, c.HalfExtent)
	case c.Stroke <= 0:
		return fmt.Errorf("%w: stroke %v must be positive", ErrInvalidConfig, c.Stroke)
	case c.LandmarkChance < 0 || c.LandmarkChance > 1:
		return fmt.Errorf("%w: landmark chance %v outside [0,1]", ErrInvalidConfig, c.LandmarkChance)
	}
	return nil
}
