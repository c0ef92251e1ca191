package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the oscillator waveform
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sampleAt maps a phase in [0, 1) to an amplitude in [-1, 1]
func (w WaveType) sampleAt(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// tone is a mono waveform copied to both channels for a fixed sample count
type tone struct {
	wave      WaveType
	phase     float64
	step      float64 // Phase advance per sample
	remaining int
}

// NewOscillator streams freq Hz of wave for duration, then drains
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{
		wave:      wave,
		step:      freq / float64(rate),
		remaining: rate.N(duration),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	n := min(len(samples), t.remaining)
	if n == 0 {
		return 0, false
	}
	for i := range samples[:n] {
		v := t.wave.sampleAt(t.phase)
		samples[i] = [2]float64{v, v}
		_, t.phase = math.Modf(t.phase + t.step)
	}
	t.remaining -= n
	return n, true
}

func (t *tone) Err() error { return nil }

// shaper multiplies its source by a trapezoid gain curve:
// linear rise over attack, unity hold, linear fall to zero at total
type shaper struct {
	src     beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

// NewEnvelope bounds s to duration and applies the attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &shaper{
		src:     s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(duration),
	}
}

func (e *shaper) gainAt(pos int) float64 {
	left := e.total - pos
	switch {
	case e.release > 0 && left <= e.release:
		return max(float64(left)/float64(e.release), 0)
	case e.attack > 0 && pos < e.attack:
		return float64(pos) / float64(e.attack)
	default:
		return 1
	}
}

func (e *shaper) Stream(samples [][2]float64) (int, bool) {
	budget := e.total - e.pos
	if budget <= 0 {
		return 0, false
	}
	if len(samples) > budget {
		samples = samples[:budget]
	}

	n, ok := e.src.Stream(samples)
	for i := range samples[:n] {
		g := e.gainAt(e.pos + i)
		samples[i][0] *= g
		samples[i][1] *= g
	}
	e.pos += n
	return n, ok
}

func (e *shaper) Err() error { return e.src.Err() }

// withGain scales s by a linear factor
// effects.Volume works in log space, so a non-positive factor is mapped to Silent
func withGain(s beep.Streamer, factor float64) beep.Streamer {
	v := &effects.Volume{Streamer: s, Base: 2}
	if factor <= 0 {
		v.Silent = true
	} else {
		v.Volume = math.Log2(factor)
	}
	return v
}

// voice is one enveloped tone
func voice(freq float64, wave WaveType, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, duration, wave, rate), duration, attack, release, rate)
}

// effectGain is the per-effect level scaled by the master volume
func effectGain(cfg *Config, t SoundType) float64 {
	return cfg.EffectVolumes[t] * cfg.MasterVolume
}

// CreateTickSound is a 40ms 1.2kHz click played when a marker lands
func CreateTickSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	click := voice(1200, WaveSine, TickSoundDuration, TickSoundAttack, TickSoundRelease, rate)
	return withGain(click, effectGain(cfg, SoundTick))
}

// CreateBellSound rings A5 with a quieter octave that decays first
func CreateBellSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	partials := []struct {
		freq, level float64
		release     time.Duration
	}{
		{880, 0.7, BellSoundFundamentalRelease},
		{1760, 0.3, BellSoundOvertoneRelease},
	}

	layers := make([]beep.Streamer, 0, len(partials))
	for _, p := range partials {
		v := voice(p.freq, WaveSine, BellSoundDuration, BellSoundAttack, p.release, rate)
		layers = append(layers, withGain(v, p.level))
	}
	return withGain(beep.Mix(layers...), effectGain(cfg, SoundBell))
}

// CreateWhooshSound swells and fades white noise when a pipe dies
func CreateWhooshSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	noise := voice(0, WaveNoise, WhooshSoundDuration, WhooshSoundAttack, WhooshSoundRelease, rate)
	return withGain(noise, effectGain(cfg, SoundWhoosh))
}

var effectBuilders = [soundTypeCount]func(*Config) beep.Streamer{
	SoundTick:   CreateTickSound,
	SoundBell:   CreateBellSound,
	SoundWhoosh: CreateWhooshSound,
}

// GetSoundEffect builds a fresh streamer for soundType, or nil if it is out of range
func GetSoundEffect(soundType SoundType, cfg *Config) beep.Streamer {
	if soundType < 0 || soundType >= soundTypeCount {
		return nil
	}
	return effectBuilders[soundType](cfg)
}
