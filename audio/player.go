package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/vi-pipes/pipe"
	"github.com/lixenwraith/vi-pipes/scene"
)

// Output is where finished effect streamers are sent
type Output interface {
	Init(rate beep.SampleRate) error
	Play(s beep.Streamer)
	Close()
}

// speakerOutput mixes effects into the system speaker
type speakerOutput struct {
	mixer *beep.Mixer
}

// NewSpeakerOutput returns an Output backed by the beep speaker
func NewSpeakerOutput() Output {
	return &speakerOutput{mixer: &beep.Mixer{}}
}

func (o *speakerOutput) Init(rate beep.SampleRate) error {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(o.mixer)
	return nil
}

// Mixer is streamed from the speaker goroutine
func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

func (o *speakerOutput) Close() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
}

// Player turns pipe events into sound effects
// Safe to use without Initialize; every call is then a no-op
type Player struct {
	mu          sync.Mutex
	cfg         Config
	out         Output
	initialized bool

	now        func() time.Time
	lastPlayed [soundTypeCount]time.Time
	played     [soundTypeCount]uint64
}

// NewPlayer creates a player on the system speaker
func NewPlayer(cfg Config) *Player {
	return NewPlayerWithOutput(cfg, NewSpeakerOutput())
}

// NewPlayerWithOutput creates a player writing to out
func NewPlayerWithOutput(cfg Config, out Output) *Player {
	return &Player{cfg: cfg, out: out, now: time.Now}
}

// Initialize opens the output, disabled configs stay silent without error
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	if err := p.out.Init(beep.SampleRate(p.cfg.SampleRate)); err != nil {
		return fmt.Errorf("audio: init output: %w", err)
	}
	p.initialized = true
	return nil
}

// Cleanup stops all sounds
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.out.Close()
	p.initialized = false
}

// Initialized reports whether sounds will be produced
func (p *Player) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues an effect, dropping repeats closer than MinSoundGap
func (p *Player) Play(t SoundType) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || t < 0 || t >= soundTypeCount {
		return false
	}
	now := p.now()
	if last := p.lastPlayed[t]; !last.IsZero() && now.Sub(last) < p.cfg.MinSoundGap {
		return false
	}

	s := GetSoundEffect(t, &p.cfg)
	if s == nil {
		return false
	}
	p.out.Play(s)
	p.lastPlayed[t] = now
	p.played[t]++
	return true
}

// Played returns how many times t was sent to the output
func (p *Player) Played(t SoundType) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t < 0 || t >= soundTypeCount {
		return 0
	}
	return p.played[t]
}

// OrnamentPlaced implements pipe.Observer
func (p *Player) OrnamentPlaced(_ *pipe.Pipe, o pipe.Ornament) {
	if o.Kind == scene.KindLandmark {
		p.Play(SoundBell)
		return
	}
	p.Play(SoundTick)
}

// PipeDied implements pipe.Observer
func (p *Player) PipeDied(_ *pipe.Pipe) {
	p.Play(SoundWhoosh)
}
