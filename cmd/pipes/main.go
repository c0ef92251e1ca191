package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-pipes/audio"
	"github.com/lixenwraith/vi-pipes/config"
	"github.com/lixenwraith/vi-pipes/core"
	"github.com/lixenwraith/vi-pipes/pipe"
	"github.com/lixenwraith/vi-pipes/tween"
)

var (
	configFlag   = flag.String("config", "", "TOML configuration file")
	seedFlag     = flag.Uint64("seed", 0, "Random seed, 0 picks one from the clock")
	fpsFlag      = flag.Int("fps", 0, "Frames per second, 0 keeps the configured value")
	headlessFlag = flag.Bool("headless", false, "Run without a terminal and print stats")
	framesFlag   = flag.Int("frames", 1800, "Frames to simulate in headless mode")
	sizeFlag     = flag.String("size", "120x40", "Simulated screen size in headless mode, WxH")
	muteFlag     = flag.Bool("mute", false, "Disable audio")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/pipes.log")
)

// options carries parsed command line flags into run
type options struct {
	configPath string
	seed       uint64
	fps        int
	headless   bool
	frames     int
	size       string
	mute       bool
	debug      bool
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	opts := options{
		configPath: *configFlag,
		seed:       *seedFlag,
		fps:        *fpsFlag,
		headless:   *headlessFlag,
		frames:     *framesFlag,
		size:       *sizeFlag,
		mute:       *muteFlag,
		debug:      *debugFlag,
	}
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run owns the log file for the whole program so it is closed before main exits
func run(opts options, out io.Writer) error {
	if f := setupLogging(opts.debug); f != nil {
		defer f.Close()
	}

	cfg, err := loadConfig(opts.configPath, opts.fps, opts.mute || opts.headless)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("seed %d", seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	if opts.headless {
		w, h, err := parseSize(opts.size)
		if err != nil {
			return err
		}
		return runHeadless(out, cfg, rng, opts.frames, w, h)
	}
	return runInteractive(cfg, rng)
}

// loadConfig reads the optional file and applies flag overrides
func loadConfig(path string, fps int, mute bool) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	if fps > 0 {
		cfg.Scene.FPS = fps
	}
	if mute {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive", s)
	}
	return w, h, nil
}

// runHeadless drives a fixed number of frames at a fixed step on a simulation screen
func runHeadless(out io.Writer, cfg config.Config, rng pipe.Source, frames, width, height int) error {
	if frames < 0 {
		return errors.New("frames must not be negative")
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init simulation screen: %w", err)
	}
	defer screen.Fini()
	screen.SetSize(width, height)

	a, err := newApp(screen, cfg, rng, nil)
	if err != nil {
		return err
	}
	defer a.close()

	dt := time.Second / time.Duration(cfg.Scene.FPS)
	for i := 0; i < frames; i++ {
		a.step(dt)
	}

	st := a.sess.Stats()
	fmt.Fprintf(out, "frames=%d spawned=%d deaths=%d ornaments=%d landmarks=%d shapes=%d\n",
		st.Frames, st.Spawned, st.Deaths, st.Ornaments, st.Landmarks, a.graph.Len())
	return nil
}

func runInteractive(cfg config.Config, rng pipe.Source) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	var obs pipe.Observer
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio)
		if err := player.Initialize(); err != nil {
			log.Printf("audio unavailable: %v", err)
		} else {
			defer player.Cleanup()
			obs = player
		}
	}

	a, err := newApp(screen, cfg, rng, obs)
	if err != nil {
		return err
	}
	defer a.close()

	clock := tween.NewClock(tween.MonotonicTimeSource{})
	input := newInputHandler(a, clock, screen.Sync)

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			events <- ev
		}
	})

	frameTicker := time.NewTicker(time.Second / time.Duration(cfg.Scene.FPS))
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-events:
			if !input.HandleEvent(ev) {
				log.Printf("exit requested, stats %+v", a.sess.Stats())
				return nil
			}
		case <-frameTicker.C:
			a.step(clock.Step())
		}
	}
}
