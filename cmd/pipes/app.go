package main

import (
	"fmt"
	"time"

	"github.com/lixenwraith/vi-pipes/config"
	"github.com/lixenwraith/vi-pipes/pipe"
	"github.com/lixenwraith/vi-pipes/render"
	"github.com/lixenwraith/vi-pipes/scene"
	"github.com/lixenwraith/vi-pipes/session"
	"github.com/lixenwraith/vi-pipes/tween"
)

// app wires the scene graph, tween scheduler and session onto one canvas
type app struct {
	graph *scene.Graph
	sched *tween.Scheduler
	sess  *session.Session
	spin  *tween.Tween
	tick  tween.TickerID
}

func newApp(canvas render.Canvas, cfg config.Config, rng pipe.Source, obs pipe.Observer) (*app, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	graph := scene.NewGraph(canvas, cfg.Pipe.HalfExtent, cfg.Background())
	graph.Camera.Pitch = cfg.Scene.Pitch * scene.Tau
	graph.Camera.Zoom = cfg.Scene.Zoom

	sched := tween.NewScheduler()
	sess, err := session.New(
		session.Config{Pipe: cfg.Pipe, Palette: palette},
		session.Deps{Renderer: graph, Animator: sched, Rand: rng, Observer: obs},
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	a := &app{graph: graph, sched: sched, sess: sess}
	if cfg.Scene.RotationSeconds > 0 {
		a.spin = sched.To(&graph.Camera.Spin, tween.Options{
			To:       scene.Tau,
			Duration: time.Duration(cfg.Scene.RotationSeconds * float64(time.Second)),
			Ease:     tween.Linear,
			Repeat:   tween.RepeatForever,
		})
	}
	a.tick = sched.AddTicker(sess.Tick)
	return a, nil
}

// step advances animation by dt; the session tick hook renders the frame
func (a *app) step(dt time.Duration) {
	a.sched.Advance(dt)
}

// close detaches the session tick and stops every tween
func (a *app) close() {
	a.sched.RemoveTicker(a.tick)
	a.sched.KillAll()
}
