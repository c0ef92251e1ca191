package tween

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTo_LinearInterpolation(t *testing.T) {
	s := NewScheduler()
	v := 10.0

	tw := s.To(&v, Options{To: 20, Duration: time.Second})

	s.Advance(250 * time.Millisecond)
	if !approx(v, 12.5) {
		t.Errorf("Expected 12.5 at 25%%, got %f", v)
	}

	s.Advance(250 * time.Millisecond)
	if !approx(v, 15) {
		t.Errorf("Expected 15 at 50%%, got %f", v)
	}
	if !approx(tw.Progress(), 0.5) {
		t.Errorf("Expected progress 0.5, got %f", tw.Progress())
	}
	if tw.Done() {
		t.Error("Tween should still be running")
	}
}

func TestTo_CompletionSetsExactTargetAndFiresOnce(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	fired := 0

	tw := s.To(&v, Options{To: 7, Duration: 100 * time.Millisecond, OnComplete: func() { fired++ }})

	s.Advance(300 * time.Millisecond)
	s.Advance(300 * time.Millisecond)

	if v != 7 {
		t.Errorf("Expected exact target 7, got %f", v)
	}
	if fired != 1 {
		t.Errorf("Expected OnComplete once, got %d", fired)
	}
	if !tw.Done() || tw.Killed() {
		t.Error("Expected completed, not killed, tween")
	}
	if s.Len() != 0 {
		t.Errorf("Expected no running tweens, got %d", s.Len())
	}
}

func TestKill_PreventsCompletion(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	fired := false

	tw := s.To(&v, Options{To: 1, Duration: time.Second, OnComplete: func() { fired = true }})
	s.Advance(500 * time.Millisecond)
	tw.Kill()
	tw.Kill() // idempotent
	s.Advance(2 * time.Second)

	if fired {
		t.Error("Killed tween must not fire OnComplete")
	}
	if !approx(v, 0.5) {
		t.Errorf("Killed tween should leave field where it stopped, got %f", v)
	}
	if !tw.Killed() {
		t.Error("Expected Killed() true")
	}
}

func TestKill_AfterCompletionIsNoop(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	tw := s.To(&v, Options{To: 1, Duration: time.Millisecond})
	s.Advance(time.Second)

	tw.Kill()
	if tw.Killed() {
		t.Error("Kill on a completed tween should not mark it killed")
	}

	var nilTween *Tween
	nilTween.Kill()
	if !nilTween.Done() {
		t.Error("Nil tween should report done")
	}
}

func TestRepeatForever_Wraps(t *testing.T) {
	s := NewScheduler()
	angle := 0.0
	fired := false

	s.To(&angle, Options{To: 2 * math.Pi, Duration: 30 * time.Second, Repeat: RepeatForever, OnComplete: func() { fired = true }})

	s.Advance(45 * time.Second)
	if !approx(angle, math.Pi) {
		t.Errorf("Expected half turn after 1.5 periods, got %f", angle)
	}
	for i := 0; i < 10; i++ {
		s.Advance(30 * time.Second)
	}
	if fired {
		t.Error("Perpetual tween must never complete")
	}
	if s.Len() != 1 {
		t.Errorf("Expected rotation tween to stay alive, got %d", s.Len())
	}
}

func TestRepeatCount(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	fired := 0

	s.To(&v, Options{To: 1, Duration: time.Second, Repeat: 2, OnComplete: func() { fired++ }})

	s.Advance(2500 * time.Millisecond)
	if fired != 0 {
		t.Fatal("Completed before final run")
	}
	s.Advance(time.Second)
	if fired != 1 || v != 1 {
		t.Errorf("Expected completion at target after 3 runs, fired=%d v=%f", fired, v)
	}
}

func TestCompletionChain_SuccessorStartsNextAdvance(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	var steps []float64

	var next func()
	next = func() {
		steps = append(steps, v)
		if len(steps) < 3 {
			s.To(&v, Options{To: v + 1, Duration: 0, OnComplete: next})
		}
	}
	s.To(&v, Options{To: 1, Duration: 0, OnComplete: next})

	s.Advance(0)
	if len(steps) != 1 {
		t.Fatalf("Successor tween must not complete in the same Advance, got %d completions", len(steps))
	}
	s.Advance(0)
	s.Advance(0)
	if len(steps) != 3 || steps[2] != 3 {
		t.Errorf("Expected 3 sequential completions ending at 3, got %v", steps)
	}
}

func TestTickers_RunAfterTweensInOrder(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	var order []string

	s.To(&v, Options{To: 1, Duration: time.Millisecond, OnComplete: func() { order = append(order, "tween") }})
	s.AddTicker(func() { order = append(order, "a") })
	s.AddTicker(func() { order = append(order, "b") })

	s.Advance(time.Second)

	want := []string{"tween", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, order)
			break
		}
	}
}

func TestRemoveTicker(t *testing.T) {
	s := NewScheduler()
	calls := 0
	id := s.AddTicker(func() { calls++ })

	s.Advance(0)
	s.RemoveTicker(id)
	s.RemoveTicker(id)
	s.Advance(0)

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
	if s.Tickers() != 0 {
		t.Errorf("Expected no tickers, got %d", s.Tickers())
	}
}

func TestTickerCreatesTween(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	started := false
	s.AddTicker(func() {
		if !started {
			started = true
			s.To(&v, Options{To: 10, Duration: time.Second})
		}
	})

	s.Advance(0)
	if s.Len() != 1 {
		t.Fatalf("Expected tween created by ticker to be running, got %d", s.Len())
	}
	s.Advance(500 * time.Millisecond)
	if !approx(v, 5) {
		t.Errorf("Expected 5, got %f", v)
	}
}

func TestKillAll(t *testing.T) {
	s := NewScheduler()
	a, b := 0.0, 0.0
	s.To(&a, Options{To: 1, Duration: time.Second})
	s.To(&b, Options{To: 1, Duration: time.Second, Repeat: RepeatForever})

	s.KillAll()
	if s.Len() != 0 {
		t.Errorf("Expected 0 running tweens, got %d", s.Len())
	}
	if s.Frames() != 0 {
		t.Errorf("Expected 0 frames, got %d", s.Frames())
	}
}

func TestEasing(t *testing.T) {
	if Linear(0.3) != 0.3 {
		t.Error("Linear must be identity")
	}
	if InOutQuad(0) != 0 || InOutQuad(1) != 1 || !approx(InOutQuad(0.5), 0.5) {
		t.Error("InOutQuad endpoints wrong")
	}
	if InOutQuad(0.25) >= 0.25 {
		t.Error("InOutQuad should start slow")
	}
}
