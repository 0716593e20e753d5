package timeline

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRunnerPlainTickSweepsForward(t *testing.T) {
	r := NewRunner(time.Second)

	tick := r.Tick(300*time.Millisecond, 1)

	if len(tick.Sweeps) != 1 {
		t.Fatalf("sweeps = %d, want 1", len(tick.Sweeps))
	}
	sw := tick.Sweeps[0]
	if sw.From != 0 || sw.To != 300*time.Millisecond || sw.Direction != Forward {
		t.Errorf("sweep = %+v, want [0, 300ms] forward", sw)
	}
	if tick.Elapsed.Previous != 0 || tick.Elapsed.Now != 300*time.Millisecond {
		t.Errorf("elapsed = %+v", tick.Elapsed)
	}
	if tick.Completed {
		t.Error("should not complete mid-period")
	}
}

func TestRunnerOnceClampsAndCompletesExactlyOnce(t *testing.T) {
	r := NewRunner(time.Second)

	completions := 0
	for i := 0; i < 5; i++ {
		tick := r.Tick(600*time.Millisecond, 1)
		if tick.Completed {
			completions++
		}
		if now := r.Elapsed().Now; now < 0 || now > time.Second {
			t.Fatalf("clock escaped bounds: %v", now)
		}
	}

	if completions != 1 {
		t.Errorf("completed signal fired %d times, want exactly 1", completions)
	}
	if r.Elapsed().Now != time.Second {
		t.Errorf("now = %v, want clamped at duration", r.Elapsed().Now)
	}
	if !r.Completed() {
		t.Error("runner should be latched completed")
	}
}

func TestRunnerTimeScale(t *testing.T) {
	r := NewRunner(time.Second)

	r.Tick(time.Second, 0.25)
	if r.Elapsed().Now != 250*time.Millisecond {
		t.Errorf("now = %v, want 250ms", r.Elapsed().Now)
	}

	// Negative scales clamp to zero.
	tick := r.Tick(time.Second, -1)
	if r.Elapsed().Now != 250*time.Millisecond {
		t.Errorf("negative scale moved the clock to %v", r.Elapsed().Now)
	}
	if len(tick.Sweeps) != 1 || tick.Sweeps[0].From != tick.Sweeps[0].To {
		t.Error("zero-motion tick should publish a single stationary sweep")
	}
}

func TestRunnerPausedTicksMoveNothing(t *testing.T) {
	r := NewRunner(time.Second)
	r.Tick(200*time.Millisecond, 1)
	r.SetPaused(true)

	tick := r.Tick(500*time.Millisecond, 1)

	if tick.Sweeps != nil {
		t.Error("paused tick should publish no sweeps")
	}
	if r.Elapsed().Now != 200*time.Millisecond {
		t.Errorf("paused tick moved the clock to %v", r.Elapsed().Now)
	}
}

func TestRunnerCountRestartCompletesAfterExactlyNPeriods(t *testing.T) {
	const n = 3
	r := NewRunner(time.Second)
	r.SetRepeat(Times(n, Restart))

	for i := 0; i < n-1; i++ {
		tick := r.Tick(time.Second, 1)
		if tick.Completed {
			t.Fatalf("completed after %d full periods, want %d", i+1, n)
		}
	}
	tick := r.Tick(time.Second, 1)
	if !tick.Completed {
		t.Fatal("should complete after exactly n full periods")
	}
	if r.Elapsed().Now != time.Second {
		t.Errorf("now = %v, want clamped at duration", r.Elapsed().Now)
	}
}

func TestRunnerRestartWrapsIntoRange(t *testing.T) {
	r := NewRunner(time.Second)
	r.SetRepeat(Forever(Restart))

	tick := r.Tick(1300*time.Millisecond, 1)

	if r.Elapsed().Now != 300*time.Millisecond {
		t.Errorf("now = %v, want 300ms after wrap", r.Elapsed().Now)
	}
	if len(tick.Sweeps) != 2 {
		t.Fatalf("sweeps = %d, want 2 (to boundary, then wrapped)", len(tick.Sweeps))
	}
	if tick.Sweeps[0].To != time.Second || tick.Sweeps[1].From != 0 {
		t.Errorf("sweeps = %+v", tick.Sweeps)
	}
}

func TestRunnerLargeDeltaMultiCrossing(t *testing.T) {
	r := NewRunner(time.Second)
	r.SetRepeat(Times(3, Restart))

	tick := r.Tick(2500*time.Millisecond, 1)

	if tick.Completed {
		t.Fatal("two crossings out of three passes should not complete")
	}
	if got := r.Repeat().Remaining(); got != 1 {
		t.Errorf("remaining = %d, want 1 (counter drained by 2 in one tick)", got)
	}
	if r.Elapsed().Now != 500*time.Millisecond {
		t.Errorf("now = %v, want 500ms", r.Elapsed().Now)
	}
	if len(tick.Sweeps) != 3 {
		t.Errorf("sweeps = %d, want 3", len(tick.Sweeps))
	}
}

func TestRunnerLargeDeltaExhaustsMidTick(t *testing.T) {
	r := NewRunner(time.Second)
	r.SetRepeat(Times(2, Restart))

	tick := r.Tick(2500*time.Millisecond, 1)

	if !tick.Completed {
		t.Fatal("crossing the final boundary mid-tick should complete")
	}
	if r.Elapsed().Now != time.Second {
		t.Errorf("now = %v, want clamped at duration", r.Elapsed().Now)
	}
}

func TestRunnerPingPongFlipsOncePerCrossing(t *testing.T) {
	r := NewRunner(time.Second)
	r.SetRepeat(Forever(PingPong))

	flips := 0
	dir := r.Direction()
	for i := 0; i < 40; i++ {
		r.Tick(300*time.Millisecond, 1)
		if r.Direction() != dir {
			flips++
			dir = r.Direction()
		}
		if now := r.Elapsed().Now; now < 0 || now > time.Second {
			t.Fatalf("clock escaped bounds: %v", now)
		}
	}

	// 40 ticks x 300ms = 12s of travel = 12 boundary crossings.
	if flips != 12 {
		t.Errorf("direction flipped %d times, want 12", flips)
	}
}

func TestRunnerPingPongReflectsOvershoot(t *testing.T) {
	r := NewRunner(time.Second)
	r.SetRepeat(Forever(PingPong))

	tick := r.Tick(1400*time.Millisecond, 1)

	if r.Elapsed().Now != 600*time.Millisecond {
		t.Errorf("now = %v, want 600ms (reflected)", r.Elapsed().Now)
	}
	if r.Direction() != Backward {
		t.Error("direction should have flipped to backward")
	}
	if len(tick.Sweeps) != 2 || tick.Sweeps[1].Direction != Backward {
		t.Errorf("sweeps = %+v, want forward then backward", tick.Sweeps)
	}
}

func TestRunnerBackwardPlayCompletesAtZero(t *testing.T) {
	r := NewRunner(time.Second)
	r.Restore(State{Now: time.Second, Direction: Backward, Remaining: 1})

	tick := r.Tick(700*time.Millisecond, 1)
	if tick.Completed {
		t.Fatal("should not complete mid-period")
	}
	if r.Elapsed().Now != 300*time.Millisecond {
		t.Errorf("now = %v, want 300ms", r.Elapsed().Now)
	}

	tick = r.Tick(700*time.Millisecond, 1)
	if !tick.Completed {
		t.Fatal("backward play should complete at zero")
	}
	if r.Elapsed().Now != 0 {
		t.Errorf("now = %v, want clamped at 0", r.Elapsed().Now)
	}
}

func TestRunnerRewindClampsWithoutConsumingCounter(t *testing.T) {
	r := NewRunner(time.Second)
	r.SetRepeat(Times(2, Restart))
	r.Tick(400*time.Millisecond, 1)

	// Negative delta rewinds against the playback direction.
	tick := r.Tick(-600*time.Millisecond, 1)

	if r.Elapsed().Now != 0 {
		t.Errorf("now = %v, want clamped at 0", r.Elapsed().Now)
	}
	if tick.Completed {
		t.Error("rewind clamp should not complete")
	}
	if got := r.Repeat().Remaining(); got != 2 {
		t.Errorf("remaining = %d, rewind should not consume the counter", got)
	}
	if len(tick.Sweeps) != 1 || tick.Sweeps[0].Direction != Backward {
		t.Errorf("sweeps = %+v, want one backward sweep", tick.Sweeps)
	}
}

func TestRunnerSetDirectionKeepsClock(t *testing.T) {
	r := NewRunner(time.Second)
	r.Tick(400*time.Millisecond, 1)

	r.SetDirection(Backward)

	if r.Elapsed().Now != 400*time.Millisecond {
		t.Error("reversing must not move the clock")
	}
	r.Tick(100*time.Millisecond, 1)
	if r.Elapsed().Now != 300*time.Millisecond {
		t.Errorf("now = %v, want 300ms after backward tick", r.Elapsed().Now)
	}
}

func TestRunnerZeroDurationCompletesImmediately(t *testing.T) {
	r := NewRunner(0)
	tick := r.Tick(time.Millisecond, 1)
	if !tick.Completed {
		t.Error("zero-duration runner should complete on first movement")
	}
}

func TestRunnerElapsedCollapse(t *testing.T) {
	r := NewRunner(time.Second)
	r.Tick(300*time.Millisecond, 1)

	if r.Elapsed().Previous != 0 {
		t.Error("previous should not move until collapsed")
	}
	r.CollapseElapsed()
	if r.Elapsed().Previous != 300*time.Millisecond {
		t.Errorf("previous = %v after collapse, want 300ms", r.Elapsed().Previous)
	}
}

func TestRunnerStateRoundTripsThroughJSON(t *testing.T) {
	r := NewRunner(time.Second)
	r.SetRepeat(Times(5, PingPong))
	r.Tick(1300*time.Millisecond, 1)
	r.SetPaused(true)

	blob, err := json.Marshal(r.State())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var s State
	if err := json.Unmarshal(blob, &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := NewRunner(time.Second)
	restored.Restore(s)

	if restored.State() != r.State() {
		t.Errorf("restored state = %+v, want %+v", restored.State(), r.State())
	}
	if restored.Elapsed().Now != r.Elapsed().Now {
		t.Error("clock did not round-trip")
	}
	if restored.Direction() != r.Direction() {
		t.Error("direction did not round-trip")
	}
}

func TestRunnerDeterminism(t *testing.T) {
	run := func() []Elapsed {
		r := NewRunner(time.Second)
		r.SetRepeat(Times(4, PingPong))
		var out []Elapsed
		deltas := []time.Duration{130, 470, 990, 20, 1500, 333, 777}
		for _, d := range deltas {
			tick := r.Tick(d*time.Millisecond, 1.5)
			out = append(out, tick.Elapsed)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRunnerTickZeroAlloc(t *testing.T) {
	r := NewRunner(time.Second)
	r.SetRepeat(Forever(Restart))
	r.Tick(700*time.Millisecond, 1) // warm up scratch

	allocs := testing.AllocsPerRun(100, func() {
		r.Tick(90*time.Millisecond, 1)
	})
	if allocs > 0 {
		t.Errorf("Tick allocated %f times per run, want 0", allocs)
	}
}

func TestClassifySpanEnterExit(t *testing.T) {
	sp, _ := NewSpan(400*time.Millisecond, 800*time.Millisecond)

	// Enter.
	h := classifySpan(sp, []Sweep{{From: 0, To: 500 * time.Millisecond, Direction: Forward}}, false)
	if !h.touched || h.entries != 1 || h.exited || !h.active {
		t.Errorf("enter hit = %+v", h)
	}
	if h.local != 100*time.Millisecond {
		t.Errorf("local = %v, want 100ms into span", h.local)
	}

	// Continue.
	h = classifySpan(sp, []Sweep{{From: 500 * time.Millisecond, To: 600 * time.Millisecond, Direction: Forward}}, true)
	if h.entries != 0 || h.exited || !h.active {
		t.Errorf("continue hit = %+v", h)
	}

	// Exit: the final touching position clamps to the span end.
	h = classifySpan(sp, []Sweep{{From: 600 * time.Millisecond, To: time.Second, Direction: Forward}}, true)
	if h.entries != 0 || !h.exited || h.active {
		t.Errorf("exit hit = %+v", h)
	}
	if h.local != 400*time.Millisecond {
		t.Errorf("exit local = %v, want clamped to span length", h.local)
	}
}

func TestClassifySpanFullCrossingInOneTick(t *testing.T) {
	sp, _ := NewSpan(400*time.Millisecond, 500*time.Millisecond)

	h := classifySpan(sp, []Sweep{{From: 0, To: time.Second, Direction: Forward}}, false)

	if h.entries != 1 || !h.exited || h.active {
		t.Errorf("hit = %+v, want entered and exited in one tick", h)
	}
	if h.local != 100*time.Millisecond {
		t.Errorf("local = %v, want full span length", h.local)
	}
}

func TestClassifySpanStationaryInstantDoesNotRetrigger(t *testing.T) {
	mark := At(500 * time.Millisecond)
	at := 500 * time.Millisecond

	// First arrival lands exactly on the instant.
	h := classifySpan(mark, []Sweep{{From: 0, To: at, Direction: Forward}}, false)
	if h.entries != 1 {
		t.Fatalf("entries = %d, want 1 on arrival", h.entries)
	}

	// Parked on the instant: stationary sweep, still active, no re-entry.
	h = classifySpan(mark, []Sweep{{From: at, To: at, Direction: Forward}}, true)
	if h.entries != 0 {
		t.Errorf("entries = %d, parked clock should not re-trigger", h.entries)
	}
}

func TestClassifySpanCountsLoopedCrossings(t *testing.T) {
	mark := At(500 * time.Millisecond)

	// A wrapped tick crosses the marker twice.
	sweeps := []Sweep{
		{From: 200 * time.Millisecond, To: time.Second, Direction: Forward},
		{From: 0, To: 600 * time.Millisecond, Direction: Forward},
	}
	h := classifySpan(mark, sweeps, false)

	if h.entries != 2 {
		t.Errorf("entries = %d, want 2 (once per crossing)", h.entries)
	}
}

func TestClassifySpanPingPongBoundaryNoDoubleFire(t *testing.T) {
	mark := At(time.Second)

	// Forward sweep reaches the boundary, reflected sweep leaves it.
	sweeps := []Sweep{
		{From: 600 * time.Millisecond, To: time.Second, Direction: Forward},
		{From: time.Second, To: 600 * time.Millisecond, Direction: Backward},
	}
	h := classifySpan(mark, sweeps, false)

	if h.entries != 1 {
		t.Errorf("entries = %d, want 1 (reflection is not a second crossing)", h.entries)
	}
}
