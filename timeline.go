package timeline

import (
	"sort"
	"time"
)

// Event is the payload dispatched when the clock crosses an event
// binding. Dispatch is synchronous, inside the tick that triggered it.
type Event struct {
	// At is the timeline-local time of the binding's marker.
	At time.Duration
	// Direction of approach when the marker was crossed.
	Direction Direction
	// Progress is the sampled normalized progress of the binding's span.
	// Instants always report 1.
	Progress float32
	// Payload is the authored value, passed through uninterpreted.
	Payload any
}

// Binding is a tween or event marker owned by a timeline.
type Binding interface {
	// Timespan returns the span the binding is attached to.
	Timespan() Span
}

// binding is the internal per-tick contract.
type binding interface {
	Binding
	timespan() Span
	wasActive() bool
	step(tl *Timeline, hit spanHit)
	collapse()
	reset()
}

// Timeline owns one Runner and the bindings attached to it. Each Update
// it ticks the runner, classifies every binding against the swept
// segments, applies tweens and dispatches events in span-start order,
// then collapses all elapsed pairs so every consumer of the tick sampled
// the same previous value.
//
// A Timeline is single-threaded per tick: Update is not reentrant, and
// writes to targets shared with other timelines must be serialized by the
// host. There is nothing to shut down; dropping the Timeline drops all
// pending state.
type Timeline struct {
	runner      *Runner
	bindings    []binding
	observers   []func(Event)
	completeFns []func()
	scale       float32
}

// New creates a timeline with the given duration, playing forward once at
// time scale 1.
func New(duration time.Duration) *Timeline {
	return &Timeline{
		runner: NewRunner(duration),
		scale:  1,
	}
}

// Runner exposes the timeline's scheduler for direct control (direction,
// repeat, pause, state snapshots).
func (tl *Timeline) Runner() *Runner { return tl.runner }

// SetTimeScale sets the multiplier applied to every tick delta. Negative
// scales are clamped to zero (use SetDirection or Reverse to play
// backward).
func (tl *Timeline) SetTimeScale(s float32) {
	if s < 0 {
		s = 0
	}
	tl.scale = s
}

// TimeScale returns the current tick-delta multiplier.
func (tl *Timeline) TimeScale() float32 { return tl.scale }

// SetRepeat replaces the runner's repeat policy.
func (tl *Timeline) SetRepeat(r Repeat) { tl.runner.SetRepeat(r) }

// SetDirection sets the playback direction without moving the clock.
func (tl *Timeline) SetDirection(d Direction) { tl.runner.SetDirection(d) }

// Reverse flips the playback direction without moving the clock.
func (tl *Timeline) Reverse() { tl.runner.SetDirection(tl.runner.Direction().Reverse()) }

// Pause stops the clock; ticks while paused move nothing and report
// nothing.
func (tl *Timeline) Pause() { tl.runner.SetPaused(true) }

// Resume restarts a paused clock.
func (tl *Timeline) Resume() { tl.runner.SetPaused(false) }

// Done reports whether the timeline has completed.
func (tl *Timeline) Done() bool { return tl.runner.Completed() }

// OnEvent registers an observer for event bindings. Observers are invoked
// synchronously, in registration order, once per crossing.
func (tl *Timeline) OnEvent(fn func(Event)) {
	tl.observers = append(tl.observers, fn)
}

// OnComplete registers an observer for the reached-end signal, which
// fires exactly once per timeline lifetime.
func (tl *Timeline) OnComplete(fn func()) {
	tl.completeFns = append(tl.completeFns, fn)
}

// At attaches an event marker: when the clock crosses the instant at, the
// payload is dispatched to every event observer, once per crossing.
// Ping-pong and looped repeats re-dispatch on every pass over the marker.
func (tl *Timeline) At(at time.Duration, payload any) Binding {
	b := &eventBinding{span: At(at), payload: payload}
	tl.insert(b)
	return b
}

// During attaches an event marker covering a span; the payload is
// dispatched once each time the clock newly enters the span.
func (tl *Timeline) During(span Span, payload any) Binding {
	b := &eventBinding{span: span, payload: payload}
	tl.insert(b)
	return b
}

// Remove detaches a binding previously returned by Animate, Jump, At, or
// During. Removal drops any pending reports for it.
func (tl *Timeline) Remove(b Binding) {
	for i, have := range tl.bindings {
		if Binding(have) == b {
			tl.bindings = append(tl.bindings[:i], tl.bindings[i+1:]...)
			return
		}
	}
}

// insert keeps bindings ordered by span start ascending, preserving
// attachment order for equal starts. Downstream application and event
// dispatch inherit this order, which is what makes overlapping writes
// deterministic.
func (tl *Timeline) insert(b binding) {
	start := b.timespan().Start
	i := sort.Search(len(tl.bindings), func(i int) bool {
		return tl.bindings[i].timespan().Start > start
	})
	tl.bindings = append(tl.bindings, nil)
	copy(tl.bindings[i+1:], tl.bindings[i:])
	tl.bindings[i] = b
}

// Update advances the timeline by dt seconds, scaled by the time scale
// and signed by the direction. Call once per host frame.
func (tl *Timeline) Update(dt float32) {
	tl.Advance(time.Duration(float64(dt) * float64(time.Second)))
}

// Advance is Update with an explicit duration delta. Negative deltas
// rewind against the playback direction and clamp at the period boundary.
func (tl *Timeline) Advance(delta time.Duration) {
	tl.applyTick(tl.runner.Tick(delta, tl.scale))
}

// Seek moves the clock to the local time to, sweeping across everything
// in between: spans between the old and new position are entered, exited,
// and their events fired exactly as if the clock had ticked there. Time
// scale does not apply. Seeking a completed timeline is a no-op; a paused
// timeline seeks without resuming.
func (tl *Timeline) Seek(to time.Duration) {
	if to < 0 {
		to = 0
	}
	if d := tl.runner.Duration(); to > d {
		to = d
	}
	delta := to - tl.runner.Elapsed().Now
	if tl.runner.Direction() == Backward {
		delta = -delta
	}
	paused := tl.runner.Paused()
	tl.runner.SetPaused(false)
	tl.applyTick(tl.runner.Tick(delta, 1))
	tl.runner.SetPaused(paused)
}

func (tl *Timeline) applyTick(tick Tick) {
	for _, b := range tl.bindings {
		hit := classifySpan(b.timespan(), tick.Sweeps, b.wasActive())
		b.step(tl, hit)
	}
	if tick.Completed {
		for _, fn := range tl.completeFns {
			fn()
		}
	}
	for _, b := range tl.bindings {
		b.collapse()
	}
	tl.runner.CollapseElapsed()
}

// State returns the runner's serializable snapshot. The structural graph
// of bindings is authored data and must be rebuilt by the author; only
// the live clock state round-trips.
func (tl *Timeline) State() State { return tl.runner.State() }

// Restore replaces the live clock state from a snapshot. Binding active
// flags are reset, so spans under the restored clock re-enter on the next
// tick.
func (tl *Timeline) Restore(s State) {
	tl.runner.Restore(s)
	for _, b := range tl.bindings {
		b.reset()
	}
}

type eventBinding struct {
	span    Span
	payload any
	active  bool
}

func (b *eventBinding) Timespan() Span  { return b.span }
func (b *eventBinding) timespan() Span  { return b.span }
func (b *eventBinding) wasActive() bool { return b.active }
func (b *eventBinding) collapse()       {}
func (b *eventBinding) reset()          { b.active = false }

func (b *eventBinding) step(tl *Timeline, hit spanHit) {
	b.active = hit.active
	for n := 0; n < hit.entries; n++ {
		ev := Event{
			At:        b.span.Start,
			Direction: hit.dir,
			Progress:  b.span.Progress(b.span.Start + hit.local),
			Payload:   b.payload,
		}
		for _, fn := range tl.observers {
			fn(ev)
		}
	}
}
