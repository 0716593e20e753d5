package timeline

import "time"

// Runner is the per-timeline scheduler: it owns the master local clock,
// converts signed tick deltas into clock movement honoring time scale,
// direction, and repeat policy, and reports the clock segments traversed
// so span bindings can be classified against them.
//
// The clock always sits inside [0, Duration] after a tick; boundary
// overshoot is wrapped (Restart), reflected (PingPong), or clamped
// (completion) before the tick result is published. A Runner performs no
// I/O and reads no wall clock: identical tick sequences produce identical
// results.
type Runner struct {
	elapsed   Elapsed
	duration  time.Duration
	direction Direction
	repeat    Repeat
	paused    bool
	completed bool

	// scratch is reused across ticks so steady-state ticking does not
	// allocate. Tick results alias it and are only valid until the next
	// Tick call.
	scratch []Sweep
}

// Sweep is one monotonic segment of clock traversal within a single tick.
// A tick that wraps or reflects at period boundaries produces several
// sweeps; a plain tick produces one. From and To are equal only for the
// stationary sweep of a zero-delta tick.
type Sweep struct {
	From      time.Duration
	To        time.Duration
	Direction Direction
}

// touches reports whether the sweep passed over any part of the span.
// Sweeps are closed intervals: reaching a boundary point counts.
func (w Sweep) touches(s Span) bool {
	lo, hi := w.From, w.To
	if lo > hi {
		lo, hi = hi, lo
	}
	if s.IsInstant() {
		return lo <= s.Start && s.Start <= hi
	}
	return lo < s.End && hi >= s.Start
}

// Tick is the published result of one Runner.Tick call.
type Tick struct {
	// Elapsed pairs the clock position before the tick with the wrapped
	// position after it.
	Elapsed Elapsed
	// Direction after the tick; PingPong boundary crossings flip it.
	Direction Direction
	// Sweeps traversed, in traversal order. Nil when paused or completed.
	Sweeps []Sweep
	// Completed is true exactly once, on the tick that reaches the end.
	Completed bool
}

// NewRunner creates a Runner for a timeline of the given duration, playing
// forward once. A negative duration is treated as zero; a zero-duration
// runner completes on its first non-empty tick.
func NewRunner(duration time.Duration) *Runner {
	if duration < 0 {
		duration = 0
	}
	return &Runner{duration: duration, repeat: Once()}
}

// Duration returns the period length of one pass.
func (r *Runner) Duration() time.Duration { return r.duration }

// Elapsed returns the current {previous, now} clock pair.
func (r *Runner) Elapsed() Elapsed { return r.elapsed }

// Direction returns the current playback direction.
func (r *Runner) Direction() Direction { return r.direction }

// SetDirection changes the sign applied to future deltas. The clock
// position is left untouched.
func (r *Runner) SetDirection(d Direction) { r.direction = d }

// Repeat returns the current repeat policy, including its live counter.
func (r *Runner) Repeat() Repeat { return r.repeat }

// SetRepeat replaces the repeat policy. Replacing the policy on a
// completed runner does not revive it; use Restore for that.
func (r *Runner) SetRepeat(p Repeat) { r.repeat = p }

// Paused reports whether ticks are currently ignored.
func (r *Runner) Paused() bool { return r.paused }

// SetPaused pauses or resumes the runner. Paused ticks publish no sweeps
// and move nothing.
func (r *Runner) SetPaused(paused bool) { r.paused = paused }

// Completed reports whether the runner has reached its end and latched.
func (r *Runner) Completed() bool { return r.completed }

// CollapseElapsed folds the runner's elapsed pair (previous = now). The
// owning timeline calls this once per tick after every consumer sampled.
func (r *Runner) CollapseElapsed() { r.elapsed.Collapse() }

// Tick advances the clock by delta scaled by timeScale and signed by the
// current direction, wrapping at period boundaries per the repeat policy.
// Negative deltas rewind against the playback direction; a rewind that
// reaches a boundary clamps there without consuming the repeat counter.
// Multiple boundary crossings within one delta are processed one period at
// a time, so arbitrarily large deltas drain the counter correctly.
//
// The returned Tick aliases internal scratch storage; it is valid until
// the next call.
func (r *Runner) Tick(delta time.Duration, timeScale float32) Tick {
	if r.paused || r.completed {
		return Tick{Elapsed: r.elapsed, Direction: r.direction}
	}
	if timeScale < 0 {
		timeScale = 0
	}

	prev := r.elapsed.Now
	now := prev
	r.scratch = r.scratch[:0]

	// move is the remaining clock displacement: positive pushes toward
	// Duration, negative toward zero.
	move := time.Duration(float64(delta) * float64(timeScale))
	if r.direction == Backward {
		move = -move
	}

	completed := false
	if r.duration == 0 && move != 0 {
		// Degenerate period: any movement immediately completes.
		move = 0
		completed = true
		r.completed = true
	}

	for move != 0 {
		target := now + move
		switch {
		case move > 0 && target >= r.duration:
			if now != r.duration {
				r.scratch = append(r.scratch, Sweep{From: now, To: r.duration, Direction: Forward})
			}
			overshoot := target - r.duration
			if r.direction != Forward {
				// Rewinding a backward runner: clamp, keep the counter.
				now, move = r.duration, 0
				continue
			}
			if !r.repeat.advance() {
				now, move = r.duration, 0
				completed = true
				r.completed = true
				continue
			}
			if r.repeat.style == PingPong {
				now, move = r.duration, -overshoot
				r.direction = Backward
			} else {
				now, move = 0, overshoot
			}

		case move < 0 && target <= 0:
			if now != 0 {
				r.scratch = append(r.scratch, Sweep{From: now, To: 0, Direction: Backward})
			}
			overshoot := -target
			if r.direction != Backward {
				now, move = 0, 0
				continue
			}
			if !r.repeat.advance() {
				now, move = 0, 0
				completed = true
				r.completed = true
				continue
			}
			if r.repeat.style == PingPong {
				now, move = 0, overshoot
				r.direction = Forward
			} else {
				now, move = r.duration, -overshoot
			}

		default:
			dir := Forward
			if move < 0 {
				dir = Backward
			}
			r.scratch = append(r.scratch, Sweep{From: now, To: target, Direction: dir})
			now, move = target, 0
		}
	}

	if len(r.scratch) == 0 && !completed {
		// Stationary tick: publish a zero-length sweep so spans under the
		// clock keep reporting as active. Instants do not re-trigger from
		// it because a stationary sweep never constitutes a new entry.
		r.scratch = append(r.scratch, Sweep{From: now, To: now, Direction: r.direction})
	}

	r.elapsed.Now = now
	return Tick{
		Elapsed:   Elapsed{Previous: prev, Now: now},
		Direction: r.direction,
		Sweeps:    r.scratch,
		Completed: completed,
	}
}

// State is the minimal serializable snapshot of a runner. The structural
// graph of spans and tweens is authored data and is not part of it.
type State struct {
	Now       time.Duration `json:"now"`
	Previous  time.Duration `json:"previous"`
	Direction Direction     `json:"direction"`
	Forever   bool          `json:"forever"`
	Remaining int           `json:"remaining"`
	Style     RepeatStyle   `json:"style"`
	Paused    bool          `json:"paused"`
	Completed bool          `json:"completed"`
}

// State captures the runner's live clock, direction, repeat counter, and
// pause flag for save/restore.
func (r *Runner) State() State {
	return State{
		Now:       r.elapsed.Now,
		Previous:  r.elapsed.Previous,
		Direction: r.direction,
		Forever:   r.repeat.forever,
		Remaining: r.repeat.remaining,
		Style:     r.repeat.style,
		Paused:    r.paused,
		Completed: r.completed,
	}
}

// Restore replaces the runner's live state with a previously captured
// snapshot. The clock is clamped into [0, Duration].
func (r *Runner) Restore(s State) {
	now := s.Now
	if now < 0 {
		now = 0
	}
	if now > r.duration {
		now = r.duration
	}
	r.elapsed = Elapsed{Previous: s.Previous, Now: now}
	r.direction = s.Direction
	r.repeat = Repeat{forever: s.Forever, remaining: s.Remaining, style: s.Style}
	r.paused = s.Paused
	r.completed = s.Completed
}

// spanHit is the classification of one span against one tick's sweeps:
// whether the tick touched it at all, how many times it was newly entered
// (looped ticks can cross a span more than once), whether it was left
// behind, whether it is active at the tick's end, and the direction and
// clamped position-in-span of the last touching sweep.
type spanHit struct {
	touched bool
	entries int
	exited  bool
	active  bool
	dir     Direction
	local   time.Duration
}

// classifySpan walks the tick's sweeps over a span. wasActive is the
// span's active flag from the previous tick; it seeds the walk so a sweep
// continuing out of a span counts as an exit, not a fresh entry, and so a
// clock parked exactly on an instant does not re-trigger it.
func classifySpan(s Span, sweeps []Sweep, wasActive bool) spanHit {
	var h spanHit
	inside := wasActive
	for _, sw := range sweeps {
		if !sw.touches(s) {
			inside = s.Contains(sw.To)
			continue
		}
		h.touched = true
		if !inside {
			h.entries++
		}
		h.dir = sw.Direction
		h.local = s.clampIn(sw.To) - s.Start
		inside = s.Contains(sw.To)
	}
	h.active = inside
	h.exited = (wasActive || h.entries > 0) && !inside
	return h
}
