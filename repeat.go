package timeline

// Direction is the sign applied to future tick deltas. Reversing a running
// timeline does not move its clock; it only changes which way subsequent
// deltas push it.
type Direction int8

const (
	Forward Direction = iota
	Backward
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// RepeatStyle selects what happens to the clock at a period boundary.
type RepeatStyle uint8

const (
	// Restart wraps the clock to the opposite boundary and keeps playing
	// in the same direction.
	Restart RepeatStyle = iota
	// PingPong reflects the overshoot back into the period and flips the
	// playback direction.
	PingPong
)

func (s RepeatStyle) String() string {
	if s == PingPong {
		return "ping-pong"
	}
	return "restart"
}

// Repeat encodes how a runner behaves after completing one pass over its
// duration: play once, play a fixed number of passes, or loop forever.
// Each boundary crossing consumes one pass from a finite counter; a
// counter at or below zero is already exhausted and behaves like Once.
type Repeat struct {
	forever   bool
	remaining int
	style     RepeatStyle
}

// Once plays a single pass and completes at the boundary.
func Once() Repeat {
	return Repeat{remaining: 1}
}

// Times plays n total passes with the given boundary style. n <= 0 is
// treated as already exhausted.
func Times(n int, style RepeatStyle) Repeat {
	return Repeat{remaining: n, style: style}
}

// Forever loops with the given boundary style and never completes.
func Forever(style RepeatStyle) Repeat {
	return Repeat{forever: true, style: style}
}

// Finite reports whether the repeat will eventually complete.
func (r Repeat) Finite() bool {
	return !r.forever
}

// Remaining returns the number of passes left, including the one currently
// playing. Meaningless for Forever.
func (r Repeat) Remaining() int {
	return r.remaining
}

// Style returns the boundary style.
func (r Repeat) Style() RepeatStyle {
	return r.style
}

// advance consumes a single boundary crossing, reporting false when the
// crossing exhausts the counter. A large tick delta crosses several
// boundaries in one tick; the runner calls this once per crossing, so the
// counter drains by however many periods the delta covered.
func (r *Repeat) advance() bool {
	if r.forever {
		return true
	}
	if r.remaining <= 1 {
		if r.remaining > 0 {
			r.remaining--
		}
		return false
	}
	r.remaining--
	return true
}
