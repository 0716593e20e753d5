package timeline

import (
	"fmt"
	"time"
)

// Span is a closed-open interval [Start, End) on a timeline's local clock.
// A Span with Start == End is an instant: it contains only its exact point
// and is used for jump tweens and event markers.
//
// Spans are immutable values. Build them with NewSpan or At; replacing a
// binding is the only way to change its span.
type Span struct {
	Start time.Duration
	End   time.Duration
}

// ErrSpanInverted is returned by NewSpan when Start > End.
var ErrSpanInverted = fmt.Errorf("timeline: span start is after its end")

// NewSpan creates a Span covering [start, end). It returns ErrSpanInverted
// (wrapped with the offending values) when start > end; an inverted span
// never enters the runtime model.
func NewSpan(start, end time.Duration) (Span, error) {
	if start > end {
		return Span{}, fmt.Errorf("%w: [%v, %v)", ErrSpanInverted, start, end)
	}
	return Span{Start: start, End: end}, nil
}

// At creates a zero-length Span representing the instant at.
func At(at time.Duration) Span {
	return Span{Start: at, End: at}
}

// Duration returns the length of the span. Instants have zero duration.
func (s Span) Duration() time.Duration {
	return s.End - s.Start
}

// IsInstant reports whether the span is zero-length.
func (s Span) IsInstant() bool {
	return s.Start == s.End
}

// Contains reports whether the local time t falls inside the span.
// The interval is closed-open, so t == End is outside; an instant
// contains only its exact point.
func (s Span) Contains(t time.Duration) bool {
	if s.IsInstant() {
		return t == s.Start
	}
	return t >= s.Start && t < s.End
}

// Overlaps reports whether two spans share any point. Instants overlap a
// span when the span contains their point; two instants overlap only when
// equal.
func (s Span) Overlaps(other Span) bool {
	if other.IsInstant() {
		return s.Contains(other.Start)
	}
	if s.IsInstant() {
		return other.Contains(s.Start)
	}
	return s.Start < other.End && other.Start < s.End
}

// Progress returns the normalized position of the local time at within the
// span, clamped to [0, 1]. Instants normalize to 1 once reached and 0
// before.
func (s Span) Progress(at time.Duration) float32 {
	if s.IsInstant() {
		if at >= s.Start {
			return 1
		}
		return 0
	}
	if at <= s.Start {
		return 0
	}
	if at >= s.End {
		return 1
	}
	return float32(float64(at-s.Start) / float64(s.End-s.Start))
}

// clampIn clamps an absolute local time into the span's closed interval.
// The End point is a valid clamp result even though the span is half-open:
// a tween that sweeps past its span must land exactly on its end value.
func (s Span) clampIn(t time.Duration) time.Duration {
	if t < s.Start {
		return s.Start
	}
	if t > s.End {
		return s.End
	}
	return t
}

// Elapsed tracks the {Previous, Now} pair of local-time positions consumed
// by one timed unit. Previous is only moved by Collapse, never by a tick:
// every consumer sampling within one tick sees the same Previous even when
// several ticks accumulated before sampling.
type Elapsed struct {
	Previous time.Duration
	Now      time.Duration
}

// Collapse folds the pair, setting Previous = Now. Call it once per tick
// after all consumers have sampled.
func (e *Elapsed) Collapse() {
	e.Previous = e.Now
}
