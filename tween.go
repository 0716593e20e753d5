package timeline

import (
	"log"
	"time"
)

// Tween binds one Span to one Interpolator and one Target. While its span
// is under the timeline's clock it derives normalized progress from the
// swept segments, applies the easing curve, and writes one value to the
// resolved target per tick.
//
// Additive (delta) tweens keep a per-tween cache of the previously
// committed eased sample, so two independent additive tweens driving the
// same target accumulate instead of clobbering each other. The cache only
// advances when a write actually commits and is cleared when the span is
// exited, so every repeat pass re-applies its full displacement.
type Tween[V any] struct {
	span   Span
	ease   EaseFunc
	interp Interpolator[V]
	target Target[V]

	elapsed   Elapsed
	active    bool
	hasPrev   bool
	prevEased float32
	warned    bool
}

// Timespan returns the span this tween is bound to.
func (tw *Tween[V]) Timespan() Span { return tw.span }

// Elapsed returns the tween's local {previous, now} positions within its
// span. Previous only moves when the owning timeline collapses after a
// tick.
func (tw *Tween[V]) Elapsed() Elapsed { return tw.elapsed }

// Progress returns the tween's current normalized position in its span.
func (tw *Tween[V]) Progress() float32 {
	return tw.span.Progress(tw.span.Start + tw.elapsed.Now)
}

func (tw *Tween[V]) timespan() Span  { return tw.span }
func (tw *Tween[V]) wasActive() bool { return tw.active }
func (tw *Tween[V]) collapse()       { tw.elapsed.Collapse() }

func (tw *Tween[V]) reset() {
	tw.active = false
	tw.hasPrev = false
	tw.elapsed = Elapsed{}
}

func (tw *Tween[V]) step(tl *Timeline, hit spanHit) {
	tw.active = hit.active
	if !hit.touched {
		return
	}
	tw.elapsed.Now = hit.local
	eased := tw.ease(tw.span.Progress(tw.span.Start + hit.local))

	ptr, ok := tw.target.Resolve()
	if !ok {
		// Transient: the component may be added later. Warn on the
		// transition only, never per tick.
		if !tw.warned {
			log.Printf("timeline: tween target for span [%v, %v) is unresolved, skipping until it appears",
				tw.span.Start, tw.span.End)
			tw.warned = true
		}
		if hit.exited {
			tw.hasPrev = false
		}
		return
	}
	tw.warned = false

	if add, ok := tw.interp.(AdditiveInterpolator[V]); ok {
		if !tw.hasPrev {
			// Seed the cache at the side of the span we entered from,
			// so the first committed write carries the displacement
			// accumulated since entry.
			entry := float32(0)
			if hit.dir == Backward {
				entry = 1
			}
			tw.prevEased = tw.ease(entry)
			tw.hasPrev = true
		}
		*ptr = add.Accumulate(*ptr, tw.prevEased, eased)
		tw.prevEased = eased
	} else {
		*ptr = tw.interp.Interpolate(eased)
	}

	if hit.exited {
		tw.hasPrev = false
	}
}

// Animate binds a tween to the timeline: while span is under the clock,
// progress is eased through fn and written through interp to target.
// Bindings are applied in span-start order, so overlapping absolute
// tweens on one target resolve last-write-wins deterministically.
func Animate[V any](tl *Timeline, span Span, fn EaseFunc, interp Interpolator[V], target Target[V]) *Tween[V] {
	if fn == nil {
		fn = Linear
	}
	tw := &Tween[V]{span: span, ease: fn, interp: interp, target: target}
	tl.insert(tw)
	return tw
}

// Jump binds an instant tween: when the clock crosses at, the
// interpolator's end value (progress 1) is written once to the target.
func Jump[V any](tl *Timeline, at time.Duration, interp Interpolator[V], target Target[V]) *Tween[V] {
	return Animate(tl, At(at), Linear, interp, target)
}
