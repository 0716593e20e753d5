package timeline

import "github.com/tanema/gween/ease"

// EaseFunc maps normalized progress t in [0, 1] to eased progress. Eased
// output may leave [0, 1] for overshooting curves (back, elastic); the
// interpolation layer decides whether to tolerate or saturate that.
// EaseFuncs must be pure: no state, no clocks.
//
// This layer never clamps and never filters NaN or Inf; a curve that
// produces them propagates them to the interpolator, whose value type
// decides how to cope (bounded types saturate, unbounded types overshoot).
type EaseFunc func(t float32) float32

// Ease adapts a gween easing function to a normalized EaseFunc. Any curve
// from github.com/tanema/gween/ease can be used directly:
//
//	timeline.Animate(tl, span, timeline.Ease(ease.OutElastic), interp, target)
func Ease(fn ease.TweenFunc) EaseFunc {
	return func(t float32) float32 {
		return fn(t, 0, 1, 1)
	}
}

// The standard named curves, normalized. These delegate to gween's
// closed-form implementations, so they match the reference formulas
// exactly rather than approximating them.
var (
	Linear = Ease(ease.Linear)

	QuadIn    = Ease(ease.InQuad)
	QuadOut   = Ease(ease.OutQuad)
	QuadInOut = Ease(ease.InOutQuad)

	CubicIn    = Ease(ease.InCubic)
	CubicOut   = Ease(ease.OutCubic)
	CubicInOut = Ease(ease.InOutCubic)

	QuartIn    = Ease(ease.InQuart)
	QuartOut   = Ease(ease.OutQuart)
	QuartInOut = Ease(ease.InOutQuart)

	QuintIn    = Ease(ease.InQuint)
	QuintOut   = Ease(ease.OutQuint)
	QuintInOut = Ease(ease.InOutQuint)

	SineIn    = Ease(ease.InSine)
	SineOut   = Ease(ease.OutSine)
	SineInOut = Ease(ease.InOutSine)

	CircIn    = Ease(ease.InCirc)
	CircOut   = Ease(ease.OutCirc)
	CircInOut = Ease(ease.InOutCirc)

	ExpoIn    = Ease(ease.InExpo)
	ExpoOut   = Ease(ease.OutExpo)
	ExpoInOut = Ease(ease.InOutExpo)

	BackIn    = Ease(ease.InBack)
	BackOut   = Ease(ease.OutBack)
	BackInOut = Ease(ease.InOutBack)

	ElasticIn    = Ease(ease.InElastic)
	ElasticOut   = Ease(ease.OutElastic)
	ElasticInOut = Ease(ease.InOutElastic)

	BounceIn    = Ease(ease.InBounce)
	BounceOut   = Ease(ease.OutBounce)
	BounceInOut = Ease(ease.InOutBounce)
)

// Table builds an EaseFunc from evenly spaced samples over [0, 1] with
// linear interpolation between them. The first sample is the value at 0
// and the last the value at 1. Fewer than two samples yield Linear.
func Table(samples ...float32) EaseFunc {
	if len(samples) < 2 {
		return Linear
	}
	cp := make([]float32, len(samples))
	copy(cp, samples)
	n := float32(len(cp) - 1)
	return func(t float32) float32 {
		if t <= 0 {
			return cp[0]
		}
		if t >= 1 {
			return cp[len(cp)-1]
		}
		x := t * n
		i := int(x)
		frac := x - float32(i)
		return cp[i] + (cp[i+1]-cp[i])*frac
	}
}
