package timeline

import "math"

// Vec2 is a 2D vector used for positions, offsets, and scales.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Color represents an RGBA color with components in [0, 1]. Not
// premultiplied.
type Color struct {
	R, G, B, A float64
}

// Lerp is a pure blend of two values of one kind at eased progress t.
// t is not clamped to [0, 1]: overshooting curves extrapolate, and each
// value kind decides whether extrapolation is meaningful. Positions
// overshoot; color channels saturate.
type Lerp[V any] func(a, b V, t float32) V

// LerpFloat blends two scalars, extrapolating beyond the endpoints.
func LerpFloat(a, b float64, t float32) float64 {
	return a + (b-a)*float64(t)
}

// LerpVec2 blends two vectors component-wise, extrapolating beyond the
// endpoints.
func LerpVec2(a, b Vec2, t float32) Vec2 {
	return Vec2{
		X: LerpFloat(a.X, b.X, t),
		Y: LerpFloat(a.Y, b.Y, t),
	}
}

// LerpColor blends two colors channel-wise and saturates every channel to
// [0, 1], so overshooting curves and NaN cannot produce an invalid color.
func LerpColor(a, b Color, t float32) Color {
	return Color{
		R: clamp01(LerpFloat(a.R, b.R, t)),
		G: clamp01(LerpFloat(a.G, b.G, t)),
		B: clamp01(LerpFloat(a.B, b.B, t)),
		A: clamp01(LerpFloat(a.A, b.A, t)),
	}
}

// clamp01 saturates to [0, 1]. NaN collapses to 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LerpAngle blends two angles in radians along the shortest arc.
func LerpAngle(a, b float64, t float32) float64 {
	diff := math.Mod(b-a, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return a + diff*float64(t)
}

// Interpolator maps an eased progress value to an output value. The core
// is agnostic to the implementation strategy: typed structs (Between),
// closures (Func), or any user interface value work the same.
type Interpolator[V any] interface {
	Interpolate(t float32) V
}

// AdditiveInterpolator is the delta family: instead of overwriting the
// target, the tween adds the displacement accumulated since the previous
// committed sample. Two independent additive tweens can drive the same
// target without clobbering each other.
type AdditiveInterpolator[V any] interface {
	Interpolator[V]
	// Accumulate returns current + (f(now) - f(prev)).
	Accumulate(current V, prev, now float32) V
}

// Between is an absolute interpolator blending Start to End with a Lerp.
type Between[V any] struct {
	Start V
	End   V
	Lerp  Lerp[V]
}

// Interpolate returns the blend at eased progress t.
func (b Between[V]) Interpolate(t float32) V {
	return b.Lerp(b.Start, b.End, t)
}

// FloatBetween tweens a scalar from a to b absolutely.
func FloatBetween(a, b float64) Between[float64] {
	return Between[float64]{Start: a, End: b, Lerp: LerpFloat}
}

// Vec2Between tweens a vector from a to b absolutely.
func Vec2Between(a, b Vec2) Between[Vec2] {
	return Between[Vec2]{Start: a, End: b, Lerp: LerpVec2}
}

// ColorBetween tweens a color from a to b absolutely, saturating channels.
func ColorBetween(a, b Color) Between[Color] {
	return Between[Color]{Start: a, End: b, Lerp: LerpColor}
}

// AngleBetween tweens an angle in radians from a to b along the shortest
// arc.
func AngleBetween(a, b float64) Between[float64] {
	return Between[float64]{Start: a, End: b, Lerp: LerpAngle}
}

// FloatDelta tweens a scalar additively: over a full pass it shifts the
// target by b - a, stacking with whatever else writes to the target.
type FloatDelta struct {
	Start, End float64
}

// Interpolate returns the absolute blend at t; the tween uses it through
// Accumulate.
func (d FloatDelta) Interpolate(t float32) float64 {
	return LerpFloat(d.Start, d.End, t)
}

// Accumulate adds the displacement between the prev and now samples.
func (d FloatDelta) Accumulate(current float64, prev, now float32) float64 {
	return current + d.Interpolate(now) - d.Interpolate(prev)
}

// Vec2Delta tweens a vector additively.
type Vec2Delta struct {
	Start, End Vec2
}

func (d Vec2Delta) Interpolate(t float32) Vec2 {
	return LerpVec2(d.Start, d.End, t)
}

func (d Vec2Delta) Accumulate(current Vec2, prev, now float32) Vec2 {
	return current.Add(d.Interpolate(now).Sub(d.Interpolate(prev)))
}

// Func adapts a closure to an absolute Interpolator.
type Func[V any] func(t float32) V

// Interpolate calls the closure.
func (f Func[V]) Interpolate(t float32) V { return f(t) }
