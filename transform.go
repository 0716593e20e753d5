package timeline

// Transform bundles the spatial properties a sprite or node usually
// animates together. Rotation is in radians; Scale is per-axis with 1
// meaning unscaled.
type Transform struct {
	Position Vec2
	Rotation float64
	Scale    Vec2
}

// IdentityTransform is the neutral transform: origin, no rotation, unit
// scale.
var IdentityTransform = Transform{Scale: Vec2{X: 1, Y: 1}}

// LerpTransform blends two transforms field-wise. Position and scale
// extrapolate beyond the endpoints; rotation follows the shortest arc.
func LerpTransform(a, b Transform, t float32) Transform {
	return Transform{
		Position: LerpVec2(a.Position, b.Position, t),
		Rotation: LerpAngle(a.Rotation, b.Rotation, t),
		Scale:    LerpVec2(a.Scale, b.Scale, t),
	}
}

// TransformBetween tweens a whole transform from a to b absolutely.
func TransformBetween(a, b Transform) Between[Transform] {
	return Between[Transform]{Start: a, End: b, Lerp: LerpTransform}
}

// TransformDelta tweens a transform additively. Position and scale shift
// by their End - Start difference over a full pass; rotation turns by the
// raw difference, without shortest-arc reduction, so a delta larger than a
// half turn winds the full way around.
type TransformDelta struct {
	Start, End Transform
}

func (d TransformDelta) Interpolate(t float32) Transform {
	return Transform{
		Position: LerpVec2(d.Start.Position, d.End.Position, t),
		Rotation: LerpFloat(d.Start.Rotation, d.End.Rotation, t),
		Scale:    LerpVec2(d.Start.Scale, d.End.Scale, t),
	}
}

func (d TransformDelta) Accumulate(current Transform, prev, now float32) Transform {
	a, b := d.Interpolate(prev), d.Interpolate(now)
	return Transform{
		Position: current.Position.Add(b.Position.Sub(a.Position)),
		Rotation: current.Rotation + b.Rotation - a.Rotation,
		Scale:    current.Scale.Add(b.Scale.Sub(a.Scale)),
	}
}
