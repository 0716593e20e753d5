// Package timeline is a span-based tween engine for Go games.
//
// A [Timeline] owns a local clock and a set of bindings, each attached to
// a [Span] of that clock. Tween bindings interpolate a value while the
// clock is inside their span; event bindings fire a payload when the
// clock crosses an instant. The clock supports pausing, time scaling,
// direction reversal, seeking, and bounded or infinite repeats with
// restart or ping-pong boundaries, and stays deterministic through all of
// it: the same tick sequence always produces the same writes and the same
// events, in the same order.
//
// # Quick start
//
//	tl := timeline.New(2 * time.Second)
//	tl.SetRepeat(timeline.Forever(timeline.PingPong))
//
//	span, _ := timeline.NewSpan(0, 1500*time.Millisecond)
//	timeline.Animate(tl, span, timeline.CubicOut,
//		timeline.Vec2Between(timeline.Vec2{}, timeline.Vec2{X: 100, Y: 50}),
//		timeline.Ptr(&pos))
//
//	tl.At(time.Second, "halfway")
//	tl.OnEvent(func(ev timeline.Event) { log.Println(ev.Payload) })
//
//	// each frame:
//	tl.Update(dt)
//
// # Composition
//
// "Sequential" is just disjoint spans and "parallel" is overlapping
// spans; there is no nested timeline graph to manage. Overlapping
// absolute tweens on one target apply in span-start order, so the last
// one wins deterministically. Additive tweens ([FloatDelta], [Vec2Delta])
// add their displacement instead of overwriting, so independent tweens
// can drive the same value at once.
//
// # Easing
//
// Easing curves come from [gween]: every named curve here delegates to
// gween's closed-form implementation, and [Ease] adapts any
// ease.TweenFunc directly. [Table] builds a curve from samples.
//
// # Targets
//
// A tween writes through a [Target], a non-owning reference resolved
// every tick. Unresolvable targets are skipped and retried, never fatal.
// The timeline/ecs module adapts targets and timelines to a [Donburi]
// world.
//
// # Scripts
//
// [LoadScript] parses a JSON timeline definition, for animations authored
// as data; [Script.Build] binds it to named targets and returns a
// runnable timeline.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package timeline
