package timeline

// Target resolves a non-owning reference to a mutable destination value.
// Resolution happens once per tick per tween and may fail transiently:
// the entity despawned, the component has not been added yet, the asset
// is still loading. Failure is not an error: the tween skips the tick
// and retries on the next one.
//
// The returned pointer is only valid for the duration of one interpolator
// invocation; the host guarantees exclusive access for that long.
type Target[V any] interface {
	Resolve() (*V, bool)
}

// TargetFunc adapts a closure to a Target.
type TargetFunc[V any] func() (*V, bool)

// Resolve calls the closure.
func (f TargetFunc[V]) Resolve() (*V, bool) { return f() }

type ptrTarget[V any] struct{ p *V }

func (t ptrTarget[V]) Resolve() (*V, bool) { return t.p, t.p != nil }

// Ptr wraps a plain pointer as an always-resolvable Target. Use it for
// values the caller owns for the timeline's whole lifetime, such as
// resources or globals.
func Ptr[V any](p *V) Target[V] {
	return ptrTarget[V]{p: p}
}
