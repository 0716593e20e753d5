// Package ecs provides ECS adapters for timeline's animation system.
//
// The primary adapter is [Attach], which gives a running timeline a home
// in a [Donburi] world and bridges its event markers into the world as
// typed events. Subscribe to [EventType] in your ECS systems to receive
// them, and call [Update] once per frame to tick every attached timeline.
//
// Usage:
//
//	tl := timeline.New(2 * time.Second)
//	ecs.Attach(world, tl)
//
//	ecs.EventType.Subscribe(world, onMarker)
//	ecs.Update(world, dt) // each frame
//
// [Field] builds tween targets that address component data on a live
// entity, so tweens survive entity destruction instead of writing through
// stale pointers.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
