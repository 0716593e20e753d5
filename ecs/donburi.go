// Package ecs provides ECS adapters for timeline.
package ecs

import (
	"github.com/phanxgames/timeline"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// EventType is the Donburi event type for timeline events. Every event
// fired by an attached timeline is republished here; subscribe to it in
// your ECS systems to receive markers as they are crossed.
var EventType = events.NewEventType[timeline.Event]()

// TimelineData is the component payload carrying one running timeline.
type TimelineData struct {
	Timeline *timeline.Timeline

	// DestroyOnComplete removes the owning entity once the timeline
	// reaches its end.
	DestroyOnComplete bool
}

// Timeline is the Donburi component type for attached timelines.
var Timeline = donburi.NewComponentType[TimelineData]()

var attached = donburi.NewQuery(filter.Contains(Timeline))

// Attach creates an entity owning tl and bridges its events into the
// world. Events fire as Donburi events on EventType and are flushed by
// Update; the returned entry can be used to add further components or to
// remove the timeline later.
func Attach(w donburi.World, tl *timeline.Timeline) *donburi.Entry {
	entry := w.Entry(w.Create(Timeline))
	Timeline.SetValue(entry, TimelineData{Timeline: tl})
	tl.OnEvent(func(ev timeline.Event) {
		EventType.Publish(w, ev)
	})
	return entry
}

// Update ticks every attached timeline by dt seconds, destroys completed
// entities marked DestroyOnComplete, then flushes queued events to
// subscribers. Call once per frame from the host's update loop.
func Update(w donburi.World, dt float32) {
	attached.Each(w, func(entry *donburi.Entry) {
		data := Timeline.Get(entry)
		data.Timeline.Update(dt)
		if data.DestroyOnComplete && data.Timeline.Done() {
			entry.Remove()
		}
	})
	events.ProcessAllEvents(w)
}

// Field builds a tween target addressing one field of a component on an
// entity. The selector picks the field out of the component data. The
// target reports unresolved while the entity is dead or lacks the
// component, so tweens skip the tick instead of writing through a stale
// pointer and resume if the component comes back.
func Field[C any, V any](w donburi.World, entity donburi.Entity, ctype *donburi.ComponentType[C], sel func(*C) *V) timeline.Target[V] {
	return timeline.TargetFunc[V](func() (*V, bool) {
		if !w.Valid(entity) {
			return nil, false
		}
		entry := w.Entry(entity)
		if !entry.HasComponent(ctype) {
			return nil, false
		}
		return sel(ctype.Get(entry)), true
	})
}
