package ecs

import (
	"github.com/phanxgames/morphtree"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for morphtree scene events.
// Subscribe to this in your ECS systems to receive mode and gesture changes.
var SceneEventType = events.NewEventType[morphtree.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) morphtree.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event morphtree.Event) {
	SceneEventType.Publish(s.world, event)
}

// ModeStateData mirrors the scene's discrete state inside the world.
type ModeStateData struct {
	Mode    morphtree.Mode
	Gesture morphtree.Gesture
	// Changes counts mode changes seen so far.
	Changes int
	// Since is the scene time of the last mode change.
	Since float64
}

// ModeState is the component holding ModeStateData.
var ModeState = donburi.NewComponentType[ModeStateData]()

// ModeSystem keeps a single ModeState entity in sync with scene events.
type ModeSystem struct {
	entity donburi.Entity
}

// NewModeSystem creates the ModeState entity and subscribes to
// SceneEventType. Call events.ProcessAllEvents (or
// SceneEventType.ProcessEvents) each tick to apply queued events.
func NewModeSystem(world donburi.World) *ModeSystem {
	sys := &ModeSystem{entity: world.Create(ModeState)}
	SceneEventType.Subscribe(world, sys.onEvent)
	return sys
}

// State returns the current mirrored state.
func (sys *ModeSystem) State(world donburi.World) ModeStateData {
	return *ModeState.Get(world.Entry(sys.entity))
}

func (sys *ModeSystem) onEvent(w donburi.World, e morphtree.Event) {
	st := ModeState.Get(w.Entry(sys.entity))
	switch e.Type {
	case morphtree.EventModeChange:
		st.Mode = e.Mode
		st.Changes++
		st.Since = e.Time
	case morphtree.EventGesture:
		st.Gesture = e.Gesture
	}
}
