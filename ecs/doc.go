// Package ecs provides ECS adapters for morphtree's scene events.
//
// The primary adapter is [NewDonburiStore], which bridges morphtree events
// (mode changes and stabilized gesture changes) into a [Donburi] world as
// typed events. Subscribe to [SceneEventType] in your ECS systems to receive
// them, or use [ModeSystem] to keep a singleton [ModeState] component current.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
