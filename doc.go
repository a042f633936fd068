// Package morphtree is the animation core of a gesture-driven particle
// display: a cloud of points that morphs between a spiral tree and a hollow
// sphere when a hand opens or closes in front of a camera.
//
// The package produces numbers, not pixels. Each frame yields particle
// positions, poses for three choreographed bodies, twinkle values for a set
// of decorations, a pulsing focal star, and mirrored copies of all of it for
// a reflective floor. Rendering, camera capture and landmark inference are
// left to collaborators; see examples/viewer (Ebitengine) and
// examples/handcam (GoCV) for both ends.
//
// # Quick start
//
// [NewScene] builds every component from a [SceneConfig]. Feed it hand
// landmarks and call [Scene.Update] once per rendered frame:
//
//	scene, err := morphtree.NewScene(morphtree.DefaultSceneConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	// each frame:
//	scene.SubmitHands(hands, frameTimestamp)
//	frame := scene.Update(dt)
//	draw(frame.Positions)
//
// # Shapes
//
// [GenerateTree] and [GenerateSphere] create the two [PointCloud] targets
// once at startup. Both take an explicit *rand.Rand; use [NewSeededRand] for
// reproducible clouds.
//
// # Gestures
//
// [Classifier] labels the first hand of a frame as open palm or closed fist
// from the distances of fingertips and knuckles to the wrist. Frames whose
// timestamp does not advance are ignored. A fist selects [ModeTree], an open
// palm [ModeSphere]; no hand changes nothing. To classify off the frame
// loop, run a [ClassifyWorker] that publishes into a [GestureSlot] and pass
// the slot to [Scene.SetGestureSource].
//
// # Animation
//
// [MorphController] eases the blend value between the clouds using
// [gween] tweens. [Engine.Step] is a closed-form function of elapsed time and
// the blend value, recomputed in full each frame into buffers the engine
// owns. Mode changes also start one-shot [Timeline]s for the star and the
// decoration group.
//
// # Events
//
// Mode and gesture changes are forwarded to an optional [EventStore]. The
// ecs submodule bridges them into a [Donburi] world.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package morphtree
