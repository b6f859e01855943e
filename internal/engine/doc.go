// Package engine provides the small rigid-body world the contact tooling
// inspects.
//
// The package defines the simulator surface the rest of the tool reads:
//
//   - [Simulator]: owns the stage, object managers and debug renderer
//   - [ContactPoint]: one collision sample from a detection pass
//   - [RigidObjectManager]: registry of single-transform bodies
//   - [ArticulatedObjectManager]: registry of multi-link bodies
//   - [DebugLineRender]: frame buffer of debug line/circle primitives
//
// # Example
//
//	sim := engine.NewSimulator()
//	sim.RigidObjectManager().AddObject("ball", mgl64.Vec3{0, 0.05, 0}, 0.1)
//	sim.PerformDiscreteCollisionDetection()
//	cps := sim.ContactPoints()
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. All calls are expected to come
// from a single input loop, which is how the viewer drives them.
package engine
