package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/contactlab/internal/engine"
)

// Build instantiates a fresh simulator world for the scene. Reloading a
// scene means building it again; object ids are only stable within one
// build.
func (sc *Scene) Build() *engine.Simulator {
	sim := engine.NewSimulator()

	rom := sim.RigidObjectManager()
	for _, spec := range sc.RigidObjects {
		if spec.Static {
			rom.AddStaticObject(spec.Handle, mgl64.Vec3(spec.Position), spec.Radius)
		} else {
			rom.AddObject(spec.Handle, mgl64.Vec3(spec.Position), spec.Radius)
		}
	}

	aom := sim.ArticulatedObjectManager()
	for _, spec := range sc.ArticulatedObjects {
		ao := aom.AddObject(spec.Handle, mgl64.Vec3(spec.Position))
		for _, l := range spec.Links {
			ao.AddLink(l.Name, mgl64.Vec3(l.Offset), l.Radius)
		}
	}

	return sim
}

// BuildByID is a convenience wrapper: look up the scene and build it.
func (ds *Dataset) BuildByID(id string) (*engine.Simulator, error) {
	sc, err := ds.SceneByID(id)
	if err != nil {
		return nil, err
	}
	return sc.Build(), nil
}
