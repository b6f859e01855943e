package engine

import "github.com/go-gl/mathgl/mgl64"

const (
	// DefaultContactMargin is the distance under which a proxy pair emits a
	// contact point.
	DefaultContactMargin = 0.01

	sleepVelocity = 0.02
	sleepFrames   = 30
)

// Simulator owns the stage, the object registries, the contact point
// snapshot from the last collision pass and the debug renderer.
type Simulator struct {
	ids *idSource
	rom *RigidObjectManager
	aom *ArticulatedObjectManager
	dlr *DebugLineRender

	gravity  mgl64.Vec3
	margin   float64
	contacts []ContactPoint
}

// NewSimulator returns an empty world with the y=0 stage plane, default
// gravity and contact margin.
func NewSimulator() *Simulator {
	ids := &idSource{}
	return &Simulator{
		ids:     ids,
		rom:     newRigidObjectManager(ids),
		aom:     newArticulatedObjectManager(ids),
		dlr:     newDebugLineRender(),
		gravity: mgl64.Vec3{0, -9.81, 0},
		margin:  DefaultContactMargin,
	}
}

func (s *Simulator) RigidObjectManager() *RigidObjectManager             { return s.rom }
func (s *Simulator) ArticulatedObjectManager() *ArticulatedObjectManager { return s.aom }
func (s *Simulator) DebugLineRender() *DebugLineRender                   { return s.dlr }

// SetContactMargin overrides the contact detection margin.
func (s *Simulator) SetContactMargin(margin float64) { s.margin = margin }

// SetGravity overrides the world gravity vector.
func (s *Simulator) SetGravity(g mgl64.Vec3) { s.gravity = g }

// ContactPoints returns a copy of the snapshot from the last collision
// detection pass.
func (s *Simulator) ContactPoints() []ContactPoint {
	out := make([]ContactPoint, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// StepWorld advances dynamic rigid bodies one fixed timestep under
// gravity. Bodies resting on the stage lose vertical velocity and fall
// asleep after staying slow for a while. Articulated objects are
// kinematic and never move.
func (s *Simulator) StepWorld(dt float64) error {
	if dt <= 0 {
		return ErrBadTimestep
	}

	for _, ro := range s.rom.all() {
		if ro.Static || !ro.awake {
			continue
		}

		ro.Velocity = ro.Velocity.Add(s.gravity.Mul(dt))
		ro.Position = ro.Position.Add(ro.Velocity.Mul(dt))

		if ro.Position.Y() < ro.Radius {
			ro.Position[1] = ro.Radius
			ro.Velocity[1] = 0
		}

		if ro.Velocity.Len() < sleepVelocity {
			ro.slowFrames++
			if ro.slowFrames >= sleepFrames {
				ro.awake = false
			}
		} else {
			ro.slowFrames = 0
		}
	}
	return nil
}
