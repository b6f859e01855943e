package engine

import "github.com/go-gl/mathgl/mgl64"

// StageID is the object id of the static stage geometry.
const StageID = -1

// BaseLinkID addresses the base of an articulated object (and is the link
// id reported for rigid bodies and the stage, which have no links).
const BaseLinkID = -1

// ContactPoint is a single collision sample between two bodies, produced
// by a discrete collision detection pass. ContactDistance is negative when
// the bodies interpenetrate; the normal points from B toward A.
type ContactPoint struct {
	ObjectIDA int
	ObjectIDB int
	LinkIDA   int
	LinkIDB   int

	PositionOnAInWS mgl64.Vec3
	PositionOnBInWS mgl64.Vec3
	NormalOnBInWS   mgl64.Vec3

	ContactDistance float64
	IsActive        bool
}

// idSource hands out globally unique object ids across both managers.
type idSource struct {
	next int
}

func (s *idSource) alloc() int {
	id := s.next
	s.next++
	return id
}
