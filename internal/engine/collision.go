package engine

import "github.com/go-gl/mathgl/mgl64"

// collisionProxy is one sphere participating in the collision pass, tagged
// with the ids a contact point reports for it.
type collisionProxy struct {
	objectID int
	linkID   int
	center   mgl64.Vec3
	radius   float64
	awake    bool
}

// aabb is an axis-aligned box used to cull proxy pairs before the sphere
// test.
type aabb struct {
	min, max mgl64.Vec3
}

func sphereAABB(center mgl64.Vec3, radius float64) aabb {
	r := mgl64.Vec3{radius, radius, radius}
	return aabb{min: center.Sub(r), max: center.Add(r)}
}

func (a aabb) overlaps(b aabb, margin float64) bool {
	for i := 0; i < 3; i++ {
		if a.min[i]-margin > b.max[i] || b.min[i]-margin > a.max[i] {
			return false
		}
	}
	return true
}

// buildProxies flattens the world into collision proxies: every rigid body
// and every articulated link. The stage plane is handled separately.
func (s *Simulator) buildProxies() []collisionProxy {
	var proxies []collisionProxy
	for _, ro := range s.rom.all() {
		proxies = append(proxies, collisionProxy{
			objectID: ro.objectID,
			linkID:   BaseLinkID,
			center:   ro.Position,
			radius:   ro.Radius,
			awake:    ro.awake,
		})
	}
	for _, ao := range s.aom.all() {
		for _, l := range ao.links {
			proxies = append(proxies, collisionProxy{
				objectID: ao.objectID,
				linkID:   l.index,
				center:   ao.Position.Add(l.Offset),
				radius:   l.Radius,
				awake:    ao.awake,
			})
		}
	}
	return proxies
}

// PerformDiscreteCollisionDetection runs one narrowphase pass over all
// proxy pairs and the stage plane, replacing the contact point snapshot.
func (s *Simulator) PerformDiscreteCollisionDetection() {
	s.contacts = s.contacts[:0]
	proxies := s.buildProxies()

	for i := 0; i < len(proxies); i++ {
		a := proxies[i]
		boxA := sphereAABB(a.center, a.radius)
		for j := i + 1; j < len(proxies); j++ {
			b := proxies[j]
			if a.objectID == b.objectID {
				// links of the same body do not self-collide
				continue
			}
			if !boxA.overlaps(sphereAABB(b.center, b.radius), s.margin) {
				continue
			}
			if cp, ok := sphereSphere(a, b, s.margin); ok {
				s.contacts = append(s.contacts, cp)
			}
		}
		if cp, ok := sphereStage(a, s.margin); ok {
			s.contacts = append(s.contacts, cp)
		}
	}
}

// sphereSphere produces a contact when two proxies are within the contact
// margin. The normal points from b toward a.
func sphereSphere(a, b collisionProxy, margin float64) (ContactPoint, bool) {
	d := a.center.Sub(b.center)
	centerDist := d.Len()
	dist := centerDist - (a.radius + b.radius)
	if dist >= margin {
		return ContactPoint{}, false
	}

	normal := mgl64.Vec3{0, 1, 0}
	if centerDist > 1e-12 {
		normal = d.Mul(1 / centerDist)
	}

	return ContactPoint{
		ObjectIDA:       a.objectID,
		ObjectIDB:       b.objectID,
		LinkIDA:         a.linkID,
		LinkIDB:         b.linkID,
		PositionOnAInWS: a.center.Sub(normal.Mul(a.radius)),
		PositionOnBInWS: b.center.Add(normal.Mul(b.radius)),
		NormalOnBInWS:   normal,
		ContactDistance: dist,
		IsActive:        a.awake || b.awake,
	}, true
}

// sphereStage produces a contact against the y=0 stage plane. The stage is
// always body B.
func sphereStage(a collisionProxy, margin float64) (ContactPoint, bool) {
	dist := a.center.Y() - a.radius
	if dist >= margin {
		return ContactPoint{}, false
	}

	up := mgl64.Vec3{0, 1, 0}
	return ContactPoint{
		ObjectIDA:       a.objectID,
		ObjectIDB:       StageID,
		LinkIDA:         a.linkID,
		LinkIDB:         BaseLinkID,
		PositionOnAInWS: a.center.Sub(up.Mul(a.radius)),
		PositionOnBInWS: mgl64.Vec3{a.center.X(), 0, a.center.Z()},
		NormalOnBInWS:   up,
		ContactDistance: dist,
		IsActive:        a.awake,
	}, true
}
