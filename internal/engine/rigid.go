package engine

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// RigidObject is a non-articulated body with a single transform. Only
// sphere collision shapes are supported; Static bodies never move.
type RigidObject struct {
	objectID int
	handle   string

	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Radius   float64
	Static   bool

	awake      bool
	slowFrames int
}

func (ro *RigidObject) ObjectID() int  { return ro.objectID }
func (ro *RigidObject) Handle() string { return ro.handle }
func (ro *RigidObject) Awake() bool    { return ro.awake }

// Wake marks the body active so its contacts report as active again.
func (ro *RigidObject) Wake() {
	if !ro.Static {
		ro.awake = true
		ro.slowFrames = 0
	}
}

// Sleep deactivates the body.
func (ro *RigidObject) Sleep() { ro.awake = false }

// RigidObjectManager is the registry of rigid objects, keyed by object id.
type RigidObjectManager struct {
	ids     *idSource
	objects map[int]*RigidObject
	order   []int
}

func newRigidObjectManager(ids *idSource) *RigidObjectManager {
	return &RigidObjectManager{
		ids:     ids,
		objects: make(map[int]*RigidObject),
	}
}

// AddObject registers a dynamic sphere body and returns it awake.
func (m *RigidObjectManager) AddObject(handle string, position mgl64.Vec3, radius float64) *RigidObject {
	ro := &RigidObject{
		objectID: m.ids.alloc(),
		handle:   handle,
		Position: position,
		Radius:   radius,
		awake:    true,
	}
	m.objects[ro.objectID] = ro
	m.order = append(m.order, ro.objectID)
	return ro
}

// AddStaticObject registers a sphere body that never moves or wakes.
func (m *RigidObjectManager) AddStaticObject(handle string, position mgl64.Vec3, radius float64) *RigidObject {
	ro := m.AddObject(handle, position, radius)
	ro.Static = true
	ro.awake = false
	return ro
}

// LibraryHasID reports whether the registry contains the object id.
func (m *RigidObjectManager) LibraryHasID(objectID int) bool {
	_, ok := m.objects[objectID]
	return ok
}

// ObjectByID returns the rigid object or ErrInvalidObjectID.
func (m *RigidObjectManager) ObjectByID(objectID int) (*RigidObject, error) {
	ro, ok := m.objects[objectID]
	if !ok {
		return nil, ErrInvalidObjectID
	}
	return ro, nil
}

// ObjectsByHandleSubstring returns all objects whose handle contains the
// substring, keyed by handle. An empty substring matches everything.
func (m *RigidObjectManager) ObjectsByHandleSubstring(sub string) map[string]*RigidObject {
	out := make(map[string]*RigidObject)
	for _, ro := range m.objects {
		if sub == "" || strings.Contains(ro.handle, sub) {
			out[ro.handle] = ro
		}
	}
	return out
}

// all returns the registered objects in insertion order.
func (m *RigidObjectManager) all() []*RigidObject {
	out := make([]*RigidObject, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.objects[id])
	}
	return out
}
