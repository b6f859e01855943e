package engine

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Link is one collision proxy of an articulated object. Offset is relative
// to the object's base position.
type Link struct {
	name     string
	objectID int
	index    int

	Offset mgl64.Vec3
	Radius float64
}

func (l *Link) Name() string  { return l.name }
func (l *Link) ObjectID() int { return l.objectID }
func (l *Link) Index() int    { return l.index }

// ArticulatedObject is a multi-link body addressed by object id plus link
// id. The base does not collide; all collision proxies are links.
type ArticulatedObject struct {
	objectID int
	handle   string
	baseName string

	Position mgl64.Vec3
	links    []*Link

	awake bool
	ids   *idSource
}

func (ao *ArticulatedObject) ObjectID() int  { return ao.objectID }
func (ao *ArticulatedObject) Handle() string { return ao.handle }
func (ao *ArticulatedObject) Awake() bool    { return ao.awake }
func (ao *ArticulatedObject) NumLinks() int  { return len(ao.links) }

// Link returns the link with the given index, or nil when out of range.
func (ao *ArticulatedObject) Link(index int) *Link {
	if index < 0 || index >= len(ao.links) {
		return nil
	}
	return ao.links[index]
}

// Wake marks the body active.
func (ao *ArticulatedObject) Wake() { ao.awake = true }

// Sleep deactivates the body.
func (ao *ArticulatedObject) Sleep() { ao.awake = false }

// AddLink appends a link proxy and returns it. Link ids are assigned in
// insertion order starting at 0.
func (ao *ArticulatedObject) AddLink(name string, offset mgl64.Vec3, radius float64) *Link {
	l := &Link{
		name:     name,
		objectID: ao.ids.alloc(),
		index:    len(ao.links),
		Offset:   offset,
		Radius:   radius,
	}
	ao.links = append(ao.links, l)
	return l
}

// LinkName resolves a link id to its name. BaseLinkID names the base.
func (ao *ArticulatedObject) LinkName(linkID int) (string, error) {
	if linkID == BaseLinkID {
		return ao.baseName, nil
	}
	if linkID < 0 || linkID >= len(ao.links) {
		return "", ErrUnknownLink
	}
	return ao.links[linkID].name, nil
}

// LinkObjectIDs maps each link's own object id to its link index.
func (ao *ArticulatedObject) LinkObjectIDs() map[int]int {
	out := make(map[int]int, len(ao.links))
	for _, l := range ao.links {
		out[l.objectID] = l.index
	}
	return out
}

// LinkWorldPosition returns the world-space center of a link proxy.
func (ao *ArticulatedObject) LinkWorldPosition(linkID int) (mgl64.Vec3, error) {
	if linkID < 0 || linkID >= len(ao.links) {
		return mgl64.Vec3{}, ErrUnknownLink
	}
	return ao.Position.Add(ao.links[linkID].Offset), nil
}

// ArticulatedObjectManager is the registry of articulated objects.
type ArticulatedObjectManager struct {
	ids     *idSource
	objects map[int]*ArticulatedObject
	order   []int
}

func newArticulatedObjectManager(ids *idSource) *ArticulatedObjectManager {
	return &ArticulatedObjectManager{
		ids:     ids,
		objects: make(map[int]*ArticulatedObject),
	}
}

// AddObject registers an articulated object with no links yet.
func (m *ArticulatedObjectManager) AddObject(handle string, position mgl64.Vec3) *ArticulatedObject {
	ao := &ArticulatedObject{
		objectID: m.ids.alloc(),
		handle:   handle,
		baseName: "base",
		Position: position,
		awake:    true,
		ids:      m.ids,
	}
	m.objects[ao.objectID] = ao
	m.order = append(m.order, ao.objectID)
	return ao
}

// LibraryHasID reports whether the registry contains the object id.
func (m *ArticulatedObjectManager) LibraryHasID(objectID int) bool {
	_, ok := m.objects[objectID]
	return ok
}

// ObjectByID returns the articulated object or ErrInvalidObjectID.
func (m *ArticulatedObjectManager) ObjectByID(objectID int) (*ArticulatedObject, error) {
	ao, ok := m.objects[objectID]
	if !ok {
		return nil, ErrInvalidObjectID
	}
	return ao, nil
}

// ObjectsByHandleSubstring returns all objects whose handle contains the
// substring, keyed by handle. An empty substring matches everything.
func (m *ArticulatedObjectManager) ObjectsByHandleSubstring(sub string) map[string]*ArticulatedObject {
	out := make(map[string]*ArticulatedObject)
	for _, ao := range m.objects {
		if sub == "" || strings.Contains(ao.handle, sub) {
			out[ao.handle] = ao
		}
	}
	return out
}

func (m *ArticulatedObjectManager) all() []*ArticulatedObject {
	out := make([]*ArticulatedObject, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.objects[id])
	}
	return out
}
