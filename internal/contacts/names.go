package contacts

import (
	"fmt"
	"path"

	"github.com/san-kum/contactlab/internal/engine"
)

// StageName labels the static background geometry (object id -1).
const StageName = "stage"

// ComponentName resolves one side of a contact pair to a descriptive
// string: "stage" for the stage id, "ro--<handle>" for rigid objects and
// "ao--<handle>--<link>" for articulated links. Handles keep only their
// last path segment. An id known to neither registry fails with
// engine.ErrInvalidObjectID.
func ComponentName(sim *engine.Simulator, objectID, linkID int) (string, error) {
	if objectID == engine.StageID {
		return StageName, nil
	}

	rom := sim.RigidObjectManager()
	if rom.LibraryHasID(objectID) {
		ro, err := rom.ObjectByID(objectID)
		if err != nil {
			return "", err
		}
		return "ro--" + path.Base(ro.Handle()), nil
	}

	aom := sim.ArticulatedObjectManager()
	if aom.LibraryHasID(objectID) {
		ao, err := aom.ObjectByID(objectID)
		if err != nil {
			return "", err
		}
		linkName, err := ao.LinkName(linkID)
		if err != nil {
			return "", fmt.Errorf("object %d: %w", objectID, err)
		}
		return "ao--" + path.Base(ao.Handle()) + "--" + linkName, nil
	}

	return "", fmt.Errorf("object %d: %w", objectID, engine.ErrInvalidObjectID)
}

// AllObjectIDs builds a map of every object id in the world to a
// descriptive name, including one entry per articulated link object id.
func AllObjectIDs(sim *engine.Simulator) map[int]string {
	ids := make(map[int]string)

	for _, ro := range sim.RigidObjectManager().ObjectsByHandleSubstring("") {
		ids[ro.ObjectID()] = ro.Handle()
	}

	for _, ao := range sim.ArticulatedObjectManager().ObjectsByHandleSubstring("") {
		ids[ao.ObjectID()] = ao.Handle()
		for linkObjectID, linkIx := range ao.LinkObjectIDs() {
			name, err := ao.LinkName(linkIx)
			if err != nil {
				continue
			}
			ids[linkObjectID] = ao.Handle() + " -- " + name
		}
	}

	return ids
}
