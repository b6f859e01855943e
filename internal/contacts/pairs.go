package contacts

import (
	"fmt"

	"github.com/san-kum/contactlab/internal/engine"
)

// PairKey identifies two bodies in contact. With LinkResolved set the key
// also carries the link ids, refining the grouping.
type PairKey struct {
	ObjectA, ObjectB int
	LinkA, LinkB     int
	LinkResolved     bool
}

func (k PairKey) String() string {
	if k.LinkResolved {
		return fmt.Sprintf("(%d, %d, %d, %d)", k.ObjectA, k.ObjectB, k.LinkA, k.LinkB)
	}
	return fmt.Sprintf("(%d, %d)", k.ObjectA, k.ObjectB)
}

// Pairs folds contact points into a map from pair key to the maximum
// contact distance observed for that key. With linkResolution the link ids
// join the key, so the result can only gain distinct keys, never lose
// them. An empty input yields an empty map.
func Pairs(points []engine.ContactPoint, linkResolution bool) map[PairKey]float64 {
	pairs := make(map[PairKey]float64, len(points))
	for _, cp := range points {
		key := PairKey{ObjectA: cp.ObjectIDA, ObjectB: cp.ObjectIDB}
		if linkResolution {
			key.LinkA = cp.LinkIDA
			key.LinkB = cp.LinkIDB
			key.LinkResolved = true
		}
		if dist, ok := pairs[key]; !ok || cp.ContactDistance > dist {
			pairs[key] = cp.ContactDistance
		}
	}
	return pairs
}
