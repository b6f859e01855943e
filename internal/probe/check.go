package probe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/contactlab/internal/contacts"
	"github.com/san-kum/contactlab/internal/engine"
)

// Options configure a contact check.
type Options struct {
	// LinkResolution includes link ids in pair keys, splitting articulated
	// bodies into per-link pairs.
	LinkResolution bool
	// SettleSteps and Dt let a freshly built scene step under gravity
	// before checking, so resting contacts form.
	SettleSteps int
	Dt          float64
	// Margin is the contact detection margin applied to the world before
	// the pass. Zero keeps the engine default.
	Margin float64
}

// DefaultOptions mirror the interactive viewer's check binding.
func DefaultOptions() Options {
	return Options{
		LinkResolution: true,
		SettleSteps:    0,
		Dt:             0.01,
		Margin:         engine.DefaultContactMargin,
	}
}

// PairEntry is one aggregated contact pair with resolved names.
type PairEntry struct {
	Key         contacts.PairKey
	NameA       string
	NameB       string
	MaxDistance float64
}

// Report is the result of one contact check on one scene.
type Report struct {
	SceneID        string
	ActivePoints   int
	InactivePoints int
	Pairs          []PairEntry
}

// HasContacts reports whether the check found any active contact pair.
func (r *Report) HasContacts() bool { return len(r.Pairs) > 0 }

// MaxPenetration returns the deepest penetration across all pairs (the
// most negative distance), or 0 when there are no pairs.
func (r *Report) MaxPenetration() float64 {
	depth := 0.0
	for _, p := range r.Pairs {
		if p.MaxDistance < depth {
			depth = p.MaxDistance
		}
	}
	return depth
}

// Format renders the report as the text block the viewer and CLI print.
func (r *Report) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "-------------- check contacts --------------\n")
	if r.SceneID != "" {
		fmt.Fprintf(&b, "scene: %s\n", r.SceneID)
	}
	fmt.Fprintf(&b, "active points: %d  inactive points: %d\n", r.ActivePoints, r.InactivePoints)
	fmt.Fprintf(&b, "Active contact pairs:\n")
	for _, p := range r.Pairs {
		fmt.Fprintf(&b, "    (%s vs %s): %g\n", p.NameA, p.NameB, p.MaxDistance)
		fmt.Fprintf(&b, "        : %s: %g\n", p.Key, p.MaxDistance)
	}
	fmt.Fprintf(&b, "-------------- done check contacts --------------")
	return b.String()
}

// Check runs one discrete collision detection pass, aggregates the active
// contact points into pairs and resolves their names. Deepest penetrating
// pairs sort first.
func Check(sim *engine.Simulator, opts Options) (*Report, error) {
	if opts.Margin > 0 {
		sim.SetContactMargin(opts.Margin)
	}
	sim.PerformDiscreteCollisionDetection()
	cps := sim.ContactPoints()

	active := make([]engine.ContactPoint, 0, len(cps))
	for _, cp := range cps {
		if cp.IsActive {
			active = append(active, cp)
		}
	}

	pairs := contacts.Pairs(active, opts.LinkResolution)

	report := &Report{
		ActivePoints:   len(active),
		InactivePoints: len(cps) - len(active),
		Pairs:          make([]PairEntry, 0, len(pairs)),
	}

	for key, dist := range pairs {
		linkA, linkB := engine.BaseLinkID, engine.BaseLinkID
		if key.LinkResolved {
			linkA, linkB = key.LinkA, key.LinkB
		}
		nameA, err := contacts.ComponentName(sim, key.ObjectA, linkA)
		if err != nil {
			return nil, err
		}
		nameB, err := contacts.ComponentName(sim, key.ObjectB, linkB)
		if err != nil {
			return nil, err
		}
		report.Pairs = append(report.Pairs, PairEntry{
			Key:         key,
			NameA:       nameA,
			NameB:       nameB,
			MaxDistance: dist,
		})
	}

	sort.Slice(report.Pairs, func(i, j int) bool {
		if report.Pairs[i].MaxDistance != report.Pairs[j].MaxDistance {
			return report.Pairs[i].MaxDistance < report.Pairs[j].MaxDistance
		}
		return report.Pairs[i].Key.String() < report.Pairs[j].Key.String()
	})

	return report, nil
}

// DebugDrawContacts queues a visualization of the active contact points:
// a yellow segment along the contact normal scaled by the contact
// distance, and a red circle at the contact position.
func DebugDrawContacts(sim *engine.Simulator) {
	dlr := sim.DebugLineRender()
	for _, cp := range sim.ContactPoints() {
		if !cp.IsActive {
			continue
		}
		dlr.DrawTransformedLine(
			cp.PositionOnBInWS,
			cp.PositionOnBInWS.Add(cp.NormalOnBInWS.Mul(cp.ContactDistance)),
			engine.ColorYellow,
		)
		dlr.DrawCircle(cp.PositionOnBInWS, 0.02, engine.ColorRed)
	}
}
