package probe

import (
	"context"

	"github.com/san-kum/contactlab/internal/engine"
	"github.com/san-kum/contactlab/internal/scene"
)

// Scanner sweeps forward through a scene dataset looking for the next
// scene that produces active contact pairs. It remembers the index of the
// last scene it reported so consecutive sweeps walk the whole dataset.
type Scanner struct {
	ds   *scene.Dataset
	opts Options

	last    int
	sim     *engine.Simulator
	sceneID string
}

// NewScanner returns a scanner positioned before the first scene.
func NewScanner(ds *scene.Dataset, opts Options) *Scanner {
	return &Scanner{ds: ds, opts: opts, last: -1}
}

// Current returns the simulator and scene id of the last hit, or nil when
// no sweep has hit yet.
func (s *Scanner) Current() (*engine.Simulator, string) {
	return s.sim, s.sceneID
}

// Sweep scans forward starting just after the last-checked scene,
// rebuilding each scene, letting it settle and checking it, until a scene
// yields at least one active contact pair. When the list is exhausted
// without a hit the cursor wraps back to the start and an empty report is
// returned.
func (s *Scanner) Sweep(ctx context.Context) (*Report, error) {
	for i := s.last + 1; i < len(s.ds.Scenes); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sc := &s.ds.Scenes[i]
		sim := sc.Build()
		if err := settle(sim, s.opts); err != nil {
			return nil, err
		}

		report, err := Check(sim, s.opts)
		if err != nil {
			return nil, err
		}
		report.SceneID = sc.ID

		if report.HasContacts() {
			s.last = i
			s.sim = sim
			s.sceneID = sc.ID
			return report, nil
		}
	}

	// exhausted: wrap so the next sweep starts from the first scene
	s.last = -1
	return &Report{}, nil
}

// settle steps a freshly built world so resting contacts can form before
// the check.
func settle(sim *engine.Simulator, opts Options) error {
	for i := 0; i < opts.SettleSteps; i++ {
		if err := sim.StepWorld(opts.Dt); err != nil {
			return err
		}
	}
	return nil
}
