package probe

import (
	"context"
	"testing"

	"github.com/san-kum/contactlab/internal/scene"
)

func sweepDataset() *scene.Dataset {
	return &scene.Dataset{
		Name: "sweep_test",
		Scenes: []scene.Scene{
			{
				ID: "floating",
				RigidObjects: []scene.RigidSpec{
					{Handle: "ball", Position: [3]float64{0, 1.0, 0}, Radius: 0.1},
				},
			},
			{
				ID: "touching",
				RigidObjects: []scene.RigidSpec{
					{Handle: "ball", Position: [3]float64{0, 0.05, 0}, Radius: 0.1},
				},
			},
			{
				ID: "separated",
				RigidObjects: []scene.RigidSpec{
					{Handle: "a", Position: [3]float64{-1, 1.0, 0}, Radius: 0.1},
					{Handle: "b", Position: [3]float64{1, 1.0, 0}, Radius: 0.1},
				},
			},
		},
	}
}

func TestSweepStopsAtFirstHit(t *testing.T) {
	scanner := NewScanner(sweepDataset(), DefaultOptions())

	report, err := scanner.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if !report.HasContacts() {
		t.Fatal("expected the sweep to find contacts")
	}
	if report.SceneID != "touching" {
		t.Errorf("expected scene touching, got %q", report.SceneID)
	}

	sim, sceneID := scanner.Current()
	if sim == nil || sceneID != "touching" {
		t.Errorf("scanner should hold the hit scene, got %q", sceneID)
	}
}

func TestSweepResumesAfterLastHit(t *testing.T) {
	scanner := NewScanner(sweepDataset(), DefaultOptions())

	first, err := scanner.Sweep(context.Background())
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	if first.SceneID != "touching" {
		t.Fatalf("expected touching, got %q", first.SceneID)
	}

	// resumes after the hit: only "separated" remains, so the sweep
	// exhausts the list and wraps
	second, err := scanner.Sweep(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if second.HasContacts() {
		t.Errorf("expected empty report after exhausting the list, got %+v", second)
	}

	// wrapped: the next sweep starts from the first scene again
	third, err := scanner.Sweep(context.Background())
	if err != nil {
		t.Fatalf("third sweep failed: %v", err)
	}
	if third.SceneID != "touching" {
		t.Errorf("expected touching after wrap, got %q", third.SceneID)
	}
}

func TestSweepNoContactsAnywhere(t *testing.T) {
	ds := sweepDataset()
	ds.Scenes = ds.Scenes[:1] // only the floating scene
	scanner := NewScanner(ds, DefaultOptions())

	report, err := scanner.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if report.HasContacts() {
		t.Errorf("expected no contacts, got %+v", report)
	}

	if sim, _ := scanner.Current(); sim != nil {
		t.Error("scanner should not hold a world without a hit")
	}
}

func TestSweepHonorsContactMargin(t *testing.T) {
	// ball hovers 0.05 above the stage: only visible at a widened margin
	ds := &scene.Dataset{
		Name: "margin_test",
		Scenes: []scene.Scene{
			{
				ID: "hovering",
				RigidObjects: []scene.RigidSpec{
					{Handle: "ball", Position: [3]float64{0, 0.15, 0}, Radius: 0.1},
				},
			},
		},
	}

	report, err := NewScanner(ds, DefaultOptions()).Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if report.HasContacts() {
		t.Fatal("default margin should not see the hovering ball")
	}

	opts := DefaultOptions()
	opts.Margin = 0.1

	direct, err := Check(ds.Scenes[0].Build(), opts)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(direct.Pairs) != 1 {
		t.Fatalf("direct check at margin 0.1 should find 1 pair, got %d", len(direct.Pairs))
	}

	swept, err := NewScanner(ds, opts).Sweep(context.Background())
	if err != nil {
		t.Fatalf("margin sweep failed: %v", err)
	}
	if len(swept.Pairs) != len(direct.Pairs) {
		t.Errorf("sweep found %d pairs where a direct check finds %d", len(swept.Pairs), len(direct.Pairs))
	}
	if swept.SceneID != "hovering" {
		t.Errorf("expected scene hovering, got %q", swept.SceneID)
	}
}

func TestSweepCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewScanner(sweepDataset(), DefaultOptions())
	if _, err := scanner.Sweep(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSweepSettlesScenes(t *testing.T) {
	ds := &scene.Dataset{
		Name: "settle_test",
		Scenes: []scene.Scene{
			{
				ID: "dropping",
				RigidObjects: []scene.RigidSpec{
					{Handle: "ball", Position: [3]float64{0, 0.3, 0}, Radius: 0.1},
				},
			},
		},
	}

	opts := DefaultOptions()
	scanner := NewScanner(ds, opts)
	report, err := scanner.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if report.HasContacts() {
		t.Fatal("without settling the ball should still be airborne")
	}

	// long enough to land, short enough that the body has not slept yet
	opts.SettleSteps = 40
	scanner = NewScanner(ds, opts)
	report, err = scanner.Sweep(context.Background())
	if err != nil {
		t.Fatalf("settled sweep failed: %v", err)
	}
	if !report.HasContacts() {
		t.Error("after settling the ball should rest on the stage")
	}
}
