package probe

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/contactlab/internal/engine"
)

func contactWorld() *engine.Simulator {
	sim := engine.NewSimulator()
	sim.RigidObjectManager().AddObject("objects/ball", mgl64.Vec3{0, 0.08, 0}, 0.1)
	ao := sim.ArticulatedObjectManager().AddObject("urdf/arm", mgl64.Vec3{1, 0, 0})
	ao.AddLink("hand", mgl64.Vec3{0, 0.05, 0}, 0.1)
	return sim
}

func TestCheckFindsPairs(t *testing.T) {
	sim := contactWorld()

	report, err := Check(sim, DefaultOptions())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	if !report.HasContacts() {
		t.Fatal("expected active contact pairs")
	}
	if len(report.Pairs) != 2 {
		t.Fatalf("expected 2 pairs (ball vs stage, hand vs stage), got %d", len(report.Pairs))
	}
	if report.ActivePoints != 2 || report.InactivePoints != 0 {
		t.Errorf("unexpected point counts: %d active, %d inactive", report.ActivePoints, report.InactivePoints)
	}

	names := make(map[string]bool)
	for _, p := range report.Pairs {
		names[p.NameA+" vs "+p.NameB] = true
	}
	if !names["ro--ball vs stage"] {
		t.Errorf("missing rigid pair, got %v", names)
	}
	if !names["ao--arm--hand vs stage"] {
		t.Errorf("missing articulated pair, got %v", names)
	}
}

func TestCheckSortsDeepestFirst(t *testing.T) {
	sim := engine.NewSimulator()
	sim.RigidObjectManager().AddObject("shallow", mgl64.Vec3{0, 0.095, 0}, 0.1)
	sim.RigidObjectManager().AddObject("deep", mgl64.Vec3{1, 0.05, 0}, 0.1)

	report, err := Check(sim, DefaultOptions())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(report.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(report.Pairs))
	}
	if report.Pairs[0].NameA != "ro--deep" {
		t.Errorf("deepest pair should sort first, got %q", report.Pairs[0].NameA)
	}
}

func TestCheckFiltersInactive(t *testing.T) {
	sim := contactWorld()
	for _, ro := range sim.RigidObjectManager().ObjectsByHandleSubstring("") {
		ro.Sleep()
	}
	for _, ao := range sim.ArticulatedObjectManager().ObjectsByHandleSubstring("") {
		ao.Sleep()
	}

	report, err := Check(sim, DefaultOptions())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if report.HasContacts() {
		t.Errorf("sleeping world should yield no pairs, got %d", len(report.Pairs))
	}
	if report.InactivePoints != 2 {
		t.Errorf("expected 2 inactive points, got %d", report.InactivePoints)
	}
}

func TestCheckEmptyWorld(t *testing.T) {
	report, err := Check(engine.NewSimulator(), DefaultOptions())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if report.HasContacts() || report.ActivePoints != 0 {
		t.Errorf("empty world should report nothing, got %+v", report)
	}
}

func TestCheckAppliesMargin(t *testing.T) {
	build := func() *engine.Simulator {
		sim := engine.NewSimulator()
		sim.RigidObjectManager().AddObject("ball", mgl64.Vec3{0, 0.15, 0}, 0.1)
		return sim
	}

	report, err := Check(build(), DefaultOptions())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if report.HasContacts() {
		t.Fatal("default margin should not see a 0.05 gap")
	}

	opts := DefaultOptions()
	opts.Margin = 0.1
	report, err = Check(build(), opts)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(report.Pairs) != 1 {
		t.Fatalf("expected 1 near pair at margin 0.1, got %d", len(report.Pairs))
	}
	if report.Pairs[0].MaxDistance < 0 {
		t.Errorf("near contact should have positive distance, got %v", report.Pairs[0].MaxDistance)
	}
}

func TestReportFormat(t *testing.T) {
	sim := contactWorld()
	report, err := Check(sim, DefaultOptions())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	report.SceneID = "test_scene"

	text := report.Format()
	for _, want := range []string{"check contacts", "test_scene", "Active contact pairs:", "ro--ball", "stage"} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}

func TestMaxPenetration(t *testing.T) {
	report := &Report{Pairs: []PairEntry{
		{MaxDistance: -0.01},
		{MaxDistance: -0.04},
		{MaxDistance: 0.002},
	}}
	if got := report.MaxPenetration(); got != -0.04 {
		t.Errorf("expected -0.04, got %v", got)
	}

	empty := &Report{}
	if got := empty.MaxPenetration(); got != 0 {
		t.Errorf("expected 0 for empty report, got %v", got)
	}
}

func TestDebugDrawContacts(t *testing.T) {
	sim := contactWorld()
	sim.PerformDiscreteCollisionDetection()

	DebugDrawContacts(sim)

	dlr := sim.DebugLineRender()
	if len(dlr.Lines()) != 2 || len(dlr.Circles()) != 2 {
		t.Fatalf("expected 2 lines and 2 circles, got %d/%d", len(dlr.Lines()), len(dlr.Circles()))
	}
	for _, l := range dlr.Lines() {
		if l.Color != engine.ColorYellow {
			t.Errorf("normal segments should be yellow, got %+v", l.Color)
		}
	}
	for _, c := range dlr.Circles() {
		if c.Color != engine.ColorRed || c.Radius != 0.02 {
			t.Errorf("contact markers should be red radius 0.02, got %+v", c)
		}
	}
}
