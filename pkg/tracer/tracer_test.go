package tracer

import (
	"math"
	"testing"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/component"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
)

func mustLayout(t *testing.T, components []component.Component) *component.Layout {
	t.Helper()
	layout, err := component.NewLayout(components, component.DefaultBounds)
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	return layout
}

func mustResolve(t *testing.T, tr *Tracer, layout *component.Layout, controls Controls) *Trace {
	t.Helper()
	trace, err := tr.Resolve(layout, controls)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return trace
}

// assertContiguous checks that a path starts at the source position and each
// segment begins where the previous one ended
func assertContiguous(t *testing.T, path core.Path, source core.Vec2) {
	t.Helper()
	if len(path.Segments) == 0 {
		t.Fatal("path has no segments")
	}
	if path.Segments[0].Start.Subtract(source).Length() > 1e-9 {
		t.Errorf("path starts at %v, expected source %v", path.Segments[0].Start, source)
	}
	for i := 1; i < len(path.Segments); i++ {
		gap := path.Segments[i].Start.Subtract(path.Segments[i-1].End).Length()
		if gap > 1e-9 {
			t.Errorf("segment %d starts %v away from the previous end", i, gap)
		}
	}
}

func TestResolve_StraightToDetector(t *testing.T) {
	layout := mustLayout(t, []component.Component{
		{ID: "src", Kind: component.KindSource, Position: core.NewVec2(100, 300), Properties: component.Properties{"angle": 0.0}},
		{ID: "d1", Kind: component.KindDetector, Position: core.NewVec2(400, 300), Properties: component.Properties{"angle": 180.0}},
	})

	trace := mustResolve(t, New(DefaultConfig()), layout, Controls{})

	if len(trace.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(trace.Nodes))
	}
	if len(trace.Paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(trace.Paths))
	}

	path := trace.Paths[0]
	if path.Status != core.StatusHitDetector {
		t.Errorf("status = %q, expected %q", path.Status, core.StatusHitDetector)
	}
	if path.DetectorID != "d1" {
		t.Errorf("DetectorID = %q, expected d1", path.DetectorID)
	}
	if !trace.DetectorHit() {
		t.Error("DetectorHit() = false, expected true")
	}
	if math.Abs(path.Length-300) > 1e-9 {
		t.Errorf("Length = %v, expected 300", path.Length)
	}
	if math.Abs(path.Weight-1.0) > 1e-12 {
		t.Errorf("Weight = %v, expected 1.0", path.Weight)
	}
	assertContiguous(t, path, core.NewVec2(100, 300))
}

func TestResolve_NoSource(t *testing.T) {
	layout := mustLayout(t, []component.Component{
		{ID: "m1", Kind: component.KindMirror, Position: core.NewVec2(400, 300), Properties: component.Properties{"angle": 45.0}},
	})

	trace := mustResolve(t, New(DefaultConfig()), layout, Controls{})

	if len(trace.Nodes) != 0 || len(trace.Paths) != 0 {
		t.Errorf("expected empty trace, got %d nodes and %d paths", len(trace.Nodes), len(trace.Paths))
	}
	if trace.DetectorHit() {
		t.Error("DetectorHit() = true for empty trace")
	}
}

func TestResolve_EscapeEndsOnBounds(t *testing.T) {
	layout := mustLayout(t, []component.Component{
		{ID: "src", Kind: component.KindSource, Position: core.NewVec2(100, 300), Properties: component.Properties{"angle": 0.0}},
	})

	trace := mustResolve(t, New(DefaultConfig()), layout, Controls{})

	if len(trace.Paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(trace.Paths))
	}
	path := trace.Paths[0]
	if path.Status != core.StatusEscaped {
		t.Errorf("status = %q, expected %q", path.Status, core.StatusEscaped)
	}

	end := path.Segments[len(path.Segments)-1].End
	expected := core.NewVec2(component.DefaultBounds.Max.X, 300)
	if end.Subtract(expected).Length() > 1e-9 {
		t.Errorf("escape segment ends at %v, expected boundary point %v", end, expected)
	}
	if math.Abs(path.Length-1500) > 1e-9 {
		t.Errorf("Length = %v, expected 1500", path.Length)
	}
}

func TestResolve_MirrorFoldToDetector(t *testing.T) {
	layout := mustLayout(t, []component.Component{
		{ID: "src", Kind: component.KindSource, Position: core.NewVec2(100, 300), Properties: component.Properties{"angle": 0.0}},
		{ID: "m1", Kind: component.KindMirror, Position: core.NewVec2(400, 300), Properties: component.Properties{"angle": 45.0}},
		{ID: "d1", Kind: component.KindDetector, Position: core.NewVec2(400, 500), Properties: component.Properties{"angle": 270.0}},
	})

	trace := mustResolve(t, New(DefaultConfig()), layout, Controls{})

	if len(trace.Paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(trace.Paths))
	}
	path := trace.Paths[0]
	if path.Status != core.StatusHitDetector {
		t.Fatalf("status = %q, expected %q", path.Status, core.StatusHitDetector)
	}
	if len(path.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(path.Segments))
	}

	fold := path.Segments[0].End
	if fold.Subtract(core.NewVec2(400, 300)).Length() > 1e-9 {
		t.Errorf("fold point = %v, expected (400, 300)", fold)
	}
	if math.Abs(path.Length-500) > 1e-9 {
		t.Errorf("Length = %v, expected 500", path.Length)
	}
	assertContiguous(t, path, core.NewVec2(100, 300))
}

func TestResolve_SplitterTree(t *testing.T) {
	layout := mustLayout(t, []component.Component{
		{ID: "src", Kind: component.KindSource, Position: core.NewVec2(100, 300), Properties: component.Properties{"angle": 0.0}},
		{ID: "bs1", Kind: component.KindSplitter, Position: core.NewVec2(400, 300), Properties: component.Properties{"angle": 45.0}},
		{ID: "dA", Kind: component.KindDetector, Position: core.NewVec2(700, 300), Properties: component.Properties{"angle": 180.0}},
		{ID: "dB", Kind: component.KindDetector, Position: core.NewVec2(400, 600), Properties: component.Properties{"angle": 270.0}},
	})

	trace := mustResolve(t, New(DefaultConfig()), layout, Controls{})

	if len(trace.Nodes) != 3 {
		t.Fatalf("expected 3 nodes (fork plus two leaves), got %d", len(trace.Nodes))
	}
	if trace.Nodes[0].IsLeaf() {
		t.Error("root node should be an interior fork")
	}
	if trace.Nodes[1].Parent != 0 || trace.Nodes[2].Parent != 0 {
		t.Errorf("children parents = %d, %d, expected 0, 0", trace.Nodes[1].Parent, trace.Nodes[2].Parent)
	}

	if len(trace.Paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(trace.Paths))
	}

	transmitted, reflected := trace.Paths[0], trace.Paths[1]
	if transmitted.DetectorID != "dA" {
		t.Errorf("transmitted path hit %q, expected dA", transmitted.DetectorID)
	}
	if reflected.DetectorID != "dB" {
		t.Errorf("reflected path hit %q, expected dB", reflected.DetectorID)
	}

	for _, path := range trace.Paths {
		if math.Abs(path.Weight-0.5) > 1e-12 {
			t.Errorf("path to %q has weight %v, expected 0.5", path.DetectorID, path.Weight)
		}
		if math.Abs(path.Length-600) > 1e-9 {
			t.Errorf("path to %q has length %v, expected 600", path.DetectorID, path.Length)
		}
		if len(path.Segments) != 2 {
			t.Errorf("path to %q has %d segments, expected 2", path.DetectorID, len(path.Segments))
		}
		assertContiguous(t, path, core.NewVec2(100, 300))
	}
}

// ringComponents builds a closed square of mirrors with a beamsplitter
// injection corner, so part of the beam circulates indefinitely
func ringComponents() []component.Component {
	return []component.Component{
		{ID: "src", Kind: component.KindSource, Position: core.NewVec2(100, 200), Properties: component.Properties{"angle": 0.0}},
		{ID: "bl", Kind: component.KindSplitter, Position: core.NewVec2(200, 200), Properties: component.Properties{"angle": 135.0}},
		{ID: "br", Kind: component.KindMirror, Position: core.NewVec2(600, 200), Properties: component.Properties{"angle": 45.0}},
		{ID: "tr", Kind: component.KindMirror, Position: core.NewVec2(600, 600), Properties: component.Properties{"angle": 135.0}},
		{ID: "tl", Kind: component.KindMirror, Position: core.NewVec2(200, 600), Properties: component.Properties{"angle": 45.0}},
	}
}

func TestResolve_ReflectiveLoopExhaustsBounces(t *testing.T) {
	layout := mustLayout(t, ringComponents())

	config := DefaultConfig()
	config.MaxBounces = 6
	trace := mustResolve(t, New(config), layout, Controls{})

	var exhausted, escaped int
	for _, path := range trace.Paths {
		switch path.Status {
		case core.StatusMaxBounces:
			exhausted++
		case core.StatusEscaped:
			escaped++
		}
	}

	if exhausted == 0 {
		t.Error("expected at least one path to exhaust the bounce limit")
	}
	if escaped == 0 {
		t.Error("expected the splitter to shed escaping paths")
	}
	if trace.DetectorHit() {
		t.Error("ring layout has no detector to hit")
	}
	for _, path := range trace.Paths {
		assertContiguous(t, path, core.NewVec2(100, 200))
	}
}

func TestResolve_MaxNodesCapsBranching(t *testing.T) {
	layout := mustLayout(t, ringComponents())

	config := DefaultConfig()
	config.MaxBounces = 40
	config.MaxNodes = 8
	trace := mustResolve(t, New(config), layout, Controls{})

	// Worklist items past the cap become terminal stubs, so the node count
	// stays close to the cap instead of growing with the bounce limit
	if len(trace.Nodes) > config.MaxNodes+4 {
		t.Errorf("node count %d exceeds cap %d by more than the in-flight worklist", len(trace.Nodes), config.MaxNodes)
	}

	var exhausted int
	for _, path := range trace.Paths {
		if path.Status == core.StatusMaxBounces {
			exhausted++
		}
	}
	if exhausted == 0 {
		t.Error("expected capped branches to terminate as bounce-exhausted")
	}
}

func TestResolve_EqualDistanceTieBreaksByOrder(t *testing.T) {
	// Two detectors share the same surface; the earlier one must win.
	first := component.Component{ID: "first", Kind: component.KindDetector, Position: core.NewVec2(400, 300), Properties: component.Properties{"angle": 180.0}}
	second := component.Component{ID: "second", Kind: component.KindDetector, Position: core.NewVec2(400, 300), Properties: component.Properties{"angle": 180.0}}
	src := component.Component{ID: "src", Kind: component.KindSource, Position: core.NewVec2(100, 300), Properties: component.Properties{"angle": 0.0}}

	tests := []struct {
		name       string
		components []component.Component
		expected   string
	}{
		{name: "First listed wins", components: []component.Component{src, first, second}, expected: "first"},
		{name: "Swapped order flips the winner", components: []component.Component{src, second, first}, expected: "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := mustLayout(t, tt.components)

			// Rerun to confirm the choice is stable, not incidental
			for run := 0; run < 5; run++ {
				trace := mustResolve(t, New(DefaultConfig()), layout, Controls{})
				if len(trace.Paths) != 1 {
					t.Fatalf("expected 1 path, got %d", len(trace.Paths))
				}
				if trace.Paths[0].DetectorID != tt.expected {
					t.Fatalf("run %d: hit %q, expected %q", run, trace.Paths[0].DetectorID, tt.expected)
				}
			}
		})
	}
}

func TestResolve_SourceHousingAbsorbs(t *testing.T) {
	layout := mustLayout(t, []component.Component{
		{ID: "src", Kind: component.KindSource, Position: core.NewVec2(400, 300), Properties: component.Properties{"angle": 180.0}},
		{ID: "m1", Kind: component.KindMirror, Position: core.NewVec2(200, 300), Properties: component.Properties{"angle": 90.0}},
	})

	trace := mustResolve(t, New(DefaultConfig()), layout, Controls{})

	if len(trace.Paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(trace.Paths))
	}
	path := trace.Paths[0]
	if path.Status != core.StatusAbsorbed {
		t.Errorf("status = %q, expected %q", path.Status, core.StatusAbsorbed)
	}
	if len(path.Segments) != 2 {
		t.Errorf("expected 2 segments, got %d", len(path.Segments))
	}
	if math.Abs(path.Length-400) > 1e-9 {
		t.Errorf("Length = %v, expected 400", path.Length)
	}
}

func TestResolve_WeightAccumulation(t *testing.T) {
	layout := mustLayout(t, []component.Component{
		{ID: "src", Kind: component.KindSource, Position: core.NewVec2(100, 300), Properties: component.Properties{"angle": 0.0, "power_mw": 2.0}},
		{ID: "m1", Kind: component.KindMirror, Position: core.NewVec2(400, 300), Properties: component.Properties{"angle": 45.0, "reflectivity": 0.8}},
		{ID: "d1", Kind: component.KindDetector, Position: core.NewVec2(400, 500), Properties: component.Properties{"angle": 270.0, "efficiency": 0.5}},
	})

	trace := mustResolve(t, New(DefaultConfig()), layout, Controls{})

	if len(trace.Paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(trace.Paths))
	}
	path := trace.Paths[0]
	if path.Status != core.StatusHitDetector {
		t.Fatalf("status = %q, expected %q", path.Status, core.StatusHitDetector)
	}
	if math.Abs(path.Weight-0.8) > 1e-12 {
		t.Errorf("Weight = %v, expected 2.0 * 0.8 * 0.5 = 0.8", path.Weight)
	}
}

func TestResolve_LaunchAngleControl(t *testing.T) {
	layout := mustLayout(t, []component.Component{
		{ID: "src", Kind: component.KindSource, Position: core.NewVec2(800, 300), Properties: component.Properties{"angle": 0.0}},
	})

	trace := mustResolve(t, New(DefaultConfig()), layout, Controls{AngleOfIncidenceDeg: 90})

	path := trace.Paths[0]
	launch := path.Segments[0].End.Subtract(path.Segments[0].Start).Normalize()
	if launch.Subtract(core.NewVec2(0, 1)).Length() > 1e-9 {
		t.Errorf("launch direction = %v, expected (0, 1)", launch)
	}
}

func TestResolve_BeamMissesBeyondExtent(t *testing.T) {
	// A beam passing 30 units above a detector with the default 50-unit
	// extent must sail past it.
	layout := mustLayout(t, []component.Component{
		{ID: "src", Kind: component.KindSource, Position: core.NewVec2(100, 330), Properties: component.Properties{"angle": 0.0}},
		{ID: "d1", Kind: component.KindDetector, Position: core.NewVec2(400, 300), Properties: component.Properties{"angle": 180.0}},
	})

	trace := mustResolve(t, New(DefaultConfig()), layout, Controls{})

	if len(trace.Paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(trace.Paths))
	}
	if trace.Paths[0].Status != core.StatusEscaped {
		t.Errorf("status = %q, expected %q", trace.Paths[0].Status, core.StatusEscaped)
	}
	if trace.DetectorHit() {
		t.Error("beam outside the detector extent should not register a hit")
	}
}
