// Package tracer resolves the full set of beam paths a source drives through
// a component layout. Resolution is deterministic: the same layout and
// controls always produce the same tree of paths.
package tracer

import (
	"math"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/component"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/geometry"
)

// Fallback escape distance used when a ray cannot be projected onto the
// layout boundary, for example after hitting a surface tip that pokes
// outside the bounds
const escapeLength = 1000.0

// Config contains configuration for path resolution
type Config struct {
	MaxBounces int     // Interactions allowed along one path before forced termination
	MaxNodes   int     // Total branches allowed per trace; splitter loops double per bounce otherwise
	TMin       float64 // Minimum ray advance, keeps beams from re-hitting the surface just left
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxBounces: 64,
		MaxNodes:   4096,
		TMin:       1e-9,
	}
}

// Controls carries per-request adjustments applied on top of the stored
// layout, without mutating it
type Controls struct {
	AngleOfIncidenceDeg float64 `json:"angle_of_incidence_deg"`
}

// Node is one branch record in the resolved trace tree. A node's segments
// are the pieces it added after forking from its parent, so rendering all
// nodes draws every beam exactly once. Children always carry a higher index
// than their parent; the root has Parent -1.
type Node struct {
	Parent     int
	Segments   []core.Segment
	Status     core.TerminalStatus // empty for interior nodes that forked
	DetectorID string              // set when Status is StatusHitDetector
	Weight     float64             // accumulated power in mW at the end of the node
	Length     float64             // accumulated geometric length at the end of the node
}

// IsLeaf reports whether the node terminated rather than forked
func (n Node) IsLeaf() bool {
	return n.Status != ""
}

// Trace is the resolved beam structure of one layout
type Trace struct {
	Nodes []Node      // branch arena, parents before children
	Paths []core.Path // one assembled root-to-terminal path per leaf
}

// DetectorHit reports whether any path terminated on a detector
func (t *Trace) DetectorHit() bool {
	for _, p := range t.Paths {
		if p.HitsDetector() {
			return true
		}
	}
	return false
}

// DetectorPaths returns the paths that terminated on a detector
func (t *Trace) DetectorPaths() []core.Path {
	var paths []core.Path
	for _, p := range t.Paths {
		if p.HitsDetector() {
			paths = append(paths, p)
		}
	}
	return paths
}

// Tracer resolves beam paths through component layouts
type Tracer struct {
	config Config
}

// New creates a tracer with the given configuration
func New(config Config) *Tracer {
	defaults := DefaultConfig()
	if config.MaxBounces <= 0 {
		config.MaxBounces = defaults.MaxBounces
	}
	if config.MaxNodes <= 0 {
		config.MaxNodes = defaults.MaxNodes
	}
	if config.TMin <= 0 {
		config.TMin = defaults.TMin
	}
	return &Tracer{config: config}
}

// workItem is one pending branch on the resolution worklist
type workItem struct {
	ray     core.Ray
	exclude int // component index the ray just left, -1 for none
	bounces int
	parent  int // arena index of the parent node, -1 for the root
	weight  float64
	length  float64
}

// Resolve traces every beam path from the layout's source to its terminal
// state. A layout without a source yields an empty trace. The returned error
// only reports component rules that could not be applied; all physical
// outcomes, including escape and bounce exhaustion, are data on the trace.
func (tr *Tracer) Resolve(layout *component.Layout, controls Controls) (*Trace, error) {
	trace := &Trace{}

	srcIdx, ok := layout.Source()
	if !ok {
		return trace, nil
	}
	src := layout.Components[srcIdx]

	surfaces := make([]geometry.Surface, len(layout.Components))
	for i, c := range layout.Components {
		surfaces[i] = c.Surface()
	}

	launchAngle := src.AngleRad() + controls.AngleOfIncidenceDeg*math.Pi/180
	launch := core.NewRay(src.Position, core.VecFromAngle(launchAngle))

	worklist := []workItem{{
		ray:     launch,
		exclude: srcIdx,
		bounces: 0,
		parent:  -1,
		weight:  src.PowerMw(),
	}}

	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]

		// Reserve the node index up front so forked children can refer to it
		nodeIdx := len(trace.Nodes)
		trace.Nodes = append(trace.Nodes, Node{Parent: item.parent})

		if nodeIdx >= tr.config.MaxNodes {
			trace.Nodes[nodeIdx] = Node{
				Parent: item.parent,
				Status: core.StatusMaxBounces,
				Weight: item.weight,
				Length: item.length,
			}
			continue
		}

		node, children := tr.resolveBranch(layout, surfaces, item, nodeIdx)
		trace.Nodes[nodeIdx] = node
		worklist = append(worklist, children...)
	}

	tr.assemblePaths(trace)
	return trace, nil
}

// resolveBranch follows one branch until it terminates or forks, returning
// the finished node and any child work items
func (tr *Tracer) resolveBranch(layout *component.Layout, surfaces []geometry.Surface, item workItem, nodeIdx int) (Node, []workItem) {
	node := Node{Parent: item.parent}
	ray, exclude := item.ray, item.exclude
	bounces, weight, length := item.bounces, item.weight, item.length

	for {
		if bounces >= tr.config.MaxBounces {
			node.Status = core.StatusMaxBounces
			break
		}

		hitIdx, hit := tr.nearestHit(surfaces, exclude, ray)
		if hit == nil {
			end, ok := layout.Bounds.Exit(ray)
			if !ok {
				end = ray.At(escapeLength)
			}
			segment := core.NewSegment(ray.Origin, end)
			node.Segments = append(node.Segments, segment)
			length += segment.Length()
			node.Status = core.StatusEscaped
			break
		}

		segment := core.NewSegment(ray.Origin, hit.Point)
		node.Segments = append(node.Segments, segment)
		length += segment.Length()
		bounces++

		target := layout.Components[hitIdx]
		outcome, err := component.Interact(target, ray, hit)
		if err != nil {
			// Validation rejects unknown kinds before resolution; treat a
			// rule failure mid-trace as an absorbing stop rather than
			// discarding the work done so far
			node.Status = core.StatusAbsorbed
			break
		}

		if outcome.Status != "" {
			node.Status = outcome.Status
			if outcome.Status == core.StatusHitDetector {
				node.DetectorID = target.ID
				weight *= target.Efficiency()
			}
			break
		}

		if len(outcome.Emissions) == 1 {
			emission := outcome.Emissions[0]
			ray = emission.Ray
			weight *= emission.Weight
			exclude = hitIdx
			continue
		}

		// Fork: the node closes here and each emission continues as a child
		children := make([]workItem, 0, len(outcome.Emissions))
		for _, emission := range outcome.Emissions {
			children = append(children, workItem{
				ray:     emission.Ray,
				exclude: hitIdx,
				bounces: bounces,
				parent:  nodeIdx,
				weight:  weight * emission.Weight,
				length:  length,
			})
		}
		node.Weight = weight
		node.Length = length
		return node, children
	}

	node.Weight = weight
	node.Length = length
	return node, nil
}

// nearestHit scans all component surfaces and returns the closest hit in
// front of the ray. Exact distance ties go to the earlier component in
// layout order.
func (tr *Tracer) nearestHit(surfaces []geometry.Surface, exclude int, ray core.Ray) (int, *geometry.Intersection) {
	closestIdx := -1
	var closest *geometry.Intersection
	closestSoFar := math.Inf(1)

	for i, surface := range surfaces {
		if i == exclude {
			continue
		}
		hit, isHit := surface.Intersect(ray, tr.config.TMin, closestSoFar)
		if !isHit {
			continue
		}
		if closest == nil || hit.T < closest.T {
			closest = hit
			closestIdx = i
			closestSoFar = hit.T
		}
	}

	return closestIdx, closest
}

// assemblePaths walks every leaf's ancestry to build contiguous
// root-to-terminal paths, in leaf arena order
func (tr *Tracer) assemblePaths(trace *Trace) {
	for i, node := range trace.Nodes {
		if !node.IsLeaf() {
			continue
		}

		// Collect the ancestry chain root-first
		var lineage []int
		for idx := i; idx != -1; idx = trace.Nodes[idx].Parent {
			lineage = append(lineage, idx)
		}
		for left, right := 0, len(lineage)-1; left < right; left, right = left+1, right-1 {
			lineage[left], lineage[right] = lineage[right], lineage[left]
		}

		var segments []core.Segment
		for _, idx := range lineage {
			segments = append(segments, trace.Nodes[idx].Segments...)
		}

		trace.Paths = append(trace.Paths, core.Path{
			Segments:   segments,
			Status:     node.Status,
			DetectorID: node.DetectorID,
			Length:     node.Length,
			Weight:     node.Weight,
		})
	}
}
