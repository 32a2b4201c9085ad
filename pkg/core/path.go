package core

// TerminalStatus classifies how a traced beam path ended
type TerminalStatus string

const (
	// StatusHitDetector means the path ended on a detector aperture
	StatusHitDetector TerminalStatus = "hit_detector"
	// StatusEscaped means the path left the layout bounds without terminating
	StatusEscaped TerminalStatus = "escaped"
	// StatusAbsorbed means the path ended in an absorbing element
	StatusAbsorbed TerminalStatus = "absorbed"
	// StatusMaxBounces means the path exceeded the interaction limit
	StatusMaxBounces TerminalStatus = "max_bounces_exceeded"
)

// Segment represents one straight piece of a beam path
type Segment struct {
	Start Vec2
	End   Vec2
}

// NewSegment creates a segment between two points
func NewSegment(start, end Vec2) Segment {
	return Segment{Start: start, End: end}
}

// Length returns the geometric length of the segment in grid units
func (s Segment) Length() float64 {
	return s.End.Subtract(s.Start).Length()
}

// Path represents one root-to-terminal beam path through a layout.
// Weight accumulates the source power and every per-interaction intensity
// factor (reflectivity, transmission, split ratio, detector efficiency)
// along the way.
type Path struct {
	Segments   []Segment
	Status     TerminalStatus
	DetectorID string  // set only when Status is StatusHitDetector
	Length     float64 // total geometric length in grid units
	Weight     float64 // accumulated intensity in mW
}

// HitsDetector reports whether the path terminated on a detector
func (p Path) HitsDetector() bool {
	return p.Status == StatusHitDetector
}
