package geometry

import (
	"math"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
)

// Rays closer to parallel than this miss the surface outright
const parallelEpsilon = 1e-12

// Surface represents the finite line segment a component presents to rays,
// defined by a center point, an orientation and a total extent.
type Surface struct {
	Center     core.Vec2
	Direction  core.Vec2 // Unit vector along the surface line
	HalfExtent float64
}

// NewSurface creates a new surface centered at a point with the line oriented
// at the given angle in radians
func NewSurface(center core.Vec2, angleRad, extent float64) Surface {
	return Surface{
		Center:     center,
		Direction:  core.VecFromAngle(angleRad),
		HalfExtent: extent / 2,
	}
}

// PointAt returns the point on the surface line at the given signed offset
// from its center
func (s Surface) PointAt(offset float64) core.Vec2 {
	return s.Center.Add(s.Direction.Multiply(offset))
}

// Intersection describes where a ray meets a surface
type Intersection struct {
	T      float64   // Ray parameter at the hit point
	Point  core.Vec2 // Hit point
	Normal core.Vec2 // Unit normal, always facing against the incoming ray
	Offset float64   // Signed lateral distance from the surface center, along Direction
}

// Intersect tests if a ray crosses the surface segment within (tMin, tMax].
// Solves ray.Origin + t*ray.Direction = Center + offset*Direction with 2D
// cross products.
func (s Surface) Intersect(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	// If the denominator is close to zero, the ray runs parallel to the surface
	denominator := ray.Direction.Cross(s.Direction)
	if math.Abs(denominator) < parallelEpsilon {
		return nil, false
	}

	toCenter := s.Center.Subtract(ray.Origin)
	t := toCenter.Cross(s.Direction) / denominator

	// Check if intersection is within valid range
	if t <= tMin || t > tMax {
		return nil, false
	}

	// Reject hits beyond the ends of the segment
	offset := toCenter.Cross(ray.Direction) / denominator
	if math.Abs(offset) > s.HalfExtent {
		return nil, false
	}

	// Flip the geometric normal to face the incoming ray
	normal := s.Direction.Perp()
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}

	return &Intersection{
		T:      t,
		Point:  ray.At(t),
		Normal: normal,
		Offset: offset,
	}, true
}
