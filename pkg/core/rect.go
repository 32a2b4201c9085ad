package core

import "math"

// Rect represents an axis-aligned rectangle on the layout grid
type Rect struct {
	Min Vec2 `json:"min"` // Minimum corner
	Max Vec2 `json:"max"` // Maximum corner
}

// NewRect creates a new Rect from min and max points
func NewRect(min, max Vec2) Rect {
	return Rect{Min: min, Max: max}
}

// NewRectFromPoints creates a Rect that bounds all given points
func NewRectFromPoints(points ...Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
	}

	return Rect{Min: min, Max: max}
}

// Contains reports whether the point lies inside or on the boundary of the rect
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width returns the horizontal extent of the rect
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent of the rect
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rect
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Multiply(0.5)
}

// Expand returns a Rect expanded by the given amount in all directions
func (r Rect) Expand(amount float64) Rect {
	expansion := NewVec2(amount, amount)
	return Rect{
		Min: r.Min.Subtract(expansion),
		Max: r.Max.Add(expansion),
	}
}

// IsValid returns true if this is a valid Rect (min <= max for both axes)
func (r Rect) IsValid() bool {
	return r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y
}

// Exit returns the point where a ray starting inside the rect crosses its
// boundary, using the slab method. Returns false if the ray origin is outside
// the rect or the direction is zero.
func (r Rect) Exit(ray Ray) (Vec2, bool) {
	if !r.Contains(ray.Origin) {
		return Vec2{}, false
	}

	tExit := math.Inf(1)

	for axis := 0; axis < 2; axis++ {
		var min, max, origin, direction float64

		switch axis {
		case 0: // X axis
			min = r.Min.X
			max = r.Max.X
			origin = ray.Origin.X
			direction = ray.Direction.X
		case 1: // Y axis
			min = r.Min.Y
			max = r.Max.Y
			origin = ray.Origin.Y
			direction = ray.Direction.Y
		}

		// Rays parallel to this axis never cross its slabs
		if math.Abs(direction) < 1e-12 {
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection

		// Ensure t1 <= t2 (swap if needed)
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tExit = math.Min(tExit, t2)
	}

	if math.IsInf(tExit, 1) || tExit < 0 {
		return Vec2{}, false
	}

	return ray.At(tExit), true
}
