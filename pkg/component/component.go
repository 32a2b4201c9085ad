// Package component models the optical elements that can be placed on a
// layout grid: the kinds they come in, the parameters they accept and the
// surfaces they present to rays.
package component

import (
	"math"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/geometry"
)

// Kind identifies a component type. The values double as the wire names
// used by the layout editor.
type Kind string

const (
	KindSource   Kind = "laser"
	KindMirror   Kind = "mirror"
	KindSplitter Kind = "beamsplitter"
	KindLens     Kind = "lens"
	KindDetector Kind = "detector"
	KindAbsorber Kind = "absorber"
)

// Default parameter values applied when a property is omitted
const (
	DefaultExtent        = 50.0  // grid units of surface span
	DefaultPowerMw       = 1.0   // source output power
	DefaultReflectivity  = 1.0   // lossless mirror
	DefaultSplitRatio    = 0.5   // even beamsplitter
	DefaultTransmission  = 1.0   // lossless lens
	DefaultAcceptanceDeg = 360.0 // detector accepts from any direction
	DefaultEfficiency    = 1.0   // ideal detector
)

// Component represents one optical element placed on the grid.
//
// Properties carries the per-kind numeric parameters under their wire names:
// angle (degrees, all kinds), power_mw (laser), reflectivity (mirror),
// ratio (beamsplitter, the fraction of power sent into the reflected branch),
// focal_length and transmission (lens), acceptance_deg and efficiency
// (detector), and extent (all kinds, the surface span in grid units).
type Component struct {
	ID         string     `json:"id" validate:"required"`
	Kind       Kind       `json:"type" validate:"required"`
	Position   core.Vec2  `json:"position"`
	Properties Properties `json:"properties"`
}

// Properties holds the raw per-component parameters as decoded from JSON.
// Values are looked up by wire name and coerced to float64; validation
// rejects entries that cannot be coerced.
type Properties map[string]interface{}

// number returns the property coerced to float64, or the default when the
// key is absent. The bool reports whether the stored value was numeric.
func (p Properties) number(key string, def float64) (float64, bool) {
	raw, exists := p[key]
	if !exists {
		return def, true
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return def, false
	}
}

// has reports whether the property is present at all
func (p Properties) has(key string) bool {
	_, exists := p[key]
	return exists
}

// AngleDeg returns the component orientation in degrees
func (c Component) AngleDeg() float64 {
	v, _ := c.Properties.number("angle", 0)
	return v
}

// AngleRad returns the component orientation in radians
func (c Component) AngleRad() float64 {
	return c.AngleDeg() * math.Pi / 180
}

// Extent returns the surface span in grid units
func (c Component) Extent() float64 {
	v, _ := c.Properties.number("extent", DefaultExtent)
	return v
}

// PowerMw returns the source output power in milliwatts
func (c Component) PowerMw() float64 {
	v, _ := c.Properties.number("power_mw", DefaultPowerMw)
	return v
}

// Reflectivity returns the fraction of power a mirror keeps on reflection
func (c Component) Reflectivity() float64 {
	v, _ := c.Properties.number("reflectivity", DefaultReflectivity)
	return v
}

// SplitRatio returns the fraction of power a beamsplitter reflects;
// the remainder is transmitted
func (c Component) SplitRatio() float64 {
	v, _ := c.Properties.number("ratio", DefaultSplitRatio)
	return v
}

// FocalLength returns the lens focal length in grid units. Positive values
// converge, negative values diverge. There is no default; the bool is false
// when the property is missing.
func (c Component) FocalLength() (float64, bool) {
	if !c.Properties.has("focal_length") {
		return 0, false
	}
	v, ok := c.Properties.number("focal_length", 0)
	return v, ok
}

// Transmission returns the fraction of power a lens passes through
func (c Component) Transmission() float64 {
	v, _ := c.Properties.number("transmission", DefaultTransmission)
	return v
}

// AcceptanceDeg returns the full width of the detector acceptance cone
// in degrees
func (c Component) AcceptanceDeg() float64 {
	v, _ := c.Properties.number("acceptance_deg", DefaultAcceptanceDeg)
	return v
}

// Efficiency returns the detector conversion efficiency
func (c Component) Efficiency() float64 {
	v, _ := c.Properties.number("efficiency", DefaultEfficiency)
	return v
}

// Axis returns the unit vector of the component's optical axis: the emission
// direction for sources, the facing for detectors and the principal axis for
// lenses.
func (c Component) Axis() core.Vec2 {
	return core.VecFromAngle(c.AngleRad())
}

// Surface returns the line segment the component presents to rays.
//
// For mirrors, beamsplitters and absorbers the angle property is the
// direction of the surface line itself. For sources, lenses and detectors
// the angle is the optical axis, so the surface lies perpendicular to it.
func (c Component) Surface() geometry.Surface {
	angle := c.AngleRad()
	switch c.Kind {
	case KindSource, KindLens, KindDetector:
		angle += math.Pi / 2
	}
	return geometry.NewSurface(c.Position, angle, c.Extent())
}
