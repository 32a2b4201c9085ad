package component

import (
	"math"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/geometry"
)

// Emission describes one outgoing beam produced by an interaction
type Emission struct {
	Ray    core.Ray
	Weight float64 // fraction of the incoming power carried onward
}

// Outcome is the result of a ray meeting a component surface: either one or
// two outgoing emissions, or a terminal status that consumes the ray.
type Outcome struct {
	Emissions []Emission
	Status    core.TerminalStatus // set only when the ray is consumed
}

// Interact applies a component's optical rule to an incoming ray at the
// given surface hit. Components are a closed set; an unknown kind is a
// configuration error, never a silent pass-through.
func Interact(c Component, ray core.Ray, hit *geometry.Intersection) (Outcome, error) {
	switch c.Kind {
	case KindMirror:
		return mirrorOutcome(c, ray, hit), nil
	case KindSplitter:
		return splitterOutcome(c, ray, hit), nil
	case KindLens:
		return lensOutcome(c, ray, hit), nil
	case KindDetector:
		return detectorOutcome(c, ray), nil
	case KindAbsorber:
		return Outcome{Status: core.StatusAbsorbed}, nil
	case KindSource:
		// A beam striking a source hits its housing and is absorbed
		return Outcome{Status: core.StatusAbsorbed}, nil
	default:
		return Outcome{}, &core.ConfigurationError{
			ComponentID: c.ID,
			Reason:      "unknown component type " + string(c.Kind),
		}
	}
}

// mirrorOutcome reflects the ray about the surface normal and applies the
// mirror's reflectivity loss
func mirrorOutcome(c Component, ray core.Ray, hit *geometry.Intersection) Outcome {
	reflected := ray.Direction.Reflect(hit.Normal)
	return Outcome{
		Emissions: []Emission{
			{Ray: core.NewRay(hit.Point, reflected), Weight: c.Reflectivity()},
		},
	}
}

// splitterOutcome forks the ray into a transmitted beam that continues
// undeviated and a reflected beam, partitioning the power by the split ratio
func splitterOutcome(c Component, ray core.Ray, hit *geometry.Intersection) Outcome {
	ratio := c.SplitRatio()
	reflected := ray.Direction.Reflect(hit.Normal)
	return Outcome{
		Emissions: []Emission{
			{Ray: core.NewRay(hit.Point, ray.Direction), Weight: 1 - ratio},
			{Ray: core.NewRay(hit.Point, reflected), Weight: ratio},
		},
	}
}

// lensOutcome deflects the ray with the thin-lens rule: in lens-local
// coordinates the ray slope changes by -h/f, where h is the lateral offset
// of the hit from the lens center. Rays through the center pass undeviated
// and incoming parallel rays converge at the focal length.
func lensOutcome(c Component, ray core.Ray, hit *geometry.Intersection) Outcome {
	focal, _ := c.FocalLength()

	// Forward optical axis, continuing through the lens. The hit normal
	// faces the incoming ray so its negation points onward.
	axis := hit.Normal.Negate()
	lateral := axis.Perp()

	along := ray.Direction.Dot(axis)
	slope := ray.Direction.Dot(lateral) / along
	offset := hit.Point.Subtract(c.Position).Dot(lateral)

	outSlope := slope - offset/focal
	outgoing := axis.Add(lateral.Multiply(outSlope)).Normalize()

	return Outcome{
		Emissions: []Emission{
			{Ray: core.NewRay(hit.Point, outgoing), Weight: c.Transmission()},
		},
	}
}

// detectorOutcome terminates the ray, registering a hit only when the beam
// arrives within the detector's acceptance cone
func detectorOutcome(c Component, ray core.Ray) Outcome {
	acceptance := c.AcceptanceDeg()
	if acceptance >= 360 {
		return Outcome{Status: core.StatusHitDetector}
	}

	halfRad := acceptance * math.Pi / 180 / 2
	arrival := ray.Direction.Normalize().Negate()

	if arrival.Dot(c.Axis()) < math.Cos(halfRad) {
		return Outcome{Status: core.StatusAbsorbed}
	}
	return Outcome{Status: core.StatusHitDetector}
}
