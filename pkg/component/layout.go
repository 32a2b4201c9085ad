package component

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
)

// Shared validator instance for structural checks
var validate = validator.New()

// DefaultBounds is the layout grid used when a request does not specify one
var DefaultBounds = core.NewRect(core.NewVec2(0, 0), core.NewVec2(1600, 1200))

// Layout represents a validated arrangement of components on a bounded grid.
// Component order is preserved from the input; resolution uses it to break
// ties deterministically.
type Layout struct {
	Components []Component
	Bounds     core.Rect
}

// NewLayout validates the components against the bounds and returns the
// layout. Validation is all-or-nothing: the first offending component aborts
// with a ConfigurationError or LayoutBoundsError and no layout is returned.
func NewLayout(components []Component, bounds core.Rect) (*Layout, error) {
	if !bounds.IsValid() || bounds.Width() <= 0 || bounds.Height() <= 0 {
		return nil, fmt.Errorf("layout: degenerate bounds (%g, %g)-(%g, %g)",
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	seen := make(map[string]int, len(components))
	for i, c := range components {
		if err := validate.Struct(c); err != nil {
			return nil, structuralError(i, c, err)
		}
		if prev, dup := seen[c.ID]; dup {
			return nil, &core.ConfigurationError{
				ComponentID: c.ID,
				Reason:      fmt.Sprintf("duplicate id, already used at index %d", prev),
			}
		}
		seen[c.ID] = i

		if err := validateParams(c); err != nil {
			return nil, err
		}
		if !bounds.Contains(c.Position) {
			return nil, &core.LayoutBoundsError{
				ComponentID: c.ID,
				Position:    c.Position,
				Bounds:      bounds,
			}
		}
	}

	return &Layout{Components: components, Bounds: bounds}, nil
}

// Source returns the index of the first source component in layout order
func (l *Layout) Source() (int, bool) {
	for i, c := range l.Components {
		if c.Kind == KindSource {
			return i, true
		}
	}
	return 0, false
}

// DetectorIDs returns the ids of all detectors in layout order
func (l *Layout) DetectorIDs() []string {
	var ids []string
	for _, c := range l.Components {
		if c.Kind == KindDetector {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// structuralError converts a validator failure on a component into the
// configuration error surfaced to callers
func structuralError(index int, c Component, err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &core.ConfigurationError{
			ComponentID: c.ID,
			Field:       errs[0].Field(),
			Reason:      fmt.Sprintf("component at index %d failed %q validation", index, errs[0].Tag()),
		}
	}
	return &core.ConfigurationError{
		ComponentID: c.ID,
		Reason:      fmt.Sprintf("component at index %d: %v", index, err),
	}
}

// allowedProperties lists the recognized property keys per kind, on top of
// the keys every kind accepts
var allowedProperties = map[Kind][]string{
	KindSource:   {"power_mw"},
	KindMirror:   {"reflectivity"},
	KindSplitter: {"ratio"},
	KindLens:     {"focal_length", "transmission"},
	KindDetector: {"acceptance_deg", "efficiency"},
	KindAbsorber: {},
}

// commonProperties are accepted by every component kind
var commonProperties = []string{"angle", "extent"}

// validateParams checks the per-kind parameters of a single component.
// Unknown kinds and unrecognized or non-numeric properties are rejected so
// that typos fail loudly instead of silently falling back to defaults.
func validateParams(c Component) error {
	allowed, known := allowedProperties[c.Kind]
	if !known {
		return &core.ConfigurationError{
			ComponentID: c.ID,
			Reason:      fmt.Sprintf("unknown component type %q", c.Kind),
		}
	}

	recognized := make(map[string]bool, len(allowed)+len(commonProperties))
	for _, key := range commonProperties {
		recognized[key] = true
	}
	for _, key := range allowed {
		recognized[key] = true
	}

	for key, value := range c.Properties {
		if !recognized[key] {
			return &core.ConfigurationError{
				ComponentID: c.ID,
				Field:       key,
				Value:       value,
				Reason:      fmt.Sprintf("unrecognized property for type %q", c.Kind),
			}
		}
		if _, ok := c.Properties.number(key, 0); !ok {
			return &core.ConfigurationError{
				ComponentID: c.ID,
				Field:       key,
				Value:       value,
				Reason:      "must be a number",
			}
		}
	}

	if c.Extent() <= 0 {
		return rangeError(c, "extent", c.Extent(), "must be positive")
	}

	switch c.Kind {
	case KindSource:
		if c.PowerMw() < 0 {
			return rangeError(c, "power_mw", c.PowerMw(), "must not be negative")
		}
	case KindMirror:
		if r := c.Reflectivity(); r < 0 || r > 1 {
			return rangeError(c, "reflectivity", r, "must be in [0, 1]")
		}
	case KindSplitter:
		if r := c.SplitRatio(); r < 0 || r > 1 {
			return rangeError(c, "ratio", r, "must be in [0, 1]")
		}
	case KindLens:
		focal, ok := c.FocalLength()
		if !ok {
			return &core.ConfigurationError{
				ComponentID: c.ID,
				Field:       "focal_length",
				Reason:      "required for lens components",
			}
		}
		if focal == 0 {
			return rangeError(c, "focal_length", focal, "must be non-zero")
		}
		if tr := c.Transmission(); tr < 0 || tr > 1 {
			return rangeError(c, "transmission", tr, "must be in [0, 1]")
		}
	case KindDetector:
		if a := c.AcceptanceDeg(); a <= 0 || a > 360 {
			return rangeError(c, "acceptance_deg", a, "must be in (0, 360]")
		}
		if e := c.Efficiency(); e < 0 || e > 1 {
			return rangeError(c, "efficiency", e, "must be in [0, 1]")
		}
	}

	return nil
}

func rangeError(c Component, field string, value float64, reason string) error {
	return &core.ConfigurationError{
		ComponentID: c.ID,
		Field:       field,
		Value:       value,
		Reason:      reason,
	}
}
