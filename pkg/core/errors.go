package core

import (
	"errors"
	"fmt"
)

// ErrInvalidSweepRange reports a sweep request whose wavelength range or
// sample count cannot produce a curve. Wrap with fmt.Errorf("%w: ...") to
// attach detail; match with errors.Is.
var ErrInvalidSweepRange = errors.New("core: invalid sweep range")

// ConfigurationError reports a component whose kind or parameters cannot be
// interpreted. The zero Field means the component kind itself was rejected.
type ConfigurationError struct {
	ComponentID string
	Field       string
	Value       interface{}
	Reason      string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("component %q: %s", e.ComponentID, e.Reason)
	}
	return fmt.Sprintf("component %q: field %q = %v: %s", e.ComponentID, e.Field, e.Value, e.Reason)
}

// LayoutBoundsError reports a component placed outside the layout bounds
type LayoutBoundsError struct {
	ComponentID string
	Position    Vec2
	Bounds      Rect
}

func (e *LayoutBoundsError) Error() string {
	return fmt.Sprintf("component %q at (%g, %g) is outside layout bounds (%g, %g)-(%g, %g)",
		e.ComponentID, e.Position.X, e.Position.Y,
		e.Bounds.Min.X, e.Bounds.Min.Y, e.Bounds.Max.X, e.Bounds.Max.Y)
}
