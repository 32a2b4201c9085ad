// Package spectral turns resolved beam paths into power-versus-wavelength
// curves. Detection follows a two-beam interference model: each detector
// path contributes its accumulated power modulated by a cosine fringe whose
// phase is set by the optical path length.
package spectral

import (
	"math"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
)

// Model holds the parameters of the interferometric detection formula
type Model struct {
	UnitScaleNm float64 // optical path length per grid unit, in nanometers
	Visibility  float64 // fringe contrast, 0 for a flat response up to 1 for full swing
}

// DefaultModel returns the stock detection model: 10 nm of optical path per
// grid unit and full fringe visibility
func DefaultModel() Model {
	return Model{
		UnitScaleNm: 10,
		Visibility:  1,
	}
}

// Power returns the detected power in mW that one path contributes at the
// given vacuum wavelength. Paths that did not reach a detector contribute
// nothing, whatever the wavelength.
func (m Model) Power(path core.Path, wavelengthNm float64) float64 {
	if !path.HitsDetector() || wavelengthNm <= 0 {
		return 0
	}

	phase := 2 * math.Pi * path.Length * m.UnitScaleNm / wavelengthNm
	fringe := 0.5 * (1 + m.Visibility*math.Cos(phase))

	power := path.Weight * fringe
	if power < 0 {
		return 0
	}
	return power
}
