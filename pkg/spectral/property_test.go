package spectral

import (
	"context"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
)

func TestSweepProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	sweeper := quietSweeper(DefaultModel(), 2)

	specFrom := func(startNm, spanNm, points int) SweepSpec {
		return SweepSpec{
			StartNm: float64(startNm),
			StopNm:  float64(startNm + spanNm),
			Points:  points,
		}
	}

	properties.Property("valid specs yield exactly the requested samples spanning the range", prop.ForAll(
		func(startNm, spanNm, points int) bool {
			spec := specFrom(startNm, spanNm, points)
			trace := detectorTrace(core.Path{
				Status: core.StatusHitDetector, DetectorID: "d1", Length: 75, Weight: 1.0,
			})

			curve, err := sweeper.Run(context.Background(), trace, spec)
			if err != nil || len(curve.Samples) != points {
				return false
			}
			if curve.Samples[0].WavelengthNm != roundTo(spec.StartNm, 1) {
				return false
			}
			if points > 1 && curve.Samples[points-1].WavelengthNm != roundTo(spec.StopNm, 1) {
				return false
			}
			// Wavelengths round to one decimal, so dense sampling of a narrow
			// span may repeat a value. Ordering still never goes backwards.
			for i := 1; i < len(curve.Samples); i++ {
				if curve.Samples[i].WavelengthNm < curve.Samples[i-1].WavelengthNm {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 900),
		gen.IntRange(1, 1100),
		gen.IntRange(1, 200),
	))

	properties.Property("steps wider than the rounding grain stay strictly ascending", prop.ForAll(
		func(startNm, spanNm, points int) bool {
			spec := specFrom(startNm, spanNm, points)
			trace := detectorTrace(core.Path{
				Status: core.StatusHitDetector, DetectorID: "d1", Length: 75, Weight: 1.0,
			})

			curve, err := sweeper.Run(context.Background(), trace, spec)
			if err != nil {
				return false
			}
			for i := 1; i < len(curve.Samples); i++ {
				if curve.Samples[i].WavelengthNm <= curve.Samples[i-1].WavelengthNm {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 900),
		gen.IntRange(300, 1100),
		gen.IntRange(1, 200),
	))

	properties.Property("traces without detector hits sweep flat at zero", prop.ForAll(
		func(startNm, spanNm, points int, length int) bool {
			spec := specFrom(startNm, spanNm, points)
			trace := detectorTrace(
				core.Path{Status: core.StatusEscaped, Length: float64(length), Weight: 1.0},
				core.Path{Status: core.StatusAbsorbed, Length: float64(length) / 2, Weight: 0.5},
			)

			curve, err := sweeper.Run(context.Background(), trace, spec)
			if err != nil || curve.DetectorHit {
				return false
			}
			for _, sample := range curve.Samples {
				if sample.DetectedPowerMw != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 900),
		gen.IntRange(1, 1100),
		gen.IntRange(1, 200),
		gen.IntRange(1, 2000),
	))

	properties.Property("repeated runs produce identical curves", prop.ForAll(
		func(startNm, spanNm, points, length int) bool {
			spec := specFrom(startNm, spanNm, points)
			trace := detectorTrace(core.Path{
				Status: core.StatusHitDetector, DetectorID: "d1", Length: float64(length), Weight: 0.8,
			})

			first, err1 := sweeper.Run(context.Background(), trace, spec)
			second, err2 := sweeper.Run(context.Background(), trace, spec)
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		gen.IntRange(1, 900),
		gen.IntRange(1, 1100),
		gen.IntRange(1, 100),
		gen.IntRange(1, 2000),
	))

	properties.Property("sample powers stay within the arriving weight", prop.ForAll(
		func(startNm, spanNm, points, weightA, weightB int) bool {
			spec := specFrom(startNm, spanNm, points)
			total := float64(weightA+weightB) / 100
			trace := detectorTrace(
				core.Path{Status: core.StatusHitDetector, DetectorID: "d1", Length: 50, Weight: float64(weightA) / 100},
				core.Path{Status: core.StatusHitDetector, DetectorID: "d2", Length: 130, Weight: float64(weightB) / 100},
			)

			curve, err := sweeper.Run(context.Background(), trace, spec)
			if err != nil {
				return false
			}
			for _, sample := range curve.Samples {
				if sample.DetectedPowerMw < 0 || sample.DetectedPowerMw > total+0.001 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 900),
		gen.IntRange(1, 1100),
		gen.IntRange(1, 100),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
