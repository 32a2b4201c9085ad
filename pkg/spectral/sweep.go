package spectral

import (
	"context"
	"fmt"
	"math"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/tracer"
)

// Samples per worker task
const chunkSize = 64

// SweepSpec defines the wavelength range of a frequency sweep
type SweepSpec struct {
	StartNm float64 `json:"start_nm"`
	StopNm  float64 `json:"stop_nm"`
	Points  int     `json:"points"`
}

// Validate rejects ranges that cannot produce a curve. All failures wrap
// core.ErrInvalidSweepRange.
func (s SweepSpec) Validate() error {
	if s.Points < 1 {
		return fmt.Errorf("%w: points %d, need at least 1", core.ErrInvalidSweepRange, s.Points)
	}
	if s.StartNm <= 0 {
		return fmt.Errorf("%w: start %g nm must be positive", core.ErrInvalidSweepRange, s.StartNm)
	}
	if s.StartNm >= s.StopNm {
		return fmt.Errorf("%w: start %g nm must be below stop %g nm", core.ErrInvalidSweepRange, s.StartNm, s.StopNm)
	}
	return nil
}

// Wavelength returns the i-th sample wavelength in nm. Samples are spaced
// evenly and include both endpoints; a single-point sweep sits at the range
// start.
func (s SweepSpec) Wavelength(i int) float64 {
	if s.Points <= 1 {
		return s.StartNm
	}
	return s.StartNm + (s.StopNm-s.StartNm)*float64(i)/float64(s.Points-1)
}

// Sample is one point of a spectral curve, rounded for the wire format
type Sample struct {
	WavelengthNm    float64 `json:"wavelength_nm"`
	DetectedPowerMw float64 `json:"detected_power_mw"`
}

// Curve is the spectral response of one resolved trace
type Curve struct {
	Samples     []Sample
	DetectorHit bool
	Stats       Stats
}

// Sweeper evaluates spectral curves over wavelength sweeps using a worker
// pool. A Sweeper is stateless between runs and safe for concurrent use.
type Sweeper struct {
	model      Model
	numWorkers int
	logger     core.Logger
}

// NewSweeper creates a sweeper with the given detection model.
// numWorkers <= 0 selects the CPU count.
func NewSweeper(model Model, numWorkers int, logger core.Logger) *Sweeper {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Sweeper{
		model:      model,
		numWorkers: numWorkers,
		logger:     logger,
	}
}

// Run evaluates the sweep against the trace's detector paths and assembles
// the curve. The range is validated before any work starts; an invalid range
// never yields a partial curve. A trace with no detector path produces an
// all-zero curve over the same wavelengths.
func (s *Sweeper) Run(ctx context.Context, trace *tracer.Trace, spec SweepSpec) (*Curve, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	paths := trace.DetectorPaths()
	powers := make([]float64, spec.Points)

	taskCount := (spec.Points + chunkSize - 1) / chunkSize
	pool := newSamplePool(ctx, s.model, paths, spec, powers, s.numWorkers, taskCount)

	s.logger.Printf("Sweep: %d samples across %.1f-%.1f nm over %d detector paths (using %d workers)\n",
		spec.Points, spec.StartNm, spec.StopNm, len(paths), pool.NumWorkers())

	pool.Start()
	for taskID := 0; taskID < taskCount; taskID++ {
		start := taskID * chunkSize
		end := start + chunkSize
		if end > spec.Points {
			end = spec.Points
		}
		pool.SubmitTask(SampleTask{Start: start, End: end, TaskID: taskID})
	}

	var runErr error
	for i := 0; i < taskCount; i++ {
		result, ok := pool.GetResult()
		if !ok {
			runErr = fmt.Errorf("sample pool closed unexpectedly")
			break
		}
		if result.Err != nil && runErr == nil {
			runErr = result.Err
		}
	}
	pool.Stop()

	if runErr != nil {
		return nil, runErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	samples := make([]Sample, spec.Points)
	for i := range samples {
		samples[i] = Sample{
			WavelengthNm:    roundTo(spec.Wavelength(i), 1),
			DetectedPowerMw: roundTo(math.Max(0, powers[i]), 3),
		}
	}

	return &Curve{
		Samples:     samples,
		DetectorHit: len(paths) > 0,
		Stats:       computeStats(samples),
	}, nil
}

// roundTo rounds v to the given number of decimal places
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
