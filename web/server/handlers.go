package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/component"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/spectral"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/tracer"
)

// PathRequest represents a beam trace request from the client
type PathRequest struct {
	Components []component.Component `json:"components"`
	Controls   tracer.Controls       `json:"controls"`
}

// SweepRequest adds the frequency sweep range to a trace request
type SweepRequest struct {
	Components     []component.Component `json:"components"`
	Controls       tracer.Controls       `json:"controls"`
	FrequencySweep spectral.SweepSpec    `json:"frequency_sweep"`
}

// PathSegment is one straight beam run encoded as [[x1,y1],[x2,y2]]
type PathSegment [2][2]float64

// PathResponse carries every traced beam branch
type PathResponse struct {
	AllPaths    [][]PathSegment `json:"all_paths"`    // per-branch segment lists
	Branches    int             `json:"branches"`     // number of terminal branches
	DetectorHit bool            `json:"detector_hit"` // any branch reached a detector
}

// SweepResponse carries the sampled power curve
type SweepResponse struct {
	FrequencySweepResults []spectral.Sample `json:"frequency_sweep_results"`
	DetectorHit           bool              `json:"detector_hit"`
	Stats                 spectral.Stats    `json:"stats"`
}

// ErrorResponse reports a rejected simulation request
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSimulatePath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	trace, err := s.resolve(req.Components, req.Controls)
	if err != nil {
		renderError(c, err)
		return
	}
	s.metrics.traces.Inc()

	c.JSON(http.StatusOK, PathResponse{
		AllPaths:    collectPaths(trace),
		Branches:    len(trace.Paths),
		DetectorHit: trace.DetectorHit(),
	})
}

func (s *Server) handleSimulateSweep(c *gin.Context) {
	var req SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	trace, err := s.resolve(req.Components, req.Controls)
	if err != nil {
		renderError(c, err)
		return
	}
	s.metrics.traces.Inc()

	start := time.Now()
	curve, err := s.sweeper.Run(c.Request.Context(), trace, req.FrequencySweep)
	if err != nil {
		renderError(c, err)
		return
	}
	s.metrics.sweeps.Inc()
	s.metrics.sweepDuration.Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, SweepResponse{
		FrequencySweepResults: curve.Samples,
		DetectorHit:           curve.DetectorHit,
		Stats:                 curve.Stats,
	})
}

// resolve validates the submitted components and traces the beam tree
func (s *Server) resolve(components []component.Component, controls tracer.Controls) (*tracer.Trace, error) {
	layout, err := component.NewLayout(components, component.DefaultBounds)
	if err != nil {
		return nil, err
	}
	return s.tracer.Resolve(layout, controls)
}

// collectPaths flattens the trace into the wire format: one entry per
// branch, each a list of [[x1,y1],[x2,y2]] segments
func collectPaths(trace *tracer.Trace) [][]PathSegment {
	paths := make([][]PathSegment, 0, len(trace.Nodes))
	for _, node := range trace.Nodes {
		if len(node.Segments) == 0 {
			continue
		}
		segments := make([]PathSegment, len(node.Segments))
		for i, seg := range node.Segments {
			segments[i] = PathSegment{
				{seg.Start.X, seg.Start.Y},
				{seg.End.X, seg.End.Y},
			}
		}
		paths = append(paths, segments)
	}
	return paths
}

// renderError maps simulation failures onto HTTP statuses. Layout and
// sweep validation problems are the client's fault; everything else is a
// server error.
func renderError(c *gin.Context, err error) {
	var cfgErr *core.ConfigurationError
	var boundsErr *core.LayoutBoundsError

	switch {
	case errors.As(err, &cfgErr), errors.As(err, &boundsErr), errors.Is(err, core.ErrInvalidSweepRange):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
