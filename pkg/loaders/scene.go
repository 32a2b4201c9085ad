package loaders

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/component"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/spectral"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/tracer"
)

// SceneData contains one parsed scene file: the component layout, the
// beam controls, and an optional sweep range and custom bounds
type SceneData struct {
	Components []component.Component `json:"components"`
	Controls   tracer.Controls       `json:"controls"`
	Sweep      *spectral.SweepSpec   `json:"sweep,omitempty"`
	Bounds     *core.Rect            `json:"bounds,omitempty"`
}

// LoadScene loads a JSON scene file from disk
func LoadScene(filename string) (*SceneData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	scene, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", filename, err)
	}
	return scene, nil
}

// ParseScene decodes scene JSON. Unknown top-level keys are ignored so
// files written by newer tools still load.
func ParseScene(data []byte) (*SceneData, error) {
	var scene SceneData
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %w", err)
	}
	if len(scene.Components) == 0 {
		return nil, fmt.Errorf("scene contains no components")
	}
	return &scene, nil
}

// Layout validates the scene components against its bounds, falling back
// to the default table size when the file does not set bounds
func (s *SceneData) Layout() (*component.Layout, error) {
	bounds := component.DefaultBounds
	if s.Bounds != nil {
		bounds = *s.Bounds
	}
	return component.NewLayout(s.Components, bounds)
}
