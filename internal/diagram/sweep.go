package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/spectral"
)

// ExportSweepDiagram exports a power-vs-wavelength chart for one sweep
func ExportSweepDiagram(curve *spectral.Curve, filename string) error {
	if curve == nil || len(curve.Samples) == 0 {
		return fmt.Errorf("sweep curve has no samples")
	}

	p := plot.New()
	p.Title.Text = "Frequency Sweep"
	p.X.Label.Text = "Wavelength (nm)"
	p.Y.Label.Text = "Detected Power (mW)"

	pts := make(plotter.XYs, len(curve.Samples))
	for i, sample := range curve.Samples {
		pts[i] = plotter.XY{X: sample.WavelengthNm, Y: sample.DetectedPowerMw}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 30, G: 100, B: 200, A: 255}
	p.Add(line)

	if curve.Stats.PeakPowerMw > 0 {
		peak, err := plotter.NewScatter(plotter.XYs{
			{X: curve.Stats.PeakWavelengthNm, Y: curve.Stats.PeakPowerMw},
		})
		if err != nil {
			return err
		}
		peak.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		peak.GlyphStyle.Radius = vg.Points(4)
		peak.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(peak)

		// Half-power reference line
		half := curve.Stats.PeakPowerMw / 2
		halfLine, err := plotter.NewLine(plotter.XYs{
			{X: curve.Samples[0].WavelengthNm, Y: half},
			{X: curve.Samples[len(curve.Samples)-1].WavelengthNm, Y: half},
		})
		if err != nil {
			return err
		}
		halfLine.LineStyle.Width = vg.Points(1)
		halfLine.LineStyle.Color = color.Gray{Y: 128}
		halfLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(halfLine)

		label, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: curve.Stats.PeakWavelengthNm, Y: curve.Stats.PeakPowerMw}},
			Labels: []string{fmt.Sprintf("peak %.3f mW", curve.Stats.PeakPowerMw)},
		})
		if err != nil {
			return err
		}
		p.Add(label)
	}

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// save writes the plot, creating the target directory and defaulting to
// PNG for unknown extensions
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
