package diagram

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/component"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/tracer"
)

var kindColors = map[component.Kind]color.RGBA{
	component.KindSource:   {R: 220, G: 40, B: 40, A: 255},
	component.KindMirror:   {R: 60, G: 60, B: 60, A: 255},
	component.KindSplitter: {R: 40, G: 120, B: 220, A: 255},
	component.KindLens:     {R: 40, G: 180, B: 120, A: 255},
	component.KindDetector: {R: 200, G: 140, B: 20, A: 255},
	component.KindAbsorber: {R: 0, G: 0, B: 0, A: 255},
}

// ExportLayoutDiagram exports the bench layout with the traced beams
// drawn over it. The trace may be nil to draw the layout alone.
func ExportLayoutDiagram(layout *component.Layout, trace *tracer.Trace, filename string) error {
	p := plot.New()
	p.Title.Text = "Optical Layout"
	p.X.Label.Text = "X (grid units)"
	p.Y.Label.Text = "Y (grid units)"

	bounds := layout.Bounds
	outline := plotter.XYs{
		{X: bounds.Min.X, Y: bounds.Min.Y},
		{X: bounds.Max.X, Y: bounds.Min.Y},
		{X: bounds.Max.X, Y: bounds.Max.Y},
		{X: bounds.Min.X, Y: bounds.Max.Y},
		{X: bounds.Min.X, Y: bounds.Min.Y},
	}
	outlineLine, err := plotter.NewLine(outline)
	if err != nil {
		return err
	}
	outlineLine.LineStyle.Width = vg.Points(1)
	outlineLine.LineStyle.Color = color.Gray{Y: 96}
	p.Add(outlineLine)

	if trace != nil {
		for _, node := range trace.Nodes {
			for _, seg := range node.Segments {
				beam, err := plotter.NewLine(plotter.XYs{
					{X: seg.Start.X, Y: seg.Start.Y},
					{X: seg.End.X, Y: seg.End.Y},
				})
				if err != nil {
					return err
				}
				beam.LineStyle.Width = vg.Points(1.5)
				beam.LineStyle.Color = color.RGBA{R: 220, G: 40, B: 40, A: 200}
				p.Add(beam)
			}
		}
	}

	for _, c := range layout.Components {
		marker, err := plotter.NewScatter(plotter.XYs{{X: c.Position.X, Y: c.Position.Y}})
		if err != nil {
			return err
		}
		glyphColor, ok := kindColors[c.Kind]
		if !ok {
			glyphColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
		}
		marker.GlyphStyle.Color = glyphColor
		marker.GlyphStyle.Radius = vg.Points(5)
		marker.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Add(marker)

		label, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: c.Position.X + 10, Y: c.Position.Y + 10}},
			Labels: []string{c.ID},
		})
		if err != nil {
			return err
		}
		p.Add(label)
	}

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}
