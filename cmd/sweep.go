package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Ritik-Gupta8/Optical-Labs/internal/diagram"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/loaders"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/spectral"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/tracer"
)

var (
	sweepScene   string
	sweepAngle   float64
	sweepStart   float64
	sweepStop    float64
	sweepPoints  int
	sweepWorkers int
	sweepDiagram string
	sweepJSON    bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a frequency sweep and report the power curve",
	Long: `Trace the scene once, then sweep the source wavelength across the
requested range and sample the power arriving at the detectors.

The sweep range comes from the scene file's "sweep" section; the
--start, --stop and --points flags override it.

Examples:
  # Sweep using the range stored in the scene
  optical-labs sweep --scene bench.json

  # Override the range and export the curve as a chart
  optical-labs sweep --scene bench.json --start 400 --stop 1000 --points 500 --diagram curve.png`,
	Run: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&sweepScene, "scene", "s", "", "Scene JSON file [required]")
	sweepCmd.Flags().Float64VarP(&sweepAngle, "angle", "a", 0, "Launch angle offset in degrees (overrides the scene)")
	sweepCmd.Flags().Float64Var(&sweepStart, "start", 400, "Sweep start wavelength (nm)")
	sweepCmd.Flags().Float64Var(&sweepStop, "stop", 1000, "Sweep stop wavelength (nm)")
	sweepCmd.Flags().IntVarP(&sweepPoints, "points", "n", 200, "Number of sample points")
	sweepCmd.Flags().IntVarP(&sweepWorkers, "workers", "w", 0, "Sweep workers (0 = one per CPU)")
	sweepCmd.Flags().StringVar(&sweepDiagram, "diagram", "", "Export the curve as a chart (PNG/SVG/PDF)")
	sweepCmd.Flags().BoolVar(&sweepJSON, "json", false, "Print the sampled curve as JSON")

	sweepCmd.MarkFlagRequired("scene")
}

func runSweep(cmd *cobra.Command, args []string) {
	scene, err := loaders.LoadScene(sweepScene)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	layout, err := scene.Layout()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	controls := scene.Controls
	if cmd.Flags().Changed("angle") {
		controls.AngleOfIncidenceDeg = sweepAngle
	}

	spec := spectral.SweepSpec{StartNm: sweepStart, StopNm: sweepStop, Points: sweepPoints}
	if scene.Sweep != nil {
		spec = *scene.Sweep
		if cmd.Flags().Changed("start") {
			spec.StartNm = sweepStart
		}
		if cmd.Flags().Changed("stop") {
			spec.StopNm = sweepStop
		}
		if cmd.Flags().Changed("points") {
			spec.Points = sweepPoints
		}
	}

	trace, err := tracer.New(tracer.DefaultConfig()).Resolve(layout, controls)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	sweeper := spectral.NewSweeper(spectral.DefaultModel(), sweepWorkers, nil)
	curve, err := sweeper.Run(context.Background(), trace, spec)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if sweepJSON {
		out, err := json.MarshalIndent(curve.Samples, "", "  ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println(string(out))
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     FREQUENCY SWEEP")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("SWEEP:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Range:\t%.1f - %.1f nm\n", spec.StartNm, spec.StopNm)
	fmt.Fprintf(w, "  Points:\t%d\n", spec.Points)
	fmt.Fprintf(w, "  Detector paths:\t%d\n", len(trace.DetectorPaths()))
	w.Flush()
	fmt.Println()

	fmt.Println("RESULTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if curve.DetectorHit {
		fmt.Fprintf(w, "  Peak power:\t%.3f mW at %.1f nm\n", curve.Stats.PeakPowerMw, curve.Stats.PeakWavelengthNm)
		fmt.Fprintf(w, "  Mean power:\t%.3f mW\n", curve.Stats.MeanPowerMw)
		fmt.Fprintf(w, "  Half-power bandwidth:\t%.1f nm\n", curve.Stats.BandwidthNm)
	} else {
		fmt.Fprintf(w, "  No detector hit, the curve is flat zero\n")
	}
	w.Flush()
	fmt.Println()

	if sweepDiagram != "" {
		if err := diagram.ExportSweepDiagram(curve, sweepDiagram); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("  Sweep chart written to %s\n\n", sweepDiagram)
	}
}
