package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Ritik-Gupta8/Optical-Labs/internal/diagram"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/loaders"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/tracer"
)

var (
	traceScene      string
	traceAngle      float64
	traceMaxBounces int
	traceMaxNodes   int
	traceDiagram    string
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Trace every beam branch through a scene",
	Long: `Trace the laser beam through the scene, following reflections,
splits and lens refractions until every branch terminates.

Each branch ends by hitting a detector, being absorbed, leaving the
bench, or exceeding the bounce limit.

Examples:
  # Trace a scene and print the branch table
  optical-labs trace --scene bench.json

  # Steer the launch angle and export a diagram of the beams
  optical-labs trace --scene bench.json --angle 5 --diagram beams.png`,
	Run: runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().StringVarP(&traceScene, "scene", "s", "", "Scene JSON file [required]")
	traceCmd.Flags().Float64VarP(&traceAngle, "angle", "a", 0, "Launch angle offset in degrees (overrides the scene)")
	traceCmd.Flags().IntVar(&traceMaxBounces, "max-bounces", 0, "Maximum interactions per branch")
	traceCmd.Flags().IntVar(&traceMaxNodes, "max-nodes", 0, "Maximum branches per trace")
	traceCmd.Flags().StringVar(&traceDiagram, "diagram", "", "Export a layout diagram (PNG/SVG/PDF)")

	traceCmd.MarkFlagRequired("scene")
}

func runTrace(cmd *cobra.Command, args []string) {
	scene, err := loaders.LoadScene(traceScene)
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
		controls.AngleOfIncidenceDeg = traceAngle
	}

	config := tracer.DefaultConfig()
	if traceMaxBounces > 0 {
		config.MaxBounces = traceMaxBounces
	}
	if traceMaxNodes > 0 {
		config.MaxNodes = traceMaxNodes
	}

	trace, err := tracer.New(config).Resolve(layout, controls)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BEAM TRACE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("SCENE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  File:\t%s\n", traceScene)
	fmt.Fprintf(w, "  Components:\t%d\n", len(layout.Components))
	fmt.Fprintf(w, "  Launch angle offset:\t%.1f°\n", controls.AngleOfIncidenceDeg)
	w.Flush()
	fmt.Println()

	fmt.Println("BRANCHES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tStatus\tDetector\tLength\tPower\n")
	for i, path := range trace.Paths {
		detector := path.DetectorID
		if detector == "" {
			detector = "-"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%.2f\t%.3f mW\n", i, path.Status, detector, path.Length, path.Weight)
	}
	w.Flush()
	fmt.Println()

	if trace.DetectorHit() {
		fmt.Println("  Detector hit ✓")
	} else {
		fmt.Println("  No branch reached a detector")
	}
	fmt.Println()

	if traceDiagram != "" {
		if err := diagram.ExportLayoutDiagram(layout, trace, traceDiagram); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("  Layout diagram written to %s\n\n", traceDiagram)
	}
}
