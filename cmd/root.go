package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ritik-Gupta8/Optical-Labs/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "optical-labs",
	Short: "2D optical bench simulation service",
	Long: `optical-labs - Optical Bench Simulator

Traces laser beams through grid-placed optical components (mirrors,
beam splitters, lenses, detectors, absorbers) and sweeps the source
wavelength to produce power-vs-wavelength curves.

Scenes are JSON files describing the components on the bench. The same
engine backs the CLI commands and the HTTP simulation service.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Printf("  optical-labs v%s\n", version.Version)
		fmt.Println("  2D optical bench simulation service")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    trace    Trace every beam branch through a scene")
		fmt.Println("    sweep    Run a frequency sweep and report the power curve")
		fmt.Println("    serve    Start the HTTP simulation service")
		fmt.Println("    version  Print version information")
		fmt.Println()
		fmt.Println("  Use 'optical-labs --help' to see all options.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
