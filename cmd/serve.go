package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Ritik-Gupta8/Optical-Labs/internal/config"
	"github.com/Ritik-Gupta8/Optical-Labs/internal/observability"
	"github.com/Ritik-Gupta8/Optical-Labs/web/server"
)

var (
	servePort      int
	serveConfig    string
	serveTelemetry bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP simulation service",
	Long: `Start the HTTP API that the web bench editor talks to.

Endpoints:
  POST /simulate_path    trace the beams through a submitted layout
  POST /simulate_sweep   run a frequency sweep over a submitted layout
  GET  /api/health       liveness probe
  GET  /api/status       version and uptime
  GET  /metrics          Prometheus metrics

Configuration is read from --config, the OPTICAL_CONFIG environment
variable, or built-in defaults, in that order.`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (overrides config)")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "YAML configuration file")
	serveCmd.Flags().BoolVar(&serveTelemetry, "telemetry", false, "Export OTLP traces")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(serveConfig)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if serveTelemetry {
		shutdown, err := observability.InitTelemetry(context.Background(), "optical-labs")
		if err != nil {
			fmt.Printf("Error: telemetry init failed: %v\n", err)
			return
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("telemetry shutdown: %v", err)
			}
		}()
	}

	port := cfg.Port()
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	srv := server.NewServer(server.Config{
		Port:    port,
		Tracer:  cfg.TracerSettings(),
		Model:   cfg.SpectralModel(),
		Workers: cfg.Workers(),
	})

	if err := srv.Start(); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}
