package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ritik-Gupta8/Optical-Labs/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of optical-labs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("optical-labs v%s\n", version.Version)
		fmt.Printf("commit: %s, built: %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
