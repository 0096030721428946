package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "mindvault",
	Short:   "MindVault task manager",
	Long:    `A task manager with a REST API and an MCP tool server for AI assistants.`,
	Version: version,
}

// Global flags
var (
	jsonOutput bool
	serverHost string
	serverPort int
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&serverHost, "host", "", "Server host (overrides config)")
	rootCmd.PersistentFlags().IntVar(&serverPort, "port", 0, "Server port (overrides config)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitGeneralError)
	}
}
