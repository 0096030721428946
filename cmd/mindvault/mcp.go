package main

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/mindvault/mindvault/internal/logging"
	"github.com/mindvault/mindvault/internal/metrics"
	"github.com/mindvault/mindvault/internal/tools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the MCP tools over stdio",
	Long: `Serve the MCP tools over standard input and output for MCP clients that
spawn the server themselves. Logs go to standard error.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := serveConfig(cmd)
		if err != nil {
			handleError(err)
		}

		log := logging.New(cfg.Logging())
		defer log.Sync()

		m := metrics.New()
		svc, db, err := openService(cmd.Context(), cfg, log, m)
		if err != nil {
			handleError(err)
		}
		defer db.Close()

		s := tools.NewServer(version, tools.NewHandlers(svc, log, m))
		if err := mcpserver.ServeStdio(s); err != nil {
			db.Close()
			handleError(fmt.Errorf("mcp server stopped with error: %w", err))
		}
	},
}

func init() {
	addStoreFlags(mcpCmd)
	rootCmd.AddCommand(mcpCmd)
}
