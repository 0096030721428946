package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindvault/mindvault/internal/api"
	"github.com/mindvault/mindvault/internal/config"
	"github.com/mindvault/mindvault/internal/logging"
	"github.com/mindvault/mindvault/internal/metrics"
	"github.com/mindvault/mindvault/internal/server"
	"github.com/mindvault/mindvault/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MindVault server",
	Long: `Run the REST API in the foreground. Unless disabled, the MCP tools are
served on the same listener at /mcp. SIGINT or SIGTERM shuts the server down
gracefully.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := serveConfig(cmd)
		if err != nil {
			handleError(err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := runServe(ctx, cfg); err != nil {
			stop()
			handleError(err)
		}
	},
}

func init() {
	addStoreFlags(serveCmd)
	serveCmd.Flags().Bool("mcp", true, "Serve the MCP tools at /mcp")
	rootCmd.AddCommand(serveCmd)
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("db-driver", "", "Database driver (sqlite, postgres)")
	cmd.Flags().String("db-dsn", "", "SQLite path or Postgres connection string")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().String("log-encoding", "", "Log encoding (json, console)")
	cmd.Flags().String("log-file", "", "Also write JSON logs to this file, rotated by size")
}

// serveConfig resolves the configuration and applies the server flags.
func serveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	var layer config.Layer
	layer.DBDriver, _ = flags.GetString("db-driver")
	layer.DBDSN, _ = flags.GetString("db-dsn")
	layer.LogLevel, _ = flags.GetString("log-level")
	layer.LogEncoding, _ = flags.GetString("log-encoding")
	layer.LogFile, _ = flags.GetString("log-file")
	if flags.Lookup("mcp") != nil && flags.Changed("mcp") {
		enabled, _ := flags.GetBool("mcp")
		layer.EnableMCP = &enabled
	}
	if err := cfg.Apply(layer); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runServe serves the REST API, and the MCP tools when enabled, until ctx
// is canceled.
func runServe(ctx context.Context, cfg *config.Config) error {
	log := logging.New(cfg.Logging())
	defer log.Sync()

	m := metrics.New()
	svc, db, err := openService(ctx, cfg, log, m)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := api.Options{Tasks: svc, DB: db, Logger: log, Metrics: m}
	if cfg.EnableMCP {
		mcp := tools.NewServer(version, tools.NewHandlers(svc, log, m))
		opts.MCP = mcpserver.NewStreamableHTTPServer(mcp, mcpserver.WithEndpointPath("/mcp"))
	}

	log.Info("starting mindvault",
		zap.String("version", version),
		zap.String("addr", cfg.Addr()),
		zap.String("db_driver", string(cfg.DBDriver)),
		zap.Bool("mcp", cfg.EnableMCP),
		zap.String("project_file", cfg.ProjectFile),
	)
	return server.New(cfg.Addr(), api.NewRouter(opts), log).Run(ctx)
}
