package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindvault/mindvault/internal/config"
	"github.com/mindvault/mindvault/internal/identity"
	"github.com/mindvault/mindvault/internal/metrics"
	"github.com/mindvault/mindvault/internal/service"
	"github.com/mindvault/mindvault/internal/store"
	"github.com/mindvault/mindvault/internal/store/sequence"
	"github.com/mindvault/mindvault/internal/store/tasks"
	"github.com/mindvault/mindvault/pkg/mindvault"
)

// loadConfig resolves the layered configuration and applies the global
// connection flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.ResolveConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(config.Layer{ServerHost: serverHost, ServerPort: serverPort}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getClient creates a client from the resolved config and identity
func getClient() (*mindvault.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return mindvault.NewClient(
		mindvault.WithHost(cfg.ServerHost),
		mindvault.WithPort(cfg.ServerPort),
		mindvault.WithClientID(identity.ClientID("mindvault")),
	)
}

// openService opens the configured store and builds the task service on it.
// The caller closes the returned DB.
func openService(ctx context.Context, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (*service.TaskService, *store.DB, error) {
	db, err := store.Open(ctx, cfg.Store())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.DBDriver, err)
	}
	repo := tasks.NewRepository(db, sequence.NewCounterAllocator(db))
	return service.NewTaskService(repo, log, m), db, nil
}

// mapErrorToExitCode maps an error to the appropriate exit code
func mapErrorToExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case mindvault.IsServerNotRunning(err):
		return ExitServerNotRunning
	case mindvault.IsTaskNotFound(err):
		return ExitTaskNotFound
	case mindvault.IsValidationFailed(err), mindvault.IsInvalidArgument(err):
		return ExitValidation
	default:
		return ExitGeneralError
	}
}

// handleError handles an error by printing it and exiting with the appropriate code
func handleError(err error) {
	if err == nil {
		return
	}

	printError(os.Stderr, err, jsonOutput)
	os.Exit(mapErrorToExitCode(err))
}

// parseTaskID parses a positive task id argument.
func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &mindvault.Error{
			Code:    mindvault.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("invalid task id %q", s),
		}
	}
	return id, nil
}

// taskOptions collects the task field flags the user actually set.
func taskOptions(cmd *cobra.Command) []mindvault.TaskOption {
	var opts []mindvault.TaskOption
	flags := cmd.Flags()
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		opts = append(opts, mindvault.WithPriority(v))
	}
	if flags.Changed("status") {
		v, _ := flags.GetString("status")
		opts = append(opts, mindvault.WithStatus(v))
	}
	if flags.Changed("due") {
		v, _ := flags.GetString("due")
		opts = append(opts, mindvault.WithDueDate(v))
	}
	return opts
}

func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String("priority", "", "Priority (Normal, High)")
	cmd.Flags().String("status", "", "Status (NotStarted, Pending, InProgress, Completed)")
	cmd.Flags().String("due", "", "Due date (e.g. 2025-08-01)")
}

// searchOptions collects the search filter flags, each named by prefix
// followed by the field name.
func searchOptions(cmd *cobra.Command, prefix string) []mindvault.SearchOption {
	var opts []mindvault.SearchOption
	flags := cmd.Flags()
	if v, _ := flags.GetString("query"); v != "" {
		opts = append(opts, mindvault.MatchName(v))
	}
	if v, _ := flags.GetString(prefix + "status"); v != "" {
		opts = append(opts, mindvault.MatchStatus(v))
	}
	if v, _ := flags.GetString(prefix + "priority"); v != "" {
		opts = append(opts, mindvault.MatchPriority(v))
	}
	if v, _ := flags.GetString(prefix + "due"); v != "" {
		opts = append(opts, mindvault.MatchDueDate(v))
	}
	return opts
}

func addSearchFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().StringP("query", "q", "", "Case-insensitive text matched against task names")
	cmd.Flags().String(prefix+"status", "", "Only tasks with this status")
	cmd.Flags().String(prefix+"priority", "", "Only tasks with this priority")
	cmd.Flags().String(prefix+"due", "", "Only tasks due on this day (UTC)")
}
