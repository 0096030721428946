package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindvault/mindvault/pkg/mindvault"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new task",
	Long: `Create a new task with the given name.

New tasks default to status NotStarted and priority Normal.
Due dates accept YYYY-MM-DD, MM/DD/YYYY, DD/MM/YYYY and DD/MM/YY.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}
		handleError(runCreate(cmd.Context(), c, os.Stdout, args[0], taskOptions(cmd)))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}
		handleError(runList(cmd.Context(), c, os.Stdout))
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseTaskID(args[0])
		if err != nil {
			handleError(err)
		}
		c, err := getClient()
		if err != nil {
			handleError(err)
		}
		handleError(runShow(cmd.Context(), c, os.Stdout, id))
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Long:  `Update the status, priority or due date of a task. Only the flags given are changed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseTaskID(args[0])
		if err != nil {
			handleError(err)
		}
		c, err := getClient()
		if err != nil {
			handleError(err)
		}
		handleError(runUpdate(cmd.Context(), c, os.Stdout, id, taskOptions(cmd)))
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseTaskID(args[0])
		if err != nil {
			handleError(err)
		}
		c, err := getClient()
		if err != nil {
			handleError(err)
		}
		handleError(runDelete(cmd.Context(), c, os.Stdout, id))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search tasks",
	Long:  `Search tasks by name text, status, priority and due day. All given filters must match.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}
		handleError(runSearch(cmd.Context(), c, os.Stdout, searchOptions(cmd, "")))
	},
}

var searchUpdateCmd = &cobra.Command{
	Use:   "search-update",
	Short: "Update every task matching a search",
	Long: `Apply the --status, --priority and --due updates to every task matching the
--query and --where-* filters, then print the tasks that match after the update.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}
		handleError(runSearchUpdate(cmd.Context(), c, os.Stdout, searchOptions(cmd, "where-"), taskOptions(cmd)))
	},
}

var bulkCreateCmd = &cobra.Command{
	Use:   "bulk-create [name...]",
	Short: "Create several tasks at once",
	Long: `Create one task per name argument, sharing the --status, --priority and --due flags.

With --file, tasks are read instead from a JSON array of objects with the keys
name, status, priority and due_date. Use --file - to read standard input.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		batch, err := collectNewTasks(cmd, args, file)
		if err != nil {
			handleError(err)
		}
		c, err := getClient()
		if err != nil {
			handleError(err)
		}
		handleError(runBulkCreate(cmd.Context(), c, os.Stdout, batch))
	},
}

var bulkDeleteCmd = &cobra.Command{
	Use:   "bulk-delete <status>",
	Short: "Delete every task with a status",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}
		handleError(runBulkDelete(cmd.Context(), c, os.Stdout, args[0]))
	},
}

func init() {
	addTaskFlags(createCmd)
	addTaskFlags(updateCmd)
	addTaskFlags(searchUpdateCmd)
	addTaskFlags(bulkCreateCmd)
	addSearchFlags(searchCmd, "")
	addSearchFlags(searchUpdateCmd, "where-")
	bulkCreateCmd.Flags().StringP("file", "f", "", "Read tasks from a JSON file (- for stdin)")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(searchUpdateCmd)
	rootCmd.AddCommand(bulkCreateCmd)
	rootCmd.AddCommand(bulkDeleteCmd)
}

func runCreate(ctx context.Context, c *mindvault.Client, w io.Writer, name string, opts []mindvault.TaskOption) error {
	task, err := c.CreateTask(ctx, name, opts...)
	if err != nil {
		return err
	}
	printTask(w, task, jsonOutput)
	return nil
}

func runList(ctx context.Context, c *mindvault.Client, w io.Writer) error {
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		return err
	}
	printTaskList(w, tasks, jsonOutput)
	return nil
}

func runShow(ctx context.Context, c *mindvault.Client, w io.Writer, id int64) error {
	task, err := c.GetTask(ctx, id)
	if err != nil {
		return err
	}
	printTask(w, task, jsonOutput)
	return nil
}

func runUpdate(ctx context.Context, c *mindvault.Client, w io.Writer, id int64, opts []mindvault.TaskOption) error {
	task, err := c.UpdateTask(ctx, id, opts...)
	if err != nil {
		return err
	}
	printTask(w, task, jsonOutput)
	return nil
}

func runDelete(ctx context.Context, c *mindvault.Client, w io.Writer, id int64) error {
	deleted, err := c.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &mindvault.Error{
			Code:    mindvault.ErrCodeTaskNotFound,
			Message: fmt.Sprintf("No task with id %d", id),
		}
	}
	printSuccess(w, fmt.Sprintf("Task #%d deleted", id), jsonOutput)
	return nil
}

func runSearch(ctx context.Context, c *mindvault.Client, w io.Writer, opts []mindvault.SearchOption) error {
	tasks, err := c.SearchTasks(ctx, opts...)
	if err != nil {
		return err
	}
	printTaskList(w, tasks, jsonOutput)
	return nil
}

func runSearchUpdate(ctx context.Context, c *mindvault.Client, w io.Writer, filters []mindvault.SearchOption, updates []mindvault.TaskOption) error {
	tasks, err := c.SearchAndUpdateTasks(ctx, filters, updates...)
	if err != nil {
		return err
	}
	printTaskList(w, tasks, jsonOutput)
	return nil
}

func runBulkCreate(ctx context.Context, c *mindvault.Client, w io.Writer, batch []mindvault.NewTask) error {
	tasks, err := c.BulkCreateTasks(ctx, batch)
	if err != nil {
		return err
	}
	printTaskList(w, tasks, jsonOutput)
	return nil
}

func runBulkDelete(ctx context.Context, c *mindvault.Client, w io.Writer, status string) error {
	n, err := c.DeleteTasksByStatus(ctx, status)
	if err != nil {
		return err
	}
	printSuccess(w, fmt.Sprintf("Deleted %d task(s) with status %s", n, status), jsonOutput)
	return nil
}

// collectNewTasks builds a bulk create batch either from file or from the
// name arguments combined with the task flags.
func collectNewTasks(cmd *cobra.Command, names []string, file string) ([]mindvault.NewTask, error) {
	if file != "" {
		if len(names) > 0 {
			return nil, fmt.Errorf("task names cannot be combined with --file")
		}
		if file == "-" {
			return readNewTasks(cmd.InOrStdin())
		}
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readNewTasks(f)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one task name or --file is required")
	}

	flags := cmd.Flags()
	priority, _ := flags.GetString("priority")
	status, _ := flags.GetString("status")
	due, _ := flags.GetString("due")
	batch := make([]mindvault.NewTask, 0, len(names))
	for _, name := range names {
		batch = append(batch, mindvault.NewTask{Name: name, Priority: priority, Status: status, DueDate: due})
	}
	return batch, nil
}

// readNewTasks decodes a JSON array of tasks.
func readNewTasks(r io.Reader) ([]mindvault.NewTask, error) {
	var batch []mindvault.NewTask
	if err := json.NewDecoder(r).Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return batch, nil
}
