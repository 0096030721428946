package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mindvault/mindvault/pkg/mindvault"
)

func encodeJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// printTask prints a single task to the writer
func printTask(w io.Writer, task *mindvault.Task, jsonOutput bool) {
	if jsonOutput {
		encodeJSON(w, task)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", task.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", task.Name)
	fmt.Fprintf(tw, "Status:\t%s\n", task.Status)
	fmt.Fprintf(tw, "Priority:\t%s\n", task.Priority)
	if task.DueDate != "" {
		fmt.Fprintf(tw, "Due:\t%s\n", task.DueDate)
	}
	fmt.Fprintf(tw, "Created:\t%s\n", task.CreatedAt)
	tw.Flush()
}

// printTaskList prints tasks as a table
func printTaskList(w io.Writer, tasks []*mindvault.Task, jsonOutput bool) {
	if jsonOutput {
		if tasks == nil {
			tasks = []*mindvault.Task{}
		}
		encodeJSON(w, tasks)
		return
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tSTATUS\tPRIORITY\tDUE\n")
	fmt.Fprintf(tw, "--\t----\t------\t--------\t---\n")
	for _, task := range tasks {
		due := "-"
		if d, ok := task.Due(); ok {
			due = d.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			task.ID, truncate(task.Name, 40), task.Status, task.Priority, due)
	}
	tw.Flush()
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	var apiErr *mindvault.Error
	isAPIErr := errors.As(err, &apiErr)

	if jsonOutput {
		body := map[string]interface{}{"message": err.Error()}
		if isAPIErr {
			body["code"] = apiErr.Code
			body["message"] = apiErr.Message
			if len(apiErr.Context) > 0 {
				body["context"] = apiErr.Context
			}
		}
		encodeJSON(w, map[string]interface{}{"error": body})
		return
	}

	if !isAPIErr {
		fmt.Fprintf(w, "Error: %s\n", err.Error())
		return
	}
	fmt.Fprintf(w, "Error: %s\n", apiErr.Message)
	if details := apiErr.Details(); len(details) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(details, "\n  "))
	}
	if id := apiErr.CorrelationID(); id != "" {
		fmt.Fprintf(w, "Reference: %s\n", id)
	}
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		encodeJSON(w, map[string]interface{}{"message": message})
		return
	}

	fmt.Fprintln(w, message)
}

// truncate shortens s to maxLen runes.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
