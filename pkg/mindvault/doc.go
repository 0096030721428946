// Package mindvault provides a Go SDK for the MindVault task server.
//
// # Getting Started
//
// Start the server with `mindvault serve`, then create a client:
//
//	client, err := mindvault.NewClient(mindvault.WithPort(7432))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Tasks
//
// Field values are the same human literals the server accepts everywhere,
// so "urgent" is High priority and "done" is Completed:
//
//	task, err := client.CreateTask(ctx, "Write report",
//	    mindvault.WithPriority("urgent"),
//	    mindvault.WithDueDate("28/07/2025"),
//	)
//
//	task, err = client.UpdateTask(ctx, task.ID, mindvault.WithStatus("in progress"))
//
//	deleted, err := client.DeleteTask(ctx, task.ID)
//
// Create several tasks atomically:
//
//	tasks, err := client.BulkCreateTasks(ctx, []mindvault.NewTask{
//	    {Name: "Plan sprint"},
//	    {Name: "Review PRs", Priority: "high"},
//	})
//
// # Search
//
//	found, err := client.SearchTasks(ctx,
//	    mindvault.MatchName("report"),
//	    mindvault.MatchStatus("pending"),
//	)
//
//	updated, err := client.SearchAndUpdateTasks(ctx,
//	    []mindvault.SearchOption{mindvault.MatchName("bug")},
//	    mindvault.WithPriority("high"),
//	)
//
// # Error Handling
//
//	task, err := client.GetTask(ctx, 42)
//	if err != nil {
//	    if mindvault.IsTaskNotFound(err) {
//	        // No such task
//	    } else if mindvault.IsServerNotRunning(err) {
//	        // Server is not reachable
//	    }
//	}
package mindvault
