package mindvault

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/mindvault/mindvault/internal/api"
	"github.com/mindvault/mindvault/internal/service"
	"github.com/mindvault/mindvault/internal/store"
	"github.com/mindvault/mindvault/internal/store/sequence"
	"github.com/mindvault/mindvault/internal/store/tasks"
)

// newTestServer runs the real router over a temp SQLite database.
func newTestServer(t *testing.T) *Client {
	t.Helper()
	db, err := store.Open(context.Background(), store.Config{DSN: filepath.Join(t.TempDir(), "sdk.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := tasks.NewRepository(db, sequence.NewCounterAllocator(db))
	router := api.NewRouter(api.Options{
		Tasks: service.NewTaskService(repo, nil, nil),
		DB:    db,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return newTestClient(t, srv)
}

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	if err := client.Health(ctx); err != nil {
		t.Fatalf("Health: %v", err)
	}

	task, err := client.CreateTask(ctx, "Write report", WithPriority("urgent"), WithDueDate("28/07/2025"))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID != 1 || task.Priority != PriorityHigh || task.Status != StatusNotStarted {
		t.Errorf("unexpected task %+v", task)
	}
	if task.DueDate != "28/07/25 00:00:00" {
		t.Errorf("due_date = %q", task.DueDate)
	}

	got, err := client.GetTask(ctx, task.ID)
	if err != nil || got.Name != "Write report" {
		t.Fatalf("GetTask = %+v, %v", got, err)
	}

	updated, err := client.UpdateTask(ctx, task.ID, WithStatus("in progress"))
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Status != StatusInProgress || updated.Priority != PriorityHigh {
		t.Errorf("update did not preserve fields: %+v", updated)
	}

	if _, err := client.UpdateTask(ctx, task.ID); !IsValidationFailed(err) {
		t.Errorf("empty update: expected validation error, got %v", err)
	}

	deleted, err := client.DeleteTask(ctx, task.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteTask = %v, %v", deleted, err)
	}
	deleted, err = client.DeleteTask(ctx, task.ID)
	if err != nil || deleted {
		t.Errorf("second DeleteTask = %v, %v", deleted, err)
	}

	if _, err := client.GetTask(ctx, task.ID); !IsTaskNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestBulkSearchAndDelete(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	created, err := client.BulkCreateTasks(ctx, []NewTask{
		{Name: "Fix login bug", Status: "pending"},
		{Name: "Fix signup BUG", Status: "pending", DueDate: "2025-08-01"},
		{Name: "Write docs", Status: "done"},
	})
	if err != nil {
		t.Fatalf("BulkCreateTasks: %v", err)
	}
	for i, task := range created {
		if task.ID != int64(i+1) {
			t.Errorf("task %d has id %d", i, task.ID)
		}
	}

	found, err := client.SearchTasks(ctx, MatchName("bug"))
	if err != nil || len(found) != 2 {
		t.Fatalf("SearchTasks = %d tasks, %v", len(found), err)
	}

	found, err = client.SearchTasks(ctx, MatchName("bug"), MatchDueDate("2025-08-01"))
	if err != nil || len(found) != 1 || found[0].ID != 2 {
		t.Fatalf("SearchTasks with due date = %+v, %v", found, err)
	}

	if _, err := client.SearchTasks(ctx, MatchStatus("asleep")); !IsValidationFailed(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	updated, err := client.SearchAndUpdateTasks(ctx,
		[]SearchOption{MatchName("fix"), MatchStatus("pending")},
		WithPriority("high"))
	if err != nil || len(updated) != 2 {
		t.Fatalf("SearchAndUpdateTasks = %d tasks, %v", len(updated), err)
	}
	for _, task := range updated {
		if task.Priority != PriorityHigh {
			t.Errorf("task %d priority = %s", task.ID, task.Priority)
		}
	}

	n, err := client.DeleteTasksByStatus(ctx, "pending")
	if err != nil || n != 2 {
		t.Fatalf("DeleteTasksByStatus = %d, %v", n, err)
	}

	remaining, err := client.ListTasks(ctx)
	if err != nil || len(remaining) != 1 || remaining[0].Name != "Write docs" {
		t.Fatalf("ListTasks = %+v, %v", remaining, err)
	}
}

func TestBulkCreate_PartialFailureCreatesNothing(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	_, err := client.BulkCreateTasks(ctx, []NewTask{{Name: "ok"}, {Name: "bad", Priority: "whenever"}})
	if !IsValidationFailed(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	tasks, err := client.ListTasks(ctx)
	if err != nil || len(tasks) != 0 {
		t.Errorf("ListTasks = %d tasks, %v", len(tasks), err)
	}
}

func TestCreateRequestBody(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1,"name":"x","priority":"Normal","status":"Pending","created_at":"01/01/25 00:00:00"}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv).CreateTask(context.Background(), "x", WithStatus("pending")); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if body["name"] != "x" || body["status"] != "pending" {
		t.Errorf("unexpected body %v", body)
	}
	if _, ok := body["priority"]; ok {
		t.Errorf("unset priority must be omitted, body %v", body)
	}
}
