// Package tools exposes the task service as MCP tools.
package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mindvault/mindvault/internal/domain"
	"github.com/mindvault/mindvault/internal/metrics"
	"github.com/mindvault/mindvault/internal/parse"
	"github.com/mindvault/mindvault/internal/service"
)

// Tool names.
const (
	ToolCurrentDate        = "get_current_date"
	ToolListTasks          = "list_all_user_tasks"
	ToolGetTask            = "fetch_task_details_by_id"
	ToolCreateTask         = "create_new_task"
	ToolUpdateTask         = "update_user_task_by_id"
	ToolDeleteTask         = "delete_user_task_by_id"
	ToolBulkCreate         = "bulk_create_tasks"
	ToolSearchTasks        = "search_tasks_by_params"
	ToolSearchAndUpdate    = "search_and_update_tasks"
	ToolBulkDeleteByStatus = "bulk_delete_tasks_by_status"
)

const (
	statusHelp   = "Status: NotStarted, Pending, InProgress or Completed (synonyms such as 'done' or 'in progress' are accepted)"
	priorityHelp = "Priority: Normal or High ('low' and 'urgent' are accepted)"
	dateHelp     = "Date such as 2025-07-28, 28/07/2025 or 28-07-2025"
)

// Tasks is the part of the task service the tools call.
type Tasks interface {
	Create(ctx context.Context, in domain.NewTask) (*domain.Task, error)
	BulkCreate(ctx context.Context, ins []domain.NewTask) ([]*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
	BulkDeleteByStatus(ctx context.Context, status domain.Status) (int64, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Task, error)
	SearchAndUpdate(ctx context.Context, criteria domain.SearchCriteria, patch domain.TaskPatch) ([]*domain.Task, error)
}

// toolFunc produces the text of a successful call or an error that is
// rendered as a tool error.
type toolFunc func(ctx context.Context, args map[string]any) (string, error)

// Handlers implements the task tools.
type Handlers struct {
	tasks   Tasks
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock overrides the clock used by get_current_date.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		h.now = now
	}
}

// NewHandlers creates the tool handlers. A nil logger discards output and
// nil metrics record nothing.
func NewHandlers(tasks Tasks, log *zap.Logger, m *metrics.Metrics, opts ...Option) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handlers{tasks: tasks, log: log, metrics: m, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds every task tool to s.
func (h *Handlers) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(ToolCurrentDate,
		mcp.WithDescription("Return the current date and time in UTC in several formats. Use it to resolve relative dates such as 'tomorrow' before scheduling a task."),
	), h.handle(ToolCurrentDate, h.currentDate))

	s.AddTool(mcp.NewTool(ToolListTasks,
		mcp.WithDescription("List every task that has not been deleted, with id, name, status, priority and due date."),
	), h.handle(ToolListTasks, h.listTasks))

	s.AddTool(mcp.NewTool(ToolGetTask,
		mcp.WithDescription("Fetch one task by its numeric id."),
		mcp.WithNumber("task_id", mcp.Required(), mcp.Description("Task id")),
	), h.handle(ToolGetTask, h.getTask))

	s.AddTool(mcp.NewTool(ToolCreateTask,
		mcp.WithDescription("Create a task. Priority defaults to Normal and status to NotStarted."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Task name")),
		mcp.WithString("priority", mcp.Description(priorityHelp)),
		mcp.WithString("status", mcp.Description(statusHelp)),
		mcp.WithString("due_date", mcp.Description(dateHelp)),
	), h.handle(ToolCreateTask, h.createTask))

	s.AddTool(mcp.NewTool(ToolUpdateTask,
		mcp.WithDescription("Change the status, priority or due date of a task. Fields that are not given keep their value; at least one is required."),
		mcp.WithNumber("task_id", mcp.Required(), mcp.Description("Task id")),
		mcp.WithString("status", mcp.Description(statusHelp)),
		mcp.WithString("priority", mcp.Description(priorityHelp)),
		mcp.WithString("due_date", mcp.Description(dateHelp)),
	), h.handle(ToolUpdateTask, h.updateTask))

	s.AddTool(mcp.NewTool(ToolDeleteTask,
		mcp.WithDescription("Soft delete a task by id. Deleted tasks no longer appear in lists or searches."),
		mcp.WithNumber("task_id", mcp.Required(), mcp.Description("Task id")),
	), h.handle(ToolDeleteTask, h.deleteTask))

	s.AddTool(mcp.NewTool(ToolBulkCreate,
		mcp.WithDescription("Create several tasks in one atomic batch. Either every task is created or none is."),
		mcp.WithArray("tasks",
			mcp.Required(),
			mcp.Description("Tasks to create"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":     map[string]any{"type": "string", "description": "Task name"},
					"priority": map[string]any{"type": "string", "description": priorityHelp},
					"status":   map[string]any{"type": "string", "description": statusHelp},
					"due_date": map[string]any{"type": "string", "description": dateHelp},
				},
				"required": []string{"name"},
			}),
		),
	), h.handle(ToolBulkCreate, h.bulkCreate))

	s.AddTool(mcp.NewTool(ToolSearchTasks,
		mcp.WithDescription("Search tasks. All filters are optional and combined with AND; query is a case-insensitive substring of the name."),
		mcp.WithString("query", mcp.Description("Text contained in the task name")),
		mcp.WithString("status", mcp.Description(statusHelp)),
		mcp.WithString("priority", mcp.Description(priorityHelp)),
		mcp.WithString("due_date", mcp.Description("Tasks due on this day. "+dateHelp)),
	), h.handle(ToolSearchTasks, h.searchTasks))

	s.AddTool(mcp.NewTool(ToolSearchAndUpdate,
		mcp.WithDescription("Update every task matching the filters and list the tasks that match the filters afterwards. At least one update field is required."),
		mcp.WithString("query", mcp.Description("Text contained in the task name")),
		mcp.WithString("status_filter", mcp.Description("Only tasks in this status. "+statusHelp)),
		mcp.WithString("priority_filter", mcp.Description("Only tasks with this priority. "+priorityHelp)),
		mcp.WithString("due_date_filter", mcp.Description("Only tasks due on this day. "+dateHelp)),
		mcp.WithString("status", mcp.Description("New status. "+statusHelp)),
		mcp.WithString("priority", mcp.Description("New priority. "+priorityHelp)),
		mcp.WithString("due_date", mcp.Description("New due date. "+dateHelp)),
	), h.handle(ToolSearchAndUpdate, h.searchAndUpdate))

	s.AddTool(mcp.NewTool(ToolBulkDeleteByStatus,
		mcp.WithDescription("Soft delete every task in the given status and report how many were deleted."),
		mcp.WithString("status", mcp.Required(), mcp.Description(statusHelp)),
	), h.handle(ToolBulkDeleteByStatus, h.bulkDeleteByStatus))
}

// handle adapts fn to an MCP tool handler and records the call outcome.
// Failures are returned as tool errors, never as protocol errors.
func (h *Handlers) handle(tool string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		text, err := fn(ctx, request.GetArguments())
		outcome := service.Outcome(err)
		h.metrics.ToolCall(tool, outcome)
		h.log.Debug("tool call",
			zap.String("tool", tool),
			zap.String("outcome", outcome),
			zap.Duration("duration", time.Since(start)),
		)
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func (h *Handlers) currentDate(_ context.Context, _ map[string]any) (string, error) {
	return formatCurrentDate(h.now()), nil
}

func (h *Handlers) listTasks(ctx context.Context, _ map[string]any) (string, error) {
	tasks, err := h.tasks.List(ctx)
	if err != nil {
		return "", err
	}
	return formatTasks(tasks), nil
}

func (h *Handlers) getTask(ctx context.Context, args map[string]any) (string, error) {
	id, err := idArg(args)
	if err != nil {
		return "", err
	}
	task, err := h.tasks.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return formatTasks([]*domain.Task{task}), nil
}

func (h *Handlers) createTask(ctx context.Context, args map[string]any) (string, error) {
	var f parse.Fields
	in := newTask(&f, args, "")
	if err := f.Err(); err != nil {
		return "", err
	}
	task, err := h.tasks.Create(ctx, in)
	if err != nil {
		return "", err
	}
	h.log.Info("task created", zap.Int64("id", task.ID))
	return formatTasks([]*domain.Task{task}), nil
}

func (h *Handlers) updateTask(ctx context.Context, args map[string]any) (string, error) {
	id, err := idArg(args)
	if err != nil {
		return "", err
	}
	var f parse.Fields
	patch := domain.TaskPatch{
		Status:   f.Status("status", stringArg(args, "status")),
		Priority: f.Priority("priority", stringArg(args, "priority")),
		DueDate:  f.Date("due_date", stringArg(args, "due_date")),
	}
	if err := f.Err(); err != nil {
		return "", err
	}
	task, err := h.tasks.Update(ctx, id, patch)
	if err != nil {
		return "", err
	}
	return formatTasks([]*domain.Task{task}), nil
}

func (h *Handlers) deleteTask(ctx context.Context, args map[string]any) (string, error) {
	id, err := idArg(args)
	if err != nil {
		return "", err
	}
	deleted, err := h.tasks.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", domain.NewTaskNotFoundError(id)
	}
	return fmt.Sprintf("🗑️ Task #%d deleted", id), nil
}

func (h *Handlers) bulkCreate(ctx context.Context, args map[string]any) (string, error) {
	items, ok := args["tasks"].([]any)
	if !ok {
		return "", domain.NewFieldError("tasks", "must be an array of task objects")
	}

	var f parse.Fields
	ins := make([]domain.NewTask, 0, len(items))
	for i, item := range items {
		prefix := fmt.Sprintf("tasks[%d].", i)
		obj, ok := item.(map[string]any)
		if !ok {
			f.Fail(strings.TrimSuffix(prefix, "."), "must be an object")
			continue
		}
		ins = append(ins, newTask(&f, obj, prefix))
	}
	if err := f.Err(); err != nil {
		return "", err
	}

	tasks, err := h.tasks.BulkCreate(ctx, ins)
	if err != nil {
		return "", err
	}
	h.log.Info("tasks created", zap.Int("count", len(tasks)))
	return formatTasks(tasks), nil
}

func (h *Handlers) searchTasks(ctx context.Context, args map[string]any) (string, error) {
	var f parse.Fields
	criteria := domain.SearchCriteria{
		Query:    optionalString(args, "query"),
		Status:   f.Status("status", stringArg(args, "status")),
		Priority: f.Priority("priority", stringArg(args, "priority")),
		DueDate:  f.Date("due_date", stringArg(args, "due_date")),
	}
	if err := f.Err(); err != nil {
		return "", err
	}
	tasks, err := h.tasks.Search(ctx, criteria)
	if err != nil {
		return "", err
	}
	return formatTasks(tasks), nil
}

func (h *Handlers) searchAndUpdate(ctx context.Context, args map[string]any) (string, error) {
	var f parse.Fields
	criteria := domain.SearchCriteria{
		Query:    optionalString(args, "query"),
		Status:   f.Status("status_filter", stringArg(args, "status_filter")),
		Priority: f.Priority("priority_filter", stringArg(args, "priority_filter")),
		DueDate:  f.Date("due_date_filter", stringArg(args, "due_date_filter")),
	}
	patch := domain.TaskPatch{
		Status:   f.Status("status", stringArg(args, "status")),
		Priority: f.Priority("priority", stringArg(args, "priority")),
		DueDate:  f.Date("due_date", stringArg(args, "due_date")),
	}
	if err := f.Err(); err != nil {
		return "", err
	}
	tasks, err := h.tasks.SearchAndUpdate(ctx, criteria, patch)
	if err != nil {
		return "", err
	}
	return formatTasks(tasks), nil
}

func (h *Handlers) bulkDeleteByStatus(ctx context.Context, args map[string]any) (string, error) {
	var f parse.Fields
	raw := stringArg(args, "status")
	if strings.TrimSpace(raw) == "" {
		f.Fail("status", "is required")
	}
	status := f.Status("status", raw)
	if err := f.Err(); err != nil {
		return "", err
	}
	n, err := h.tasks.BulkDeleteByStatus(ctx, *status)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🗑️ Deleted %d task(s) with status %s", n, statusLabel(*status)), nil
}

func newTask(f *parse.Fields, args map[string]any, prefix string) domain.NewTask {
	name := stringArg(args, "name")
	if strings.TrimSpace(name) == "" {
		f.Fail(prefix+"name", "is required")
	}
	return domain.NewTask{
		Name:     name,
		Priority: f.Priority(prefix+"priority", stringArg(args, "priority")),
		Status:   f.Status(prefix+"status", stringArg(args, "status")),
		DueDate:  f.Date(prefix+"due_date", stringArg(args, "due_date")),
	}
}

// stringArg returns the argument as text. Non-string values are formatted
// so that they fail parsing instead of being ignored.
func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// optionalString reads key like stringArg and returns nil when it is absent
// or blank.
func optionalString(args map[string]any, key string) *string {
	s := stringArg(args, key)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// idArg reads the positive integer task_id argument. JSON numbers arrive
// as float64; numeric strings are accepted too.
func idArg(args map[string]any) (int64, error) {
	const field = "task_id"
	var id int64
	switch v := args[field].(type) {
	case nil:
		return 0, domain.NewFieldError(field, "is required")
	case float64:
		if v != math.Trunc(v) {
			return 0, domain.NewFieldError(field, "must be an integer")
		}
		id = int64(v)
	case int:
		id = int64(v)
	case int64:
		id = v
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, domain.NewFieldError(field, "must be an integer")
		}
		id = n
	default:
		return 0, domain.NewFieldError(field, "must be an integer")
	}
	if id <= 0 {
		return 0, domain.NewFieldError(field, "must be positive")
	}
	return id, nil
}

// errorText renders err for a tool error result.
func errorText(err error) string {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		return "❌ " + err.Error()
	}
	switch de.Code {
	case domain.ErrCodeValidationFailed:
		if _, ok := de.Context["field"]; ok {
			break
		}
		if details, ok := de.Context["details"].([]string); ok && len(details) > 0 {
			return "❌ " + de.Message + ": " + strings.Join(details, "; ")
		}
	case domain.ErrCodeInternalError:
		if id, ok := de.Context["correlation_id"].(string); ok {
			return fmt.Sprintf("❌ %s (reference %s)", de.Message, id)
		}
	}
	return "❌ " + de.Message
}
