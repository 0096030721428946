package mindvault

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const tasksPath = "/v1/tasks"

func taskPath(id int64) string {
	return tasksPath + "/" + strconv.FormatInt(id, 10)
}

// CreateTask creates a new task with the given name.
func (c *Client) CreateTask(ctx context.Context, name string, opts ...TaskOption) (*Task, error) {
	body := createTaskRequest{Name: name, taskFields: newTaskFields(opts)}
	req, err := c.newJSONRequest(ctx, http.MethodPost, tasksPath, body)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.do(req, "create task", http.StatusCreated, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// BulkCreateTasks creates all tasks in one batch. Either every task is
// created or none is.
func (c *Client) BulkCreateTasks(ctx context.Context, tasks []NewTask) ([]*Task, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, tasksPath+"/bulk", bulkCreateRequest{Tasks: tasks})
	if err != nil {
		return nil, err
	}

	var created []*Task
	if err := c.do(req, "bulk create tasks", http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// ListTasks returns every task that has not been deleted.
func (c *Client) ListTasks(ctx context.Context) ([]*Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, tasksPath, nil)
	if err != nil {
		return nil, err
	}

	var tasks []*Task
	if err := c.do(req, "list tasks", http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a task by ID.
func (c *Client) GetTask(ctx context.Context, id int64) (*Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, taskPath(id), nil)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.do(req, "get task", http.StatusOK, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask changes the given fields of a task and keeps the others.
func (c *Client) UpdateTask(ctx context.Context, id int64, opts ...TaskOption) (*Task, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPatch, taskPath(id), newTaskFields(opts))
	if err != nil {
		return nil, err
	}

	var task Task
	if err := c.do(req, "update task", http.StatusOK, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask soft-deletes a task. It reports false when no visible task had
// that id.
func (c *Client) DeleteTask(ctx context.Context, id int64) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, taskPath(id), nil)
	if err != nil {
		return false, err
	}

	var out deleteResponse
	if err := c.do(req, "delete task", http.StatusOK, &out); err != nil {
		return false, err
	}
	return out.Deleted, nil
}

// DeleteTasksByStatus soft-deletes every task in status and returns how
// many were deleted.
func (c *Client) DeleteTasksByStatus(ctx context.Context, status string) (int64, error) {
	path := tasksPath + "?" + url.Values{"status": {status}}.Encode()
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return 0, err
	}

	var out bulkDeleteResponse
	if err := c.do(req, "delete tasks by status", http.StatusOK, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

// SearchTasks returns the tasks matching every given filter.
func (c *Client) SearchTasks(ctx context.Context, opts ...SearchOption) ([]*Task, error) {
	f := newSearchFilters(opts)
	params := url.Values{}
	if f.query != "" {
		params.Set("q", f.query)
	}
	if f.status != "" {
		params.Set("status", f.status)
	}
	if f.priority != "" {
		params.Set("priority", f.priority)
	}
	if f.dueDate != "" {
		params.Set("due_date", f.dueDate)
	}

	path := tasksPath + "/search"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var tasks []*Task
	if err := c.do(req, "search tasks", http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SearchAndUpdateTasks applies the updates to every task matching the
// filters and returns the tasks that match the filters afterwards.
func (c *Client) SearchAndUpdateTasks(ctx context.Context, filters []SearchOption, updates ...TaskOption) ([]*Task, error) {
	f := newSearchFilters(filters)
	body := searchAndUpdateRequest{
		Query:          f.query,
		StatusFilter:   f.status,
		PriorityFilter: f.priority,
		DueDateFilter:  f.dueDate,
		taskFields:     newTaskFields(updates),
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, tasksPath+"/search/update", body)
	if err != nil {
		return nil, err
	}

	var tasks []*Task
	if err := c.do(req, "search and update tasks", http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
