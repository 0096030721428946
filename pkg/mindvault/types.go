package mindvault

import "time"

// Status values accepted and returned by the server.
const (
	StatusNotStarted = "NotStarted"
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
)

// Priority values accepted and returned by the server.
const (
	PriorityNormal = "Normal"
	PriorityHigh   = "High"
)

// TimeLayout is the layout of the date fields of a Task.
const TimeLayout = "02/01/06 15:04:05"

// Task represents a task returned by the server.
type Task struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Priority  string `json:"priority"`
	Status    string `json:"status"`
	DueDate   string `json:"due_date,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Due returns the parsed due date. ok is false when the task has none.
func (t *Task) Due() (due time.Time, ok bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	due, err := time.ParseInLocation(TimeLayout, t.DueDate, time.UTC)
	return due, err == nil
}

// Created returns the parsed creation time.
func (t *Task) Created() (time.Time, error) {
	return time.ParseInLocation(TimeLayout, t.CreatedAt, time.UTC)
}

// NewTask describes one task of a bulk create.
type NewTask struct {
	Name     string `json:"name"`
	Priority string `json:"priority,omitempty"`
	Status   string `json:"status,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
}

type createTaskRequest struct {
	Name string `json:"name"`
	taskFields
}

type bulkCreateRequest struct {
	Tasks []NewTask `json:"tasks"`
}

type searchAndUpdateRequest struct {
	Query          string `json:"query,omitempty"`
	StatusFilter   string `json:"status_filter,omitempty"`
	PriorityFilter string `json:"priority_filter,omitempty"`
	DueDateFilter  string `json:"due_date_filter,omitempty"`
	taskFields
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type bulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
