package domain

import (
	"encoding/json"
	"time"
)

// DisplayLayout is the layout used when dates are rendered for people.
const DisplayLayout = "02/01/06 15:04:05"

// Status represents the progress state of a task.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// ValidStatuses contains all valid task status values.
var ValidStatuses = []Status{StatusNotStarted, StatusPending, StatusInProgress, StatusCompleted}

// IsValid checks if the status is a valid task status.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the human readable form of the status.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	default:
		return string(s)
	}
}

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
)

// ValidPriorities contains all valid task priority values.
var ValidPriorities = []Priority{PriorityNormal, PriorityHigh}

// IsValid checks if the priority is a valid task priority.
func (p Priority) IsValid() bool {
	for _, v := range ValidPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// Lifecycle is the soft-delete state of a stored task. The only transition
// is Active to Deleted.
type Lifecycle uint8

const (
	LifecycleActive Lifecycle = iota
	LifecycleDeleted
)

// Visible reports whether standard reads may return the task.
func (l Lifecycle) Visible() bool {
	return l == LifecycleActive
}

func (l Lifecycle) String() string {
	if l == LifecycleDeleted {
		return "deleted"
	}
	return "active"
}

// Task represents a unit of work in the system.
type Task struct {
	ID        int64
	Name      string
	Priority  Priority
	Status    Status
	DueDate   *time.Time
	CreatedAt time.Time

	lifecycle Lifecycle
}

// Lifecycle returns the soft-delete state of the task.
func (t *Task) Lifecycle() Lifecycle {
	return t.lifecycle
}

// MarkDeleted moves the task into the Deleted state.
func (t *Task) MarkDeleted() {
	t.lifecycle = LifecycleDeleted
}

// taskJSON is the wire shape of a task.
type taskJSON struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Priority  Priority `json:"priority"`
	Status    Status   `json:"status"`
	DueDate   string   `json:"due_date,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// MarshalJSON renders dates with DisplayLayout in UTC.
func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{
		ID:        t.ID,
		Name:      t.Name,
		Priority:  t.Priority,
		Status:    t.Status,
		CreatedAt: FormatDisplay(t.CreatedAt),
	}
	if t.DueDate != nil {
		out.DueDate = FormatDisplay(*t.DueDate)
	}
	return json.Marshal(out)
}

// FormatDisplay formats a timestamp with DisplayLayout in UTC.
func FormatDisplay(ts time.Time) string {
	return ts.UTC().Format(DisplayLayout)
}

// NewTask holds the fields accepted when creating a task. Nil pointers take
// the defaults (Normal priority, NotStarted status, no due date).
type NewTask struct {
	Name     string
	Priority *Priority
	Status   *Status
	DueDate  *time.Time
}

// Build returns the task that NewTask describes, with defaults applied.
func (n NewTask) Build(id int64, createdAt time.Time) *Task {
	task := &Task{
		ID:        id,
		Name:      n.Name,
		Priority:  PriorityNormal,
		Status:    StatusNotStarted,
		DueDate:   n.DueDate,
		CreatedAt: createdAt,
	}
	if n.Priority != nil {
		task.Priority = *n.Priority
	}
	if n.Status != nil {
		task.Status = *n.Status
	}
	return task
}

// TaskPatch lists the fields a partial update may change. Fields left nil
// keep their stored value. The lifecycle is not patchable.
type TaskPatch struct {
	Status   *Status
	Priority *Priority
	DueDate  *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Status == nil && p.Priority == nil && p.DueDate == nil
}

// Apply copies the supplied fields onto task.
func (p TaskPatch) Apply(task *Task) {
	if p.Status != nil {
		task.Status = *p.Status
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.DueDate != nil {
		d := *p.DueDate
		task.DueDate = &d
	}
}

// SearchCriteria holds the optional filters of a task search. A nil field
// imposes no constraint.
type SearchCriteria struct {
	Query    *string
	Status   *Status
	Priority *Priority
	DueDate  *time.Time
}

// StatusPtr returns a pointer to s.
func StatusPtr(s Status) *Status { return &s }

// PriorityPtr returns a pointer to p.
func PriorityPtr(p Priority) *Priority { return &p }

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }
