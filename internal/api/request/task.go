package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mindvault/mindvault/internal/domain"
	"github.com/mindvault/mindvault/internal/parse"
)

// CreateTaskRequest represents a request to create a task. Enum and date
// fields take human literals such as "urgent" or "28/07/2025".
type CreateTaskRequest struct {
	Name     string  `json:"name"`
	Priority *string `json:"priority,omitempty"`
	Status   *string `json:"status,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
}

// NewTask parses the literals of the request.
func (r *CreateTaskRequest) NewTask() (domain.NewTask, error) {
	var f parse.Fields
	in := r.bind(&f, "")
	return in, f.Err()
}

func (r *CreateTaskRequest) bind(f *parse.Fields, prefix string) domain.NewTask {
	return domain.NewTask{
		Name:     r.Name,
		Priority: f.Priority(prefix+"priority", deref(r.Priority)),
		Status:   f.Status(prefix+"status", deref(r.Status)),
		DueDate:  f.Date(prefix+"due_date", deref(r.DueDate)),
	}
}

// BulkCreateRequest represents a request to create several tasks at once.
type BulkCreateRequest struct {
	Tasks []CreateTaskRequest `json:"tasks"`
}

// NewTasks parses every task of the batch, reporting all failures together.
func (r *BulkCreateRequest) NewTasks() ([]domain.NewTask, error) {
	var f parse.Fields
	out := make([]domain.NewTask, len(r.Tasks))
	for i := range r.Tasks {
		out[i] = r.Tasks[i].bind(&f, fmt.Sprintf("tasks[%d].", i))
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTaskRequest represents a partial update of one task.
type UpdateTaskRequest struct {
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
}

// Patch parses the literals of the request.
func (r *UpdateTaskRequest) Patch() (domain.TaskPatch, error) {
	var f parse.Fields
	p := domain.TaskPatch{
		Status:   f.Status("status", deref(r.Status)),
		Priority: f.Priority("priority", deref(r.Priority)),
		DueDate:  f.Date("due_date", deref(r.DueDate)),
	}
	return p, f.Err()
}

// SearchAndUpdateRequest selects tasks with the *_filter fields and the
// query, then applies the remaining fields to them.
type SearchAndUpdateRequest struct {
	Query          *string `json:"query,omitempty"`
	StatusFilter   *string `json:"status_filter,omitempty"`
	PriorityFilter *string `json:"priority_filter,omitempty"`
	DueDateFilter  *string `json:"due_date_filter,omitempty"`
	Status         *string `json:"status,omitempty"`
	Priority       *string `json:"priority,omitempty"`
	DueDate        *string `json:"due_date,omitempty"`
}

// Parse returns the search criteria and the patch.
func (r *SearchAndUpdateRequest) Parse() (domain.SearchCriteria, domain.TaskPatch, error) {
	var f parse.Fields
	c := domain.SearchCriteria{
		Query:    r.Query,
		Status:   f.Status("status_filter", deref(r.StatusFilter)),
		Priority: f.Priority("priority_filter", deref(r.PriorityFilter)),
		DueDate:  f.Date("due_date_filter", deref(r.DueDateFilter)),
	}
	p := domain.TaskPatch{
		Status:   f.Status("status", deref(r.Status)),
		Priority: f.Priority("priority", deref(r.Priority)),
		DueDate:  f.Date("due_date", deref(r.DueDate)),
	}
	return c, p, f.Err()
}

// DecodeJSON decodes JSON from request body into the given value.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ParseID extracts the {id} path parameter.
func ParseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewFieldError("id", "must be a positive integer")
	}
	return id, nil
}

// ParseSearch reads the q, status, priority and due_date query parameters.
func ParseSearch(r *http.Request) (domain.SearchCriteria, error) {
	q := r.URL.Query()
	var f parse.Fields
	c := domain.SearchCriteria{
		Status:   f.Status("status", q.Get("status")),
		Priority: f.Priority("priority", q.Get("priority")),
		DueDate:  f.Date("due_date", q.Get("due_date")),
	}
	if q.Has("q") {
		term := q.Get("q")
		c.Query = &term
	}
	return c, f.Err()
}

// ParseRequiredStatus reads the mandatory status query parameter.
func ParseRequiredStatus(r *http.Request) (domain.Status, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return "", domain.NewFieldError("status", "is required")
	}
	status, err := parse.Status(raw)
	if err != nil {
		return "", domain.NewFieldError("status", err.Error())
	}
	return status, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
