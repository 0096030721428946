package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNotStarted, true},
		{StatusPending, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{Status("done"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestStatus_Label(t *testing.T) {
	if got := StatusNotStarted.Label(); got != "Not Started" {
		t.Errorf("Label() = %q, want %q", got, "Not Started")
	}
	if got := StatusInProgress.Label(); got != "In Progress" {
		t.Errorf("Label() = %q, want %q", got, "In Progress")
	}
	if got := StatusCompleted.Label(); got != "Completed" {
		t.Errorf("Label() = %q, want %q", got, "Completed")
	}
}

func TestPriority_IsValid(t *testing.T) {
	if !PriorityNormal.IsValid() || !PriorityHigh.IsValid() {
		t.Error("Normal and High should be valid")
	}
	if Priority("urgent").IsValid() {
		t.Error("urgent is a literal, not a stored priority")
	}
}

func TestNewTask_BuildDefaults(t *testing.T) {
	created := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	task := NewTask{Name: "Write report"}.Build(7, created)

	if task.ID != 7 {
		t.Errorf("ID = %d, want 7", task.ID)
	}
	if task.Priority != PriorityNormal {
		t.Errorf("Priority = %v, want %v", task.Priority, PriorityNormal)
	}
	if task.Status != StatusNotStarted {
		t.Errorf("Status = %v, want %v", task.Status, StatusNotStarted)
	}
	if task.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", task.DueDate)
	}
	if !task.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", task.CreatedAt, created)
	}
	if task.Lifecycle() != LifecycleActive {
		t.Errorf("Lifecycle = %v, want active", task.Lifecycle())
	}
}

func TestNewTask_BuildOverrides(t *testing.T) {
	due := time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC)
	task := NewTask{
		Name:     "Ship",
		Priority: PriorityPtr(PriorityHigh),
		Status:   StatusPtr(StatusPending),
		DueDate:  &due,
	}.Build(1, time.Now())

	if task.Priority != PriorityHigh || task.Status != StatusPending {
		t.Errorf("got %v/%v, want High/Pending", task.Priority, task.Status)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", task.DueDate, due)
	}
}

func TestTask_MarkDeleted(t *testing.T) {
	task := &Task{ID: 1}
	if !task.Lifecycle().Visible() {
		t.Fatal("new task should be visible")
	}
	task.MarkDeleted()
	if task.Lifecycle() != LifecycleDeleted {
		t.Errorf("Lifecycle = %v, want deleted", task.Lifecycle())
	}
	if task.Lifecycle().Visible() {
		t.Error("deleted task should not be visible")
	}
}

func TestTaskPatch(t *testing.T) {
	if !(TaskPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}

	due := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{Priority: PriorityHigh, Status: StatusPending}
	patch := TaskPatch{DueDate: &due}
	if patch.IsEmpty() {
		t.Fatal("patch with due date should not be empty")
	}
	patch.Apply(task)

	if task.Priority != PriorityHigh || task.Status != StatusPending {
		t.Errorf("untouched fields changed: %v/%v", task.Priority, task.Status)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", task.DueDate, due)
	}
}

func TestTask_MarshalJSON(t *testing.T) {
	due := time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC)
	task := Task{
		ID:        3,
		Name:      "Pay rent",
		Priority:  PriorityHigh,
		Status:    StatusInProgress,
		DueDate:   &due,
		CreatedAt: time.Date(2025, 7, 1, 14, 5, 9, 0, time.UTC),
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got["name"] != "Pay rent" {
		t.Errorf("name = %v", got["name"])
	}
	if got["priority"] != "High" || got["status"] != "InProgress" {
		t.Errorf("priority/status = %v/%v", got["priority"], got["status"])
	}
	if got["due_date"] != "28/07/25 00:00:00" {
		t.Errorf("due_date = %v, want 28/07/25 00:00:00", got["due_date"])
	}
	if got["created_at"] != "01/07/25 14:05:09" {
		t.Errorf("created_at = %v, want 01/07/25 14:05:09", got["created_at"])
	}
	if _, ok := got["deleted"]; ok {
		t.Error("deleted marker must not be serialized")
	}
}

func TestTask_MarshalJSON_OmitsMissingDueDate(t *testing.T) {
	data, err := json.Marshal(Task{ID: 1, Name: "x", CreatedAt: time.Unix(0, 0)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := got["due_date"]; ok {
		t.Errorf("due_date should be omitted, got %v", got["due_date"])
	}
}
