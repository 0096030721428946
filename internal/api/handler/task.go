package handler

import (
	"net/http"

	"github.com/mindvault/mindvault/internal/api/request"
	"github.com/mindvault/mindvault/internal/api/response"
	"github.com/mindvault/mindvault/internal/domain"
	"github.com/mindvault/mindvault/internal/service"
)

// TaskHandler handles task CRUD and search operations.
type TaskHandler struct {
	svc *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func invalidBody() error {
	return domain.NewValidationError([]string{"Invalid JSON body"})
}

// CreateTask handles POST /v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, invalidBody())
		return
	}

	in, err := req.NewTask()
	if err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.svc.Create(r.Context(), in)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, task)
}

// BulkCreateTasks handles POST /v1/tasks/bulk.
func (h *TaskHandler) BulkCreateTasks(w http.ResponseWriter, r *http.Request) {
	var req request.BulkCreateRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, invalidBody())
		return
	}

	ins, err := req.NewTasks()
	if err != nil {
		response.Error(w, err)
		return
	}

	tasks, err := h.svc.BulkCreate(r.Context(), ins)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, tasks)
}

// ListTasks handles GET /v1/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, tasks)
}

// GetTask handles GET /v1/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// UpdateTask handles PATCH /v1/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req request.UpdateTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, invalidBody())
		return
	}

	patch, err := req.Patch()
	if err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// DeleteTask handles DELETE /v1/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]bool{"deleted": deleted})
}

// BulkDeleteTasks handles DELETE /v1/tasks?status=S.
func (h *TaskHandler) BulkDeleteTasks(w http.ResponseWriter, r *http.Request) {
	status, err := request.ParseRequiredStatus(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	n, err := h.svc.BulkDeleteByStatus(r.Context(), status)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]int64{"deleted": n})
}

// SearchTasks handles GET /v1/tasks/search.
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	criteria, err := request.ParseSearch(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	tasks, err := h.svc.Search(r.Context(), criteria)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, tasks)
}

// SearchAndUpdateTasks handles POST /v1/tasks/search/update.
func (h *TaskHandler) SearchAndUpdateTasks(w http.ResponseWriter, r *http.Request) {
	var req request.SearchAndUpdateRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, invalidBody())
		return
	}

	criteria, patch, err := req.Parse()
	if err != nil {
		response.Error(w, err)
		return
	}

	tasks, err := h.svc.SearchAndUpdate(r.Context(), criteria, patch)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, tasks)
}
