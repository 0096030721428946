package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindvault/mindvault/internal/domain"
	"github.com/mindvault/mindvault/internal/logging"
	"github.com/mindvault/mindvault/internal/metrics"
	"github.com/mindvault/mindvault/internal/store"
)

// TaskStore is the persistence contract the service orchestrates.
type TaskStore interface {
	Create(ctx context.Context, in domain.NewTask) (*domain.Task, error)
	BulkCreate(ctx context.Context, ins []domain.NewTask) ([]*domain.Task, error)
	FindAll(ctx context.Context) ([]*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	UpdateByID(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	SoftDeleteByID(ctx context.Context, id int64) (bool, error)
	BulkSoftDeleteByStatus(ctx context.Context, status domain.Status) (int64, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Task, error)
	SearchAndUpdate(ctx context.Context, criteria domain.SearchCriteria, patch domain.TaskPatch) ([]*domain.Task, error)
}

// TaskService validates requests, calls the store and converts store
// failures into domain errors.
type TaskService struct {
	store   TaskStore
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewTaskService creates a new TaskService. A nil logger discards output
// and nil metrics record nothing.
func NewTaskService(s TaskStore, log *zap.Logger, m *metrics.Metrics) *TaskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskService{store: s, log: log, metrics: m}
}

// Create creates a new task.
func (s *TaskService) Create(ctx context.Context, in domain.NewTask) (*domain.Task, error) {
	if err := validateNewTask(in, ""); err != nil {
		return nil, s.fail(ctx, "create", err)
	}
	task, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}
	s.ok("create")
	return task, nil
}

// BulkCreate creates all tasks in one batch. An empty batch succeeds with no
// tasks.
func (s *TaskService) BulkCreate(ctx context.Context, ins []domain.NewTask) ([]*domain.Task, error) {
	var details []string
	for i, in := range ins {
		if err := validateNewTask(in, indexedField(i)); err != nil {
			var de *domain.DomainError
			if errors.As(err, &de) {
				details = append(details, detailsOf(de)...)
			}
		}
	}
	if len(details) > 0 {
		return nil, s.fail(ctx, "bulk_create", domain.NewValidationError(details))
	}

	tasks, err := s.store.BulkCreate(ctx, ins)
	if err != nil {
		return nil, s.fail(ctx, "bulk_create", err)
	}
	s.ok("bulk_create")
	return tasks, nil
}

// List returns every visible task.
func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, "find_all", err)
	}
	s.ok("find_all")
	return tasks, nil
}

// Get retrieves a task by ID.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "find_by_id", withID(err, id))
	}
	s.ok("find_by_id")
	return task, nil
}

// Update applies a partial update. At least one field must be supplied.
func (s *TaskService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if err := validatePatch(patch); err != nil {
		return nil, s.fail(ctx, "update_by_id", err)
	}
	task, err := s.store.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, s.fail(ctx, "update_by_id", withID(err, id))
	}
	s.ok("update_by_id")
	return task, nil
}

// Delete soft-deletes a task. It reports false when no visible task had
// that id.
func (s *TaskService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.SoftDeleteByID(ctx, id)
	if err != nil {
		return false, s.fail(ctx, "soft_delete_by_id", err)
	}
	s.ok("soft_delete_by_id")
	return deleted, nil
}

// BulkDeleteByStatus soft-deletes every visible task in status and returns
// how many were deleted.
func (s *TaskService) BulkDeleteByStatus(ctx context.Context, status domain.Status) (int64, error) {
	if !status.IsValid() {
		return 0, s.fail(ctx, "bulk_soft_delete_by_status", domain.NewFieldError("status", "must be one of NotStarted, Pending, InProgress, Completed"))
	}
	n, err := s.store.BulkSoftDeleteByStatus(ctx, status)
	if err != nil {
		return 0, s.fail(ctx, "bulk_soft_delete_by_status", err)
	}
	s.ok("bulk_soft_delete_by_status")
	return n, nil
}

// Search returns the visible tasks matching criteria.
func (s *TaskService) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Task, error) {
	if err := validateCriteria(criteria); err != nil {
		return nil, s.fail(ctx, "search", err)
	}
	tasks, err := s.store.Search(ctx, criteria)
	if err != nil {
		return nil, s.fail(ctx, "search", err)
	}
	s.ok("search")
	return tasks, nil
}

// SearchAndUpdate patches every task matching criteria. The result holds the
// tasks that still match criteria after the update, so tasks moved out of
// the criteria by the patch are not returned.
func (s *TaskService) SearchAndUpdate(ctx context.Context, criteria domain.SearchCriteria, patch domain.TaskPatch) ([]*domain.Task, error) {
	if err := validateCriteria(criteria); err != nil {
		return nil, s.fail(ctx, "search_and_update", err)
	}
	if err := validatePatch(patch); err != nil {
		return nil, s.fail(ctx, "search_and_update", err)
	}
	tasks, err := s.store.SearchAndUpdate(ctx, criteria, patch)
	if err != nil {
		return nil, s.fail(ctx, "search_and_update", err)
	}
	s.ok("search_and_update")
	return tasks, nil
}

func (s *TaskService) ok(op string) {
	s.metrics.StoreOp(op, metrics.OutcomeOK)
}

// fail converts err into a *domain.DomainError and records the outcome.
// Storage failures are logged under a fresh correlation id that is the only
// detail returned to the caller.
func (s *TaskService) fail(ctx context.Context, op string, err error) error {
	var de *domain.DomainError
	switch {
	case errors.As(err, &de):
		s.metrics.StoreOp(op, outcomeOf(de.Code))
		return de
	case errors.Is(err, store.ErrInvalidArgument):
		s.metrics.StoreOp(op, metrics.OutcomeInvalid)
		return domain.NewInvalidArgumentError(err.Error())
	}

	correlationID := uuid.NewString()
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("correlation_id", correlationID),
		zap.Error(err),
	}
	var se *store.StorageError
	if errors.As(err, &se) && se.Timeout() {
		fields = append(fields, zap.Bool("timeout", true))
	}
	logging.WithRequestID(ctx, s.log).Error("storage operation failed", fields...)
	s.metrics.StoreOp(op, metrics.OutcomeError)
	return domain.NewInternalError(correlationID)
}

// withID turns store.ErrNotFound into the not-found error for id.
func withID(err error, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return domain.NewTaskNotFoundError(id)
	}
	return err
}

// Outcome classifies an error returned by TaskService into a metrics
// outcome label.
func Outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	var de *domain.DomainError
	if errors.As(err, &de) {
		return outcomeOf(de.Code)
	}
	return metrics.OutcomeError
}

func outcomeOf(code domain.ErrorCode) string {
	switch code {
	case domain.ErrCodeTaskNotFound:
		return metrics.OutcomeNotFound
	case domain.ErrCodeValidationFailed, domain.ErrCodeInvalidArgument:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func indexedField(i int) string {
	return fmt.Sprintf("tasks[%d].", i)
}

func validateNewTask(in domain.NewTask, prefix string) error {
	var details []string
	if strings.TrimSpace(in.Name) == "" {
		details = append(details, prefix+"name is required")
	}
	if in.Priority != nil && !in.Priority.IsValid() {
		details = append(details, prefix+"priority must be Normal or High")
	}
	if in.Status != nil && !in.Status.IsValid() {
		details = append(details, prefix+"status must be one of NotStarted, Pending, InProgress, Completed")
	}
	return detailsError(details)
}

func validatePatch(p domain.TaskPatch) error {
	if p.IsEmpty() {
		return domain.NewValidationError([]string{"at least one of status, priority or due_date is required"})
	}
	var details []string
	if p.Priority != nil && !p.Priority.IsValid() {
		details = append(details, "priority must be Normal or High")
	}
	if p.Status != nil && !p.Status.IsValid() {
		details = append(details, "status must be one of NotStarted, Pending, InProgress, Completed")
	}
	return detailsError(details)
}

func validateCriteria(c domain.SearchCriteria) error {
	var details []string
	if c.Priority != nil && !c.Priority.IsValid() {
		details = append(details, "priority filter must be Normal or High")
	}
	if c.Status != nil && !c.Status.IsValid() {
		details = append(details, "status filter must be one of NotStarted, Pending, InProgress, Completed")
	}
	return detailsError(details)
}

func detailsError(details []string) error {
	if len(details) == 0 {
		return nil
	}
	return domain.NewValidationError(details)
}

func detailsOf(de *domain.DomainError) []string {
	if d, ok := de.Context["details"].([]string); ok {
		return d
	}
	return []string{de.Message}
}
