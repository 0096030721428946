// Package tasks persists tasks and answers the search and update queries
// over them.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mindvault/mindvault/internal/domain"
	"github.com/mindvault/mindvault/internal/store"
	"github.com/mindvault/mindvault/internal/store/query"
	"github.com/mindvault/mindvault/internal/store/sequence"
)

const taskColumns = "id, name, priority, status, due_date, created_at, deleted"

const insertTask = `
	INSERT INTO tasks (id, name, priority, status, due_date, created_at, deleted)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

// Repository handles task persistence operations.
type Repository struct {
	db  *store.DB
	ids sequence.Allocator
	now func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a Repository that draws ids from ids.
func NewRepository(db *store.DB, ids sequence.Allocator, opts ...Option) *Repository {
	r := &Repository{db: db, ids: ids, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) createdAt() time.Time {
	return r.now().UTC().Truncate(store.TimePrecision)
}

// Create allocates an id and stores a new task. The id stays spent when the
// insert fails.
func (r *Repository) Create(ctx context.Context, in domain.NewTask) (*domain.Task, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	id, err := r.ids.NextID(ctx, sequence.Tasks)
	if err != nil {
		return nil, err
	}

	task := in.Build(id, r.createdAt())
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertTask), insertArgs(task)...); err != nil {
		return nil, store.Wrap("create", err)
	}
	return task, nil
}

// BulkCreate stores all tasks in one transaction. Ids come from a single
// range reservation and follow input order; all tasks share one creation
// timestamp.
func (r *Repository) BulkCreate(ctx context.Context, ins []domain.NewTask) ([]*domain.Task, error) {
	if len(ins) == 0 {
		return []*domain.Task{}, nil
	}

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	first, err := r.ids.NextIDRange(ctx, sequence.Tasks, int64(len(ins)))
	if err != nil {
		return nil, err
	}
	createdAt := r.createdAt()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, store.Wrap("bulk_create", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, r.db.Rebind(insertTask))
	if err != nil {
		return nil, store.Wrap("bulk_create", err)
	}
	defer stmt.Close()

	created := make([]*domain.Task, 0, len(ins))
	for i, in := range ins {
		task := in.Build(first+int64(i), createdAt)
		if _, err := stmt.ExecContext(ctx, insertArgs(task)...); err != nil {
			return nil, store.Wrap("bulk_create", fmt.Errorf("task %d of %d: %w", i+1, len(ins), err))
		}
		created = append(created, task)
	}

	if err := tx.Commit(); err != nil {
		return nil, store.Wrap("bulk_create", err)
	}
	return created, nil
}

// FindAll returns every visible task ordered by id.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return r.list(ctx, "find_all", query.Visible())
}

// FindByID returns the visible task with the given id or store.ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	p := query.ByID(id)
	row := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+taskColumns+" FROM tasks WHERE "+p.SQL()), p.Args()...)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.Wrap("find_by_id", err)
	}
	return task, nil
}

// UpdateByID applies patch to the visible task with the given id and
// returns the updated record. An empty patch returns the task unchanged.
func (r *Repository) UpdateByID(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	set, setArgs := setClause(patch)
	p := query.ByID(id)
	stmt := "UPDATE tasks SET " + set + " WHERE " + p.SQL() + " RETURNING " + taskColumns

	row := r.db.QueryRowContext(ctx, r.db.Rebind(stmt), append(setArgs, p.Args()...)...)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.Wrap("update_by_id", err)
	}
	return task, nil
}

// SoftDeleteByID marks the visible task deleted. It reports false when no
// visible task had that id.
func (r *Repository) SoftDeleteByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.softDelete(ctx, "soft_delete_by_id", query.ByID(id))
	return n > 0, err
}

// BulkSoftDeleteByStatus marks every visible task in status deleted and
// returns how many were changed.
func (r *Repository) BulkSoftDeleteByStatus(ctx context.Context, status domain.Status) (int64, error) {
	return r.softDelete(ctx, "bulk_soft_delete_by_status", query.ByStatus(status))
}

// Search returns the visible tasks matching criteria ordered by id.
func (r *Repository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Task, error) {
	return r.list(ctx, "search", query.Build(criteria))
}

// SearchAndUpdate applies patch to every task matching criteria and then
// returns the tasks that match criteria after the write. Tasks the patch
// moves out of the criteria are updated but not returned. The write and the
// re-query share one transaction, so writers running alongside cannot
// change the returned set between the two statements.
func (r *Repository) SearchAndUpdate(ctx context.Context, criteria domain.SearchCriteria, patch domain.TaskPatch) ([]*domain.Task, error) {
	const op = "search_and_update"
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: search and update needs at least one update field", store.ErrInvalidArgument)
	}

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, r.snapshotTx())
	if err != nil {
		return nil, store.Wrap(op, err)
	}
	defer tx.Rollback()

	set, setArgs := setClause(patch)
	p := query.Build(criteria)
	stmt := "UPDATE tasks SET " + set + " WHERE " + p.SQL()
	if _, err := tx.ExecContext(ctx, r.db.Rebind(stmt), append(setArgs, p.Args()...)...); err != nil {
		return nil, store.Wrap(op, err)
	}

	tasks, err := r.query(ctx, tx, op, p)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, store.Wrap(op, err)
	}
	return tasks, nil
}

// snapshotTx asks Postgres to read every statement of the transaction from
// one snapshot. SQLite transactions are serializable already.
func (r *Repository) snapshotTx() *sql.TxOptions {
	if r.db.Dialect() == store.DialectPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	}
	return nil
}

func (r *Repository) softDelete(ctx context.Context, op string, p query.Predicate) (int64, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	stmt := "UPDATE tasks SET deleted = ? WHERE " + p.SQL()
	result, err := r.db.ExecContext(ctx, r.db.Rebind(stmt), append([]any{true}, p.Args()...)...)
	if err != nil {
		return 0, store.Wrap(op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, store.Wrap(op, err)
	}
	return n, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *Repository) list(ctx context.Context, op string, p query.Predicate) ([]*domain.Task, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	return r.query(ctx, r.db, op, p)
}

func (r *Repository) query(ctx context.Context, q querier, op string, p query.Predicate) ([]*domain.Task, error) {
	stmt := "SELECT " + taskColumns + " FROM tasks WHERE " + p.SQL() + " ORDER BY id ASC"
	rows, err := q.QueryContext(ctx, r.db.Rebind(stmt), p.Args()...)
	if err != nil {
		return nil, store.Wrap(op, err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.Wrap(op, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap(op, err)
	}
	return tasks, nil
}

func setClause(patch domain.TaskPatch) (string, []any) {
	var cols []string
	var args []any
	if patch.Status != nil {
		cols = append(cols, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Priority != nil {
		cols = append(cols, "priority = ?")
		args = append(args, string(*patch.Priority))
	}
	if patch.DueDate != nil {
		cols = append(cols, "due_date = ?")
		args = append(args, store.EncodeTime(*patch.DueDate))
	}
	return strings.Join(cols, ", "), args
}

func insertArgs(task *domain.Task) []any {
	var due sql.NullInt64
	if task.DueDate != nil {
		due = sql.NullInt64{Int64: store.EncodeTime(*task.DueDate), Valid: true}
	}
	return []any{
		task.ID,
		task.Name,
		string(task.Priority),
		string(task.Status),
		due,
		store.EncodeTime(task.CreatedAt),
		false,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*domain.Task, error) {
	var task domain.Task
	var priority, status string
	var due sql.NullInt64
	var createdAt int64
	var deleted sql.NullBool

	if err := s.Scan(&task.ID, &task.Name, &priority, &status, &due, &createdAt, &deleted); err != nil {
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	task.Status = domain.Status(status)
	task.CreatedAt = store.DecodeTime(createdAt)
	if due.Valid {
		d := store.DecodeTime(due.Int64)
		task.DueDate = &d
	}
	if deleted.Valid && deleted.Bool {
		task.MarkDeleted()
	}
	return &task, nil
}
