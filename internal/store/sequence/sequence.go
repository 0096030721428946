// Package sequence allocates task ids from named counters.
package sequence

import (
	"context"
	"fmt"

	"github.com/mindvault/mindvault/internal/store"
)

// Tasks is the counter name used for task ids.
const Tasks = "tasks"

// Allocator hands out unique, strictly increasing ids for a named sequence.
type Allocator interface {
	NextID(ctx context.Context, name string) (int64, error)
	NextIDRange(ctx context.Context, name string, count int64) (int64, error)
}

// The counter row is created and incremented by one statement, so
// concurrent callers never observe the same value.
const upsertCounter = `
	INSERT INTO counters (name, seq) VALUES (?, ?)
	ON CONFLICT (name) DO UPDATE SET seq = counters.seq + excluded.seq
	RETURNING seq
`

// CounterAllocator keeps one counter row per sequence in the counters table.
type CounterAllocator struct {
	db *store.DB
}

// NewCounterAllocator creates a CounterAllocator.
func NewCounterAllocator(db *store.DB) *CounterAllocator {
	return &CounterAllocator{db: db}
}

// NextID reserves one id. The first id of a fresh sequence is 1.
func (a *CounterAllocator) NextID(ctx context.Context, name string) (int64, error) {
	return a.NextIDRange(ctx, name, 1)
}

// NextIDRange reserves count contiguous ids and returns the first.
func (a *CounterAllocator) NextIDRange(ctx context.Context, name string, count int64) (int64, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: id range count must be positive, got %d", store.ErrInvalidArgument, count)
	}

	ctx, cancel := a.db.WithTimeout(ctx)
	defer cancel()

	var seq int64
	if err := a.db.QueryRowContext(ctx, a.db.Rebind(upsertCounter), name, count).Scan(&seq); err != nil {
		return 0, store.Wrap("next_id_range", err)
	}
	return seq - count + 1, nil
}
