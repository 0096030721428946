// Package query composes SQL predicates over the tasks table. Every
// predicate it produces carries the visibility filter.
package query

import (
	"strings"
	"time"

	"github.com/mindvault/mindvault/internal/domain"
	"github.com/mindvault/mindvault/internal/store"
)

const visibleClause = "(deleted IS NULL OR deleted = ?)"

// Predicate is a conjunction of SQL conditions with their arguments.
type Predicate struct {
	clauses []string
	args    []any
}

// Visible matches tasks that have not been soft-deleted.
func Visible() Predicate {
	return Predicate{
		clauses: []string{visibleClause},
		args:    []any{false},
	}
}

// and returns a copy of p with one more condition.
func (p Predicate) and(clause string, args ...any) Predicate {
	out := Predicate{
		clauses: make([]string, 0, len(p.clauses)+1),
		args:    make([]any, 0, len(p.args)+len(args)),
	}
	out.clauses = append(append(out.clauses, p.clauses...), clause)
	out.args = append(append(out.args, p.args...), args...)
	return out
}

// SQL renders the conditions joined by AND.
func (p Predicate) SQL() string {
	return strings.Join(p.clauses, " AND ")
}

// Args returns the placeholder arguments in order.
func (p Predicate) Args() []any {
	return p.args
}

// ByID matches the visible task with the given id.
func ByID(id int64) Predicate {
	return Visible().and("id = ?", id)
}

// ByStatus matches visible tasks in the given status.
func ByStatus(status domain.Status) Predicate {
	return Visible().and("status = ?", string(status))
}

// Build translates search criteria into a predicate. Absent criteria add
// no condition.
func Build(c domain.SearchCriteria) Predicate {
	p := Visible()
	if c.Query != nil && *c.Query != "" {
		p = p.and(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(*c.Query))+"%")
	}
	if c.Status != nil {
		p = p.and("status = ?", string(*c.Status))
	}
	if c.Priority != nil {
		p = p.and("priority = ?", string(*c.Priority))
	}
	if c.DueDate != nil {
		start, end := DayBounds(*c.DueDate)
		p = p.and("due_date >= ? AND due_date < ?", store.EncodeTime(start), store.EncodeTime(end))
	}
	return p
}

// DayBounds returns the UTC midnight that starts the calendar day of t and
// the midnight that follows it.
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
