// Package parse turns human-entered literals into domain values. It is used
// by the HTTP, MCP and CLI boundaries so the store only ever sees validated
// enums and UTC calendar dates.
package parse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mindvault/mindvault/internal/domain"
)

var (
	ErrDate     = errors.New("unrecognized date")
	ErrStatus   = errors.New("unrecognized status")
	ErrPriority = errors.New("unrecognized priority")
)

// DateLayouts are tried in order; the first layout that parses wins. Single
// digit days and months are accepted.
var DateLayouts = []string{
	"2006-1-2", // YYYY-MM-DD
	"1/2/2006", // MM/DD/YYYY
	"2/1/2006", // DD/MM/YYYY
	"2/1/06",   // DD/MM/YY
	"1-2-2006", // MM-DD-YYYY
	"2-1-2006", // DD-MM-YYYY
	"2006/1/2", // YYYY/MM/DD
}

// Date parses a calendar date and returns midnight UTC of that day.
func Date(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrDate, s)
}

var statusSynonyms = map[string]domain.Status{
	"notstarted":  domain.StatusNotStarted,
	"not started": domain.StatusNotStarted,
	"not_started": domain.StatusNotStarted,
	"not-started": domain.StatusNotStarted,
	"pending":     domain.StatusPending,
	"inprogress":  domain.StatusInProgress,
	"in progress": domain.StatusInProgress,
	"in_progress": domain.StatusInProgress,
	"in-progress": domain.StatusInProgress,
	"completed":   domain.StatusCompleted,
	"complete":    domain.StatusCompleted,
	"done":        domain.StatusCompleted,
}

// Status parses a status literal case-insensitively.
func Status(s string) (domain.Status, error) {
	if st, ok := statusSynonyms[normalize(s)]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w %q", ErrStatus, s)
}

var prioritySynonyms = map[string]domain.Priority{
	"normal": domain.PriorityNormal,
	"low":    domain.PriorityNormal,
	"high":   domain.PriorityHigh,
	"urgent": domain.PriorityHigh,
}

// Priority parses a priority literal case-insensitively.
func Priority(s string) (domain.Priority, error) {
	if p, ok := prioritySynonyms[normalize(s)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w %q", ErrPriority, s)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// OptionalDate parses s unless it is blank.
func OptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := Date(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// OptionalStatus parses s unless it is blank.
func OptionalStatus(s string) (*domain.Status, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	st, err := Status(s)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// OptionalPriority parses s unless it is blank.
func OptionalPriority(s string) (*domain.Priority, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	p, err := Priority(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Fields collects parse failures keyed by field name and converts them into
// one validation error.
type Fields struct {
	fields  []string
	reasons []string
}

// Date parses an optional date literal for field.
func (f *Fields) Date(field, s string) *time.Time {
	v, err := OptionalDate(s)
	f.add(field, err)
	return v
}

// Status parses an optional status literal for field.
func (f *Fields) Status(field, s string) *domain.Status {
	v, err := OptionalStatus(s)
	f.add(field, err)
	return v
}

// Priority parses an optional priority literal for field.
func (f *Fields) Priority(field, s string) *domain.Priority {
	v, err := OptionalPriority(s)
	f.add(field, err)
	return v
}

// Fail records a failure not produced by parsing.
func (f *Fields) Fail(field, reason string) {
	f.add(field, errors.New(reason))
}

func (f *Fields) add(field string, err error) {
	if err == nil {
		return
	}
	f.fields = append(f.fields, field)
	f.reasons = append(f.reasons, err.Error())
}

// Err returns nil when every field parsed.
func (f *Fields) Err() error {
	switch len(f.fields) {
	case 0:
		return nil
	case 1:
		return domain.NewFieldError(f.fields[0], f.reasons[0])
	}
	details := make([]string, len(f.fields))
	for i := range f.fields {
		details[i] = f.fields[i] + " " + f.reasons[i]
	}
	return domain.NewValidationError(details)
}
