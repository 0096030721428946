package parse

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindvault/mindvault/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "iso", input: "2025-07-28", want: day(2025, 7, 28)},
		{name: "iso single digits", input: "2025-7-8", want: day(2025, 7, 8)},
		{name: "us slash", input: "07/28/2025", want: day(2025, 7, 28)},
		{name: "ambiguous slash prefers month first", input: "03/04/2025", want: day(2025, 3, 4)},
		{name: "european slash", input: "28/07/2025", want: day(2025, 7, 28)},
		{name: "european short year", input: "28/07/25", want: day(2025, 7, 28)},
		{name: "us dash", input: "07-28-2025", want: day(2025, 7, 28)},
		{name: "european dash", input: "28-07-2025", want: day(2025, 7, 28)},
		{name: "iso slash", input: "2025/07/28", want: day(2025, 7, 28)},
		{name: "surrounding space", input: "  2025-07-28 ", want: day(2025, 7, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "2025-02-30", "32/13/2025", "2025.07.28"} {
		t.Run(input, func(t *testing.T) {
			_, err := Date(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDate))
		})
	}
}

func TestStatus(t *testing.T) {
	tests := map[string]domain.Status{
		"notstarted":      domain.StatusNotStarted,
		"Not Started":     domain.StatusNotStarted,
		"NOT_STARTED":     domain.StatusNotStarted,
		"NotStarted":      domain.StatusNotStarted,
		"  not  started ": domain.StatusNotStarted,
		"pending":         domain.StatusPending,
		"In Progress":     domain.StatusInProgress,
		"inprogress":      domain.StatusInProgress,
		"in_progress":     domain.StatusInProgress,
		"Completed":       domain.StatusCompleted,
		"complete":        domain.StatusCompleted,
		"DONE":            domain.StatusCompleted,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := Status(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := Status("blocked")
	assert.ErrorIs(t, err, ErrStatus)
}

func TestPriority(t *testing.T) {
	tests := map[string]domain.Priority{
		"normal": domain.PriorityNormal,
		"Low":    domain.PriorityNormal,
		"HIGH":   domain.PriorityHigh,
		"urgent": domain.PriorityHigh,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := Priority(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := Priority("critical")
	assert.ErrorIs(t, err, ErrPriority)
}

func TestOptional_BlankIsNil(t *testing.T) {
	d, err := OptionalDate(" ")
	require.NoError(t, err)
	assert.Nil(t, d)

	s, err := OptionalStatus("")
	require.NoError(t, err)
	assert.Nil(t, s)

	p, err := OptionalPriority("")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFields(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		var f Fields
		st := f.Status("status", "done")
		pr := f.Priority("priority", "")
		due := f.Date("due_date", "2025-07-28")

		require.NoError(t, f.Err())
		require.NotNil(t, st)
		assert.Equal(t, domain.StatusCompleted, *st)
		assert.Nil(t, pr)
		require.NotNil(t, due)
		assert.True(t, day(2025, 7, 28).Equal(*due))
	})

	t.Run("single failure names the field", func(t *testing.T) {
		var f Fields
		f.Status("status_filter", "someday")

		var de *domain.DomainError
		require.ErrorAs(t, f.Err(), &de)
		assert.Equal(t, domain.ErrCodeValidationFailed, de.Code)
		assert.Equal(t, "status_filter", de.Context["field"])
		assert.Contains(t, de.Message, "status_filter")
	})

	t.Run("multiple failures", func(t *testing.T) {
		var f Fields
		f.Priority("priority", "meh")
		f.Fail("name", "is required")

		var de *domain.DomainError
		require.ErrorAs(t, f.Err(), &de)
		details, ok := de.Context["details"].([]string)
		require.True(t, ok)
		assert.Len(t, details, 2)
	})
}
