package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/mindvault/mindvault/internal/domain"
)

const (
	emptyList = "📭 No tasks found"
	dueLayout = "02/01/06"
)

var statusIcons = map[domain.Status]string{
	domain.StatusNotStarted: "🔴",
	domain.StatusPending:    "🟡",
	domain.StatusInProgress: "🔵",
	domain.StatusCompleted:  "✅",
}

var priorityIcons = map[domain.Priority]string{
	domain.PriorityNormal: "📝",
	domain.PriorityHigh:   "🔥",
}

func statusLabel(s domain.Status) string {
	return statusIcons[s] + " " + s.Label()
}

func priorityLabel(p domain.Priority) string {
	return priorityIcons[p] + " " + string(p)
}

// formatTask renders one task as a single line.
func formatTask(t *domain.Task) string {
	var due string
	if t.DueDate != nil {
		due = " | 📅 " + t.DueDate.UTC().Format(dueLayout)
	}
	return fmt.Sprintf("%s | %s | %s%s (#%d)",
		t.Name, statusLabel(t.Status), priorityLabel(t.Priority), due, t.ID)
}

// formatTasks renders a task list with a count header.
func formatTasks(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return emptyList
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Found %d task(s):\n", len(tasks))
	for _, t := range tasks {
		b.WriteString("\n")
		b.WriteString(formatTask(t))
	}
	return b.String()
}

func formatCurrentDate(now time.Time) string {
	utc := now.UTC()
	lines := []string{
		"📅 Current Date & Time Information:",
		"🌍 UTC: " + utc.Format("2006-01-02 15:04:05 UTC"),
		"📋 Date Only: " + utc.Format("2006-01-02"),
		"⏰ Time Only: " + utc.Format("15:04:05"),
		"📆 Formatted: " + utc.Format("Monday, January 02, 2006"),
		"🗓️ ISO 8601: " + utc.Format(time.RFC3339),
	}
	return strings.Join(lines, "\n")
}
