package reminder

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a reminder.
type Status string

// Status values for reminders. These four are the only statuses a
// reminder can hold at rest.
const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusOverdue   Status = "Overdue"
	StatusCancelled Status = "Cancelled"
)

// Valid reports whether s is one of the four reminder statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus converts user input into a Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "completed", "done":
		return StatusCompleted, nil
	case "overdue":
		return StatusOverdue, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	}
	return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q (expected pending, completed, overdue or cancelled)", s)}
}

// Filter selects which reminders List returns: all of them, or only
// those in one status.
type Filter string

// FilterAll matches every reminder regardless of status.
const FilterAll Filter = "all"

// FilterStatus returns the filter matching exactly one status.
func FilterStatus(s Status) Filter {
	return Filter(s)
}

// Valid reports whether f is "all" or one of the four statuses.
func (f Filter) Valid() bool {
	return f == FilterAll || Status(f).Valid()
}

// ParseFilter converts user input into a Filter. An empty string means
// FilterAll.
func ParseFilter(s string) (Filter, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, string(FilterAll)) {
		return FilterAll, nil
	}
	status, err := ParseStatus(trimmed)
	if err != nil {
		return "", &ValidationError{Field: "filter", Reason: fmt.Sprintf("unknown filter %q (expected all, pending, completed, overdue or cancelled)", s)}
	}
	return FilterStatus(status), nil
}

// SortOrder is the direction List sorts by due time.
type SortOrder string

// Sort directions for List.
const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Valid reports whether o is a recognized sort order.
func (o SortOrder) Valid() bool {
	return o == SortAscending || o == SortDescending
}

// ParseSortOrder converts user input into a SortOrder. An empty string
// means ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	}
	return "", &ValidationError{Field: "sort_order", Reason: fmt.Sprintf("unknown sort order %q (expected asc or desc)", s)}
}

// GracePeriod is the buffer between a reminder's due time and the
// moment it becomes eligible for Pending -> Overdue reclassification.
// It gives the scheduler a chance to fire an item that is due "right
// now" before the item is flagged as missed.
const GracePeriod = 2 * time.Minute

// Reminder represents a single scheduled reminder.
type Reminder struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueAt       time.Time `json:"due_at"`
	Status      Status    `json:"status"`
}

// Due reports whether the reminder's due time has passed at now.
func (r *Reminder) Due(now time.Time) bool {
	return !r.DueAt.After(now)
}

// Local wall-clock layouts accepted by ParseDueTime besides RFC 3339,
// as a convenience for interactive entry.
var localDueLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDueTime parses a due-time string into an absolute instant.
// RFC 3339 is tried first; the local layouts are interpreted in the
// system time zone. Anything else is a ValidationError.
func ParseDueTime(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, &ValidationError{Field: "due_at", Reason: "due time is required"}
	}

	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t, nil
	}
	for _, layout := range localDueLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &ValidationError{
		Field:  "due_at",
		Reason: fmt.Sprintf("cannot parse %q as a timestamp (use RFC 3339 like 2025-01-15T09:00:00Z, or 2025-01-15 09:00)", s),
	}
}
