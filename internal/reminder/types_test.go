package reminder

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"Pending", StatusPending, false},
		{"  PENDING  ", StatusPending, false},
		{"completed", StatusCompleted, false},
		{"done", StatusCompleted, false},
		{"overdue", StatusOverdue, false},
		{"cancelled", StatusCancelled, false},
		{"canceled", StatusCancelled, false},
		{"", "", true},
		{"waiting", "", true},
		{"all", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !IsValidation(err) {
					t.Errorf("ParseStatus(%q) error is not a ValidationError: %v", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{"All", FilterAll, false},
		{"pending", FilterStatus(StatusPending), false},
		{"overdue", FilterStatus(StatusOverdue), false},
		{"done", FilterStatus(StatusCompleted), false},
		{"soon", "", true},
		{"asc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseFilter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input   string
		want    SortOrder
		wantErr bool
	}{
		{"", SortAscending, false},
		{"asc", SortAscending, false},
		{"Ascending", SortAscending, false},
		{"desc", SortDescending, false},
		{"DESC", SortDescending, false},
		{"descending", SortDescending, false},
		{"up", "", true},
		{"reverse", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortOrder(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortOrder(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseSortOrder(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDueTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"rfc3339 utc", "2025-01-15T09:00:00Z", false},
		{"rfc3339 offset", "2025-01-15T09:00:00+03:00", false},
		{"local date time", "2025-01-15 09:00", false},
		{"local with seconds", "2025-01-15 09:00:30", false},
		{"t separator no zone", "2025-01-15T09:00", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"date only", "2025-01-15", true},
		{"garbage", "next tuesday", true},
		{"bad month", "2025-13-01 09:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDueTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsValidation(err) {
					t.Errorf("ParseDueTime(%q) error is not a ValidationError: %v", tt.input, err)
				}
				return
			}
			if got.IsZero() {
				t.Errorf("ParseDueTime(%q) returned zero time", tt.input)
			}
		})
	}
}

func TestParseDueTimeRoundTrip(t *testing.T) {
	got, err := ParseDueTime("2025-01-15T09:30:00Z")
	if err != nil {
		t.Fatalf("ParseDueTime error = %v", err)
	}
	want := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDueTime = %v, want %v", got, want)
	}
}

func TestReminderDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"past", now.Add(-time.Minute), true},
		{"exactly now", now, true},
		{"future", now.Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reminder{DueAt: tt.due}
			if got := r.Due(now); got != tt.want {
				t.Errorf("Due() = %v, want %v", got, tt.want)
			}
		})
	}
}
