package reminder

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed storage for reminders. It owns the
// authoritative id-to-row mapping; all access from the UI and the
// background scheduler goes through one Store instance.
//
// Every method is serialized under a single mutex. The compound
// scan-then-mutate operations (ReclassifyOverdue) need it for
// correctness; the single-row operations take it too so that a list
// for display can never interleave with a concurrent status change.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at dbPath and
// ensures the reminders table exists.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &PersistenceError{Op: "open database", Err: err}
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "set WAL mode", Err: err}
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS reminders (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			title        TEXT    NOT NULL,
			description  TEXT    NOT NULL DEFAULT '',
			due_datetime TEXT    NOT NULL,
			status       TEXT    NOT NULL
		)
	`)
	if err != nil {
		return &PersistenceError{Op: "create table", Err: err}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add validates and inserts a new reminder with status Pending and
// returns its assigned id.
func (s *Store) Add(title, description string, dueAt time.Time) (int64, error) {
	if err := validateFields(title, dueAt); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`
		INSERT INTO reminders (title, description, due_datetime, status)
		VALUES (?, ?, ?, ?)
	`, title, description, formatDue(dueAt), StatusPending)
	if err != nil {
		return 0, &PersistenceError{Op: "insert reminder", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &PersistenceError{Op: "get inserted id", Err: err}
	}
	return id, nil
}

// Get returns a single reminder by id.
func (s *Store) Get(id int64) (*Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT id, title, description, due_datetime, status
		FROM reminders WHERE id = ?
	`, id)

	r, err := scanReminder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &PersistenceError{Op: "get reminder", Err: err}
	}
	return r, nil
}

// List returns a snapshot of reminders matching filter, ordered by due
// time. Unrecognized filter or sort values are a ValidationError.
func (s *Store) List(filter Filter, order SortOrder) ([]Reminder, error) {
	if !filter.Valid() {
		return nil, &ValidationError{Field: "filter", Reason: "must be all or one of the four statuses"}
	}
	if !order.Valid() {
		return nil, &ValidationError{Field: "sort_order", Reason: "must be asc or desc"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT id, title, description, due_datetime, status FROM reminders`
	args := []any{}
	if filter != FilterAll {
		query += ` WHERE status = ?`
		args = append(args, Status(filter))
	}
	query += ` ORDER BY due_datetime ` + sqlDirection(order)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, &PersistenceError{Op: "list reminders", Err: err}
	}
	defer rows.Close()

	return scanReminders(rows)
}

// Update replaces the title, description and due time of an existing
// reminder. The status is left untouched. A nonexistent id is a
// NotFoundError.
func (s *Store) Update(id int64, title, description string, dueAt time.Time) error {
	if err := validateFields(title, dueAt); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`
		UPDATE reminders SET title = ?, description = ?, due_datetime = ? WHERE id = ?
	`, title, description, formatDue(dueAt), id)
	if err != nil {
		return &PersistenceError{Op: "update reminder", Err: err}
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// SetStatus sets the status of a reminder. A nonexistent id is a
// silent no-op: the caller may race with a concurrent delete from the
// UI, and losing that race is benign.
func (s *Store) SetStatus(id int64, status Status) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be one of the four statuses"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`UPDATE reminders SET status = ? WHERE id = ?`, status, id); err != nil {
		return &PersistenceError{Op: "update status", Err: err}
	}
	return nil
}

// Delete removes a reminder. Deleting an id that is already gone is
// not an error.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id); err != nil {
		return &PersistenceError{Op: "delete reminder", Err: err}
	}
	return nil
}

// ReclassifyOverdue marks every Pending reminder whose due time passed
// more than GracePeriod ago as Overdue, and returns the number of rows
// changed. Reminders inside the grace window stay Pending so the
// scheduler can still fire them.
func (s *Store) ReclassifyOverdue() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := formatDue(time.Now().Add(-GracePeriod))
	result, err := s.db.Exec(`
		UPDATE reminders SET status = ? WHERE status = ? AND due_datetime < ?
	`, StatusOverdue, StatusPending, cutoff)
	if err != nil {
		return 0, &PersistenceError{Op: "reclassify overdue reminders", Err: err}
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, &PersistenceError{Op: "count reclassified reminders", Err: err}
	}
	return n, nil
}

func validateFields(title string, dueAt time.Time) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "title must not be empty"}
	}
	if dueAt.IsZero() {
		return &ValidationError{Field: "due_at", Reason: "due time is required"}
	}
	return nil
}

// formatDue renders a time for storage. All stored times are UTC
// RFC 3339, so lexicographic comparison in SQL matches chronological
// order.
func formatDue(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func sqlDirection(order SortOrder) string {
	if order == SortDescending {
		return "DESC"
	}
	return "ASC"
}

// scanReminders reads multiple rows into a slice of Reminder.
func scanReminders(rows *sql.Rows) ([]Reminder, error) {
	var reminders []Reminder
	for rows.Next() {
		var r Reminder
		var due string

		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &due, &r.Status); err != nil {
			return nil, &PersistenceError{Op: "scan reminder", Err: err}
		}

		r.DueAt, _ = time.Parse(time.RFC3339, due)
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "read reminder rows", Err: err}
	}
	return reminders, nil
}

// scanReminder reads a single row into a Reminder.
func scanReminder(row *sql.Row) (*Reminder, error) {
	var r Reminder
	var due string

	if err := row.Scan(&r.ID, &r.Title, &r.Description, &due, &r.Status); err != nil {
		return nil, err
	}

	r.DueAt, _ = time.Parse(time.RFC3339, due)
	return &r, nil
}
