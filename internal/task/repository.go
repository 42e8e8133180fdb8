package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for task persistence.
type Repository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed task repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new task. The ID is generated if empty; an empty
// status defaults to created.
func (r *SQLiteRepository) Create(ctx context.Context, task *Task) error {
	if task.ID == "" {
		task.ID = "tsk-" + uuid.NewString()[:8]
	}
	if task.Status == "" {
		task.Status = StatusCreated
	}
	if !IsValidStatus(task.Status) {
		return ErrInvalidStatus
	}

	now := time.Now().UTC().Format(time.RFC3339)
	task.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	task.UpdatedAt = task.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, string(task.Status), task.OwnerID, now, now,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by its unique ID.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, title, description, status, owner_id, created_at, updated_at FROM tasks WHERE id = ?", id)
	return scanTaskFrom(row)
}

// List returns all tasks ordered by creation date (oldest first).
func (r *SQLiteRepository) List(ctx context.Context) ([]Task, error) {
	return r.listTasks(ctx,
		"SELECT id, title, description, status, owner_id, created_at, updated_at FROM tasks ORDER BY created_at ASC, rowid ASC")
}

// ListByOwner returns a single owner's tasks ordered by creation date.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	return r.listTasks(ctx,
		"SELECT id, title, description, status, owner_id, created_at, updated_at FROM tasks WHERE owner_id = ? ORDER BY created_at ASC, rowid ASC",
		ownerID)
}

// Update modifies a task's title, description, and status.
// The owner is immutable after creation.
func (r *SQLiteRepository) Update(ctx context.Context, task *Task) error {
	if !IsValidStatus(task.Status) {
		return ErrInvalidStatus
	}

	now := time.Now().UTC().Format(time.RFC3339)
	task.UpdatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`,
		task.Title, task.Description, string(task.Status), now, task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// listTasks executes a query and scans all task rows.
func (r *SQLiteRepository) listTasks(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTaskFrom(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanTaskFrom scans a task from any scanner (Row or Rows).
func scanTaskFrom(s scanner) (*Task, error) {
	var t Task
	var status string
	var createdAt, updatedAt string

	err := s.Scan(&t.ID, &t.Title, &t.Description, &status, &t.OwnerID,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = Status(status)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &t, nil
}
