package store

import (
	"context"
)

// Task priority levels.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task is the object representing a to-do item.
// DueDate is a canonical YYYY-MM-DD string or empty when the task has no due
// date.
type Task struct {
	ID        int32
	UID       string
	CreatorID int32
	RowStatus RowStatus
	CreatedTs int64
	UpdatedTs int64

	Title     string
	DueDate   string
	Priority  string
	Completed bool
}

// FindTask is the find condition for task.
type FindTask struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	RowStatus *RowStatus

	DueDate *string
	// Case-insensitive substring match on title.
	TitleSearch *string
	Completed   *bool

	Limit  *int
	Offset *int
}

// UpdateTask is the update request for task.
type UpdateTask struct {
	ID        int32
	RowStatus *RowStatus
	Title     *string
	DueDate   *string
	Priority  *string
	Completed *bool
}

// DeleteTask is the delete request for task.
type DeleteTask struct {
	ID int32
}

// CreateTask creates a new task.
func (s *Store) CreateTask(ctx context.Context, create *Task) (*Task, error) {
	return s.driver.CreateTask(ctx, create)
}

// ListTasks lists tasks with filter.
func (s *Store) ListTasks(ctx context.Context, find *FindTask) ([]*Task, error) {
	return s.driver.ListTasks(ctx, find)
}

// UpdateTask updates a task.
func (s *Store) UpdateTask(ctx context.Context, update *UpdateTask) error {
	return s.driver.UpdateTask(ctx, update)
}

// DeleteTask deletes a task.
func (s *Store) DeleteTask(ctx context.Context, delete *DeleteTask) error {
	return s.driver.DeleteTask(ctx, delete)
}

// IsValidTaskPriority reports whether p is a recognized priority value.
func IsValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}
