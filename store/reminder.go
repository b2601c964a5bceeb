package store

import (
	"context"
)

// Reminder is the object representing a reminder.
// Date is a canonical YYYY-MM-DD string; Time is a canonical HH:MM:SS string
// or empty when the reminder has no specific time.
type Reminder struct {
	ID        int32
	UID       string
	CreatorID int32
	RowStatus RowStatus
	CreatedTs int64
	UpdatedTs int64

	Title     string
	Date      string
	Time      string
	Completed bool
}

// FindReminder is the find condition for reminder.
type FindReminder struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	RowStatus *RowStatus

	Date *string
	// Case-insensitive substring match on title.
	TitleSearch *string
	Completed   *bool

	Limit  *int
	Offset *int
}

// UpdateReminder is the update request for reminder.
type UpdateReminder struct {
	ID        int32
	RowStatus *RowStatus
	Title     *string
	Date      *string
	Time      *string
	Completed *bool
}

// DeleteReminder is the delete request for reminder.
type DeleteReminder struct {
	ID int32
}

// CreateReminder creates a new reminder.
func (s *Store) CreateReminder(ctx context.Context, create *Reminder) (*Reminder, error) {
	return s.driver.CreateReminder(ctx, create)
}

// ListReminders lists reminders with filter.
func (s *Store) ListReminders(ctx context.Context, find *FindReminder) ([]*Reminder, error) {
	return s.driver.ListReminders(ctx, find)
}

// UpdateReminder updates a reminder.
func (s *Store) UpdateReminder(ctx context.Context, update *UpdateReminder) error {
	return s.driver.UpdateReminder(ctx, update)
}

// DeleteReminder deletes a reminder.
func (s *Store) DeleteReminder(ctx context.Context, delete *DeleteReminder) error {
	return s.driver.DeleteReminder(ctx, delete)
}
