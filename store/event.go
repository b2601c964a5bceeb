package store

import (
	"context"
)

// Event is the object representing a calendar event.
// Date is a canonical YYYY-MM-DD string. StartTime and EndTime are canonical
// HH:MM:SS strings; an empty StartTime means the event is all-day, an empty
// EndTime means the event is open-ended. Canonical time strings compare
// correctly with plain string comparison.
type Event struct {
	ID        int32
	UID       string
	CreatorID int32
	RowStatus RowStatus
	CreatedTs int64
	UpdatedTs int64

	Title        string
	Date         string
	StartTime    string
	EndTime      string
	Location     string
	Participants string
	Source       string
}

// FindEvent is the find condition for event.
type FindEvent struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	RowStatus *RowStatus

	// Exact date or inclusive date range (canonical YYYY-MM-DD strings).
	Date      *string
	DateStart *string
	DateEnd   *string

	// Case-insensitive substring match on title.
	TitleSearch *string
	// Case-insensitive exact title match, used for idempotent creates.
	TitleExact *string

	Limit  *int
	Offset *int
}

// UpdateEvent is the update request for event.
type UpdateEvent struct {
	ID           int32
	RowStatus    *RowStatus
	Title        *string
	Date         *string
	StartTime    *string
	EndTime      *string
	Location     *string
	Participants *string
}

// DeleteEvent is the delete request for event.
type DeleteEvent struct {
	ID int32
}

// CreateEvent creates a new event.
func (s *Store) CreateEvent(ctx context.Context, create *Event) (*Event, error) {
	return s.driver.CreateEvent(ctx, create)
}

// ListEvents lists events with filter.
func (s *Store) ListEvents(ctx context.Context, find *FindEvent) ([]*Event, error) {
	return s.driver.ListEvents(ctx, find)
}

// GetEvent gets a single event, nil when not found.
func (s *Store) GetEvent(ctx context.Context, find *FindEvent) (*Event, error) {
	list, err := s.driver.ListEvents(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateEvent updates an event.
func (s *Store) UpdateEvent(ctx context.Context, update *UpdateEvent) error {
	return s.driver.UpdateEvent(ctx, update)
}

// DeleteEvent deletes an event.
func (s *Store) DeleteEvent(ctx context.Context, delete *DeleteEvent) error {
	return s.driver.DeleteEvent(ctx, delete)
}
