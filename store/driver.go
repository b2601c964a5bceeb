package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Event model related methods.
	CreateEvent(ctx context.Context, create *Event) (*Event, error)
	ListEvents(ctx context.Context, find *FindEvent) ([]*Event, error)
	UpdateEvent(ctx context.Context, update *UpdateEvent) error
	DeleteEvent(ctx context.Context, delete *DeleteEvent) error

	// Reminder model related methods.
	CreateReminder(ctx context.Context, create *Reminder) (*Reminder, error)
	ListReminders(ctx context.Context, find *FindReminder) ([]*Reminder, error)
	UpdateReminder(ctx context.Context, update *UpdateReminder) error
	DeleteReminder(ctx context.Context, delete *DeleteReminder) error

	// Task model related methods.
	CreateTask(ctx context.Context, create *Task) (*Task, error)
	ListTasks(ctx context.Context, find *FindTask) ([]*Task, error)
	UpdateTask(ctx context.Context, update *UpdateTask) error
	DeleteTask(ctx context.Context, delete *DeleteTask) error

	// ShoppingItem model related methods.
	CreateShoppingItem(ctx context.Context, create *ShoppingItem) (*ShoppingItem, error)
	ListShoppingItems(ctx context.Context, find *FindShoppingItem) ([]*ShoppingItem, error)
	UpdateShoppingItem(ctx context.Context, update *UpdateShoppingItem) error
	DeleteShoppingItem(ctx context.Context, delete *DeleteShoppingItem) error

	// FamilyMember model related methods.
	CreateFamilyMember(ctx context.Context, create *FamilyMember) (*FamilyMember, error)
	ListFamilyMembers(ctx context.Context, find *FindFamilyMember) ([]*FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, update *UpdateFamilyMember) error
	DeleteFamilyMember(ctx context.Context, delete *DeleteFamilyMember) error
}
