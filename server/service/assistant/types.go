// Package assistant turns classified intents into storage actions. It owns
// the action dispatcher, the per-intent handlers, and the entity resolver
// that maps fuzzy references ("my dentist appointment") onto stored records.
package assistant

import (
	"context"

	"github.com/hearthside/hearth/plugin/ai/router"
	"github.com/hearthside/hearth/store"
)

// ActionResult is the uniform envelope every request terminates in. Type
// names the action the result came from; the dispatcher stamps it so
// handlers and constructors never have to. Message is always
// human-readable; the assistant never surfaces raw errors, stack traces,
// or parser output to the end user.
type ActionResult struct {
	Type    router.IntentType `json:"type"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    map[string]any    `json:"data,omitempty"`
}

func ok(message string) *ActionResult {
	return &ActionResult{Success: true, Message: message}
}

func okWithData(message string, data map[string]any) *ActionResult {
	return &ActionResult{Success: true, Message: message, Data: data}
}

func fail(message string) *ActionResult {
	return &ActionResult{Success: false, Message: message}
}

func failWithData(message string, data map[string]any) *ActionResult {
	return &ActionResult{Success: false, Message: message, Data: data}
}

// Store is the storage surface the handlers operate on. *store.Store
// implements it; tests substitute an in-memory fake.
type Store interface {
	CreateEvent(ctx context.Context, create *store.Event) (*store.Event, error)
	ListEvents(ctx context.Context, find *store.FindEvent) ([]*store.Event, error)
	UpdateEvent(ctx context.Context, update *store.UpdateEvent) error
	DeleteEvent(ctx context.Context, delete *store.DeleteEvent) error

	CreateReminder(ctx context.Context, create *store.Reminder) (*store.Reminder, error)
	ListReminders(ctx context.Context, find *store.FindReminder) ([]*store.Reminder, error)
	UpdateReminder(ctx context.Context, update *store.UpdateReminder) error
	DeleteReminder(ctx context.Context, delete *store.DeleteReminder) error

	CreateShoppingItem(ctx context.Context, create *store.ShoppingItem) (*store.ShoppingItem, error)
	ListShoppingItems(ctx context.Context, find *store.FindShoppingItem) ([]*store.ShoppingItem, error)
	UpdateShoppingItem(ctx context.Context, update *store.UpdateShoppingItem) error
	DeleteShoppingItem(ctx context.Context, delete *store.DeleteShoppingItem) error

	CreateTask(ctx context.Context, create *store.Task) (*store.Task, error)
	ListTasks(ctx context.Context, find *store.FindTask) ([]*store.Task, error)
	UpdateTask(ctx context.Context, update *store.UpdateTask) error
	DeleteTask(ctx context.Context, delete *store.DeleteTask) error

	CreateFamilyMember(ctx context.Context, create *store.FamilyMember) (*store.FamilyMember, error)
	ListFamilyMembers(ctx context.Context, find *store.FindFamilyMember) ([]*store.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, update *store.UpdateFamilyMember) error
	DeleteFamilyMember(ctx context.Context, delete *store.DeleteFamilyMember) error
}
