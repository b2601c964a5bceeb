package assistant

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/hearthside/hearth/store"
)

// memStore is an in-memory Store for handler tests. Filtering mirrors the
// SQL drivers: case-insensitive substring search on display fields.
type memStore struct {
	nextID        int32
	events        []*store.Event
	reminders     []*store.Reminder
	shoppingItems []*store.ShoppingItem
	tasks         []*store.Task
	familyMembers []*store.FamilyMember
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) id() int32 {
	m.nextID++
	return m.nextID
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (m *memStore) CreateEvent(_ context.Context, create *store.Event) (*store.Event, error) {
	create.ID = m.id()
	create.RowStatus = store.Normal
	m.events = append(m.events, create)
	return create, nil
}

func (m *memStore) ListEvents(_ context.Context, find *store.FindEvent) ([]*store.Event, error) {
	var out []*store.Event
	for _, e := range m.events {
		if find.ID != nil && e.ID != *find.ID {
			continue
		}
		if find.CreatorID != nil && e.CreatorID != *find.CreatorID {
			continue
		}
		if find.RowStatus != nil && e.RowStatus != *find.RowStatus {
			continue
		}
		if find.Date != nil && e.Date != *find.Date {
			continue
		}
		if find.DateStart != nil && e.Date < *find.DateStart {
			continue
		}
		if find.TitleSearch != nil && !containsFold(e.Title, *find.TitleSearch) {
			continue
		}
		if find.TitleExact != nil && !strings.EqualFold(e.Title, *find.TitleExact) {
			continue
		}
		out = append(out, e)
	}
	if find.Limit != nil && len(out) > *find.Limit {
		out = out[:*find.Limit]
	}
	return out, nil
}

func (m *memStore) UpdateEvent(_ context.Context, update *store.UpdateEvent) error {
	for _, e := range m.events {
		if e.ID != update.ID {
			continue
		}
		if update.Title != nil {
			e.Title = *update.Title
		}
		if update.Date != nil {
			e.Date = *update.Date
		}
		if update.StartTime != nil {
			e.StartTime = *update.StartTime
		}
		if update.EndTime != nil {
			e.EndTime = *update.EndTime
		}
		if update.Location != nil {
			e.Location = *update.Location
		}
		return nil
	}
	return errors.New("event not found")
}

func (m *memStore) DeleteEvent(_ context.Context, delete *store.DeleteEvent) error {
	for i, e := range m.events {
		if e.ID == delete.ID {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return errors.New("event not found")
}

func (m *memStore) CreateReminder(_ context.Context, create *store.Reminder) (*store.Reminder, error) {
	create.ID = m.id()
	create.RowStatus = store.Normal
	m.reminders = append(m.reminders, create)
	return create, nil
}

func (m *memStore) ListReminders(_ context.Context, find *store.FindReminder) ([]*store.Reminder, error) {
	var out []*store.Reminder
	for _, r := range m.reminders {
		if find.CreatorID != nil && r.CreatorID != *find.CreatorID {
			continue
		}
		if find.RowStatus != nil && r.RowStatus != *find.RowStatus {
			continue
		}
		if find.Date != nil && r.Date != *find.Date {
			continue
		}
		if find.TitleSearch != nil && !containsFold(r.Title, *find.TitleSearch) {
			continue
		}
		if find.Completed != nil && r.Completed != *find.Completed {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) UpdateReminder(_ context.Context, update *store.UpdateReminder) error {
	for _, r := range m.reminders {
		if r.ID != update.ID {
			continue
		}
		if update.Title != nil {
			r.Title = *update.Title
		}
		if update.Date != nil {
			r.Date = *update.Date
		}
		if update.Time != nil {
			r.Time = *update.Time
		}
		if update.Completed != nil {
			r.Completed = *update.Completed
		}
		return nil
	}
	return errors.New("reminder not found")
}

func (m *memStore) DeleteReminder(_ context.Context, delete *store.DeleteReminder) error {
	for i, r := range m.reminders {
		if r.ID == delete.ID {
			m.reminders = append(m.reminders[:i], m.reminders[i+1:]...)
			return nil
		}
	}
	return errors.New("reminder not found")
}

func (m *memStore) CreateShoppingItem(_ context.Context, create *store.ShoppingItem) (*store.ShoppingItem, error) {
	create.ID = m.id()
	create.RowStatus = store.Normal
	m.shoppingItems = append(m.shoppingItems, create)
	return create, nil
}

func (m *memStore) ListShoppingItems(_ context.Context, find *store.FindShoppingItem) ([]*store.ShoppingItem, error) {
	var out []*store.ShoppingItem
	for _, item := range m.shoppingItems {
		if find.CreatorID != nil && item.CreatorID != *find.CreatorID {
			continue
		}
		if find.RowStatus != nil && item.RowStatus != *find.RowStatus {
			continue
		}
		if find.NameSearch != nil && !containsFold(item.Name, *find.NameSearch) {
			continue
		}
		if find.Purchased != nil && item.Purchased != *find.Purchased {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *memStore) UpdateShoppingItem(_ context.Context, update *store.UpdateShoppingItem) error {
	for _, item := range m.shoppingItems {
		if item.ID != update.ID {
			continue
		}
		if update.Name != nil {
			item.Name = *update.Name
		}
		if update.Quantity != nil {
			item.Quantity = *update.Quantity
		}
		if update.Category != nil {
			item.Category = *update.Category
		}
		if update.Purchased != nil {
			item.Purchased = *update.Purchased
		}
		return nil
	}
	return errors.New("shopping item not found")
}

func (m *memStore) DeleteShoppingItem(_ context.Context, delete *store.DeleteShoppingItem) error {
	for i, item := range m.shoppingItems {
		if item.ID == delete.ID {
			m.shoppingItems = append(m.shoppingItems[:i], m.shoppingItems[i+1:]...)
			return nil
		}
	}
	return errors.New("shopping item not found")
}

func (m *memStore) CreateTask(_ context.Context, create *store.Task) (*store.Task, error) {
	create.ID = m.id()
	create.RowStatus = store.Normal
	m.tasks = append(m.tasks, create)
	return create, nil
}

func (m *memStore) ListTasks(_ context.Context, find *store.FindTask) ([]*store.Task, error) {
	var out []*store.Task
	for _, task := range m.tasks {
		if find.CreatorID != nil && task.CreatorID != *find.CreatorID {
			continue
		}
		if find.RowStatus != nil && task.RowStatus != *find.RowStatus {
			continue
		}
		if find.DueDate != nil && task.DueDate != *find.DueDate {
			continue
		}
		if find.TitleSearch != nil && !containsFold(task.Title, *find.TitleSearch) {
			continue
		}
		if find.Completed != nil && task.Completed != *find.Completed {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (m *memStore) UpdateTask(_ context.Context, update *store.UpdateTask) error {
	for _, task := range m.tasks {
		if task.ID != update.ID {
			continue
		}
		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.DueDate != nil {
			task.DueDate = *update.DueDate
		}
		if update.Priority != nil {
			task.Priority = *update.Priority
		}
		if update.Completed != nil {
			task.Completed = *update.Completed
		}
		return nil
	}
	return errors.New("task not found")
}

func (m *memStore) DeleteTask(_ context.Context, delete *store.DeleteTask) error {
	for i, task := range m.tasks {
		if task.ID == delete.ID {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return errors.New("task not found")
}

func (m *memStore) CreateFamilyMember(_ context.Context, create *store.FamilyMember) (*store.FamilyMember, error) {
	create.ID = m.id()
	create.RowStatus = store.Normal
	m.familyMembers = append(m.familyMembers, create)
	return create, nil
}

func (m *memStore) ListFamilyMembers(_ context.Context, find *store.FindFamilyMember) ([]*store.FamilyMember, error) {
	var out []*store.FamilyMember
	for _, member := range m.familyMembers {
		if find.CreatorID != nil && member.CreatorID != *find.CreatorID {
			continue
		}
		if find.RowStatus != nil && member.RowStatus != *find.RowStatus {
			continue
		}
		if find.NameSearch != nil && !containsFold(member.Name, *find.NameSearch) {
			continue
		}
		out = append(out, member)
	}
	return out, nil
}

func (m *memStore) UpdateFamilyMember(_ context.Context, update *store.UpdateFamilyMember) error {
	for _, member := range m.familyMembers {
		if member.ID != update.ID {
			continue
		}
		if update.Name != nil {
			member.Name = *update.Name
		}
		if update.Birthdate != nil {
			member.Birthdate = *update.Birthdate
		}
		if update.Relation != nil {
			member.Relation = *update.Relation
		}
		return nil
	}
	return errors.New("family member not found")
}

func (m *memStore) DeleteFamilyMember(_ context.Context, delete *store.DeleteFamilyMember) error {
	for i, member := range m.familyMembers {
		if member.ID == delete.ID {
			m.familyMembers = append(m.familyMembers[:i], m.familyMembers[i+1:]...)
			return nil
		}
	}
	return errors.New("family member not found")
}

var _ Store = (*memStore)(nil)
