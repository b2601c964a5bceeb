package assistant

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hearthside/hearth/plugin/ai"
	"github.com/hearthside/hearth/plugin/ai/router"
	"github.com/hearthside/hearth/plugin/ai/timeparse"
	"github.com/hearthside/hearth/server/service/schedule"
	"github.com/hearthside/hearth/store"
)

const testUserID int32 = 1

// Wednesday, March 11 2026; "tomorrow" is 2026-03-12.
func testParser() *timeparse.Parser {
	return timeparse.NewParserAt(func() time.Time {
		return time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	})
}

func newTestService(mem *memStore) (*Service, *router.MockClassifierService) {
	parser := testParser()
	classifier := router.NewMockClassifierService(parser)
	detector := schedule.NewDetector(mem)
	return NewService(mem, classifier, detector, nil, parser), classifier
}

func seedEvent(mem *memStore, title, date, start, end string) *store.Event {
	event, _ := mem.CreateEvent(context.Background(), &store.Event{
		CreatorID: testUserID,
		Title:     title,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	})
	return event
}

func TestReminderWithoutModel(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)

	result := svc.ProcessMessage(context.Background(), testUserID, "remind me to call mom tomorrow at 3pm", nil)
	require.True(t, result.Success, result.Message)

	require.Len(t, mem.reminders, 1)
	reminder := mem.reminders[0]
	require.Equal(t, "call mom", reminder.Title)
	require.Equal(t, "2026-03-12", reminder.Date)
	require.Equal(t, "15:00:00", reminder.Time)
}

func TestReminderRequiresDate(t *testing.T) {
	mem := newMemStore()
	svc, classifier := newTestService(mem)

	classifier.Overrides["remind me to water the plants"] = &router.Intent{
		Type:  router.IntentCreateReminder,
		Slots: map[string]any{"title": "water the plants"},
	}

	result := svc.ProcessMessage(context.Background(), testUserID, "remind me to water the plants", nil)
	require.False(t, result.Success)
	require.Contains(t, result.Message, "date")
	require.Empty(t, mem.reminders)
}

func TestCalendarCreateConflict(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)
	seedEvent(mem, "standup", "2026-03-12", "09:00:00", "09:30:00")

	result := svc.ProcessMessage(context.Background(), testUserID, "schedule dentist tomorrow 9am", nil)
	require.False(t, result.Success)
	require.Contains(t, result.Message, "standup")
	require.NotEmpty(t, result.Data["suggestions"])

	// The write was never attempted.
	require.Len(t, mem.events, 1)
}

func TestCalendarCreateIdempotent(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)

	first := svc.ProcessMessage(context.Background(), testUserID, "schedule dentist tomorrow 9am", nil)
	require.True(t, first.Success, first.Message)
	require.Len(t, mem.events, 1)

	second := svc.ProcessMessage(context.Background(), testUserID, "schedule dentist tomorrow 9am", nil)
	require.True(t, second.Success, second.Message)
	require.Contains(t, second.Message, "already")
	require.Len(t, mem.events, 1)
	require.Equal(t, first.Data["id"], second.Data["id"])
}

func TestDeleteAmbiguousListsCandidates(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)
	seedEvent(mem, "team meeting", "2026-03-12", "09:00:00", "10:00:00")
	seedEvent(mem, "parent meeting", "2026-03-13", "17:00:00", "18:00:00")

	result := svc.ProcessMessage(context.Background(), testUserID, "cancel my meeting", nil)
	require.False(t, result.Success)
	require.Contains(t, result.Message, "team meeting")
	require.Contains(t, result.Message, "parent meeting")

	// No implicit first-match selection: nothing was deleted.
	require.Len(t, mem.events, 2)
}

func TestDeleteSingleMatch(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)
	seedEvent(mem, "dentist appointment", "2026-03-12", "09:00:00", "10:00:00")

	result := svc.ProcessMessage(context.Background(), testUserID, "cancel my dentist appointment", nil)
	require.True(t, result.Success, result.Message)
	require.Empty(t, mem.events)
}

func TestDeleteNotFound(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)

	result := svc.ProcessMessage(context.Background(), testUserID, "cancel my meeting", nil)
	require.False(t, result.Success)
	require.Contains(t, result.Message, "couldn't find")
}

func TestQueryCalendar(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)
	seedEvent(mem, "dentist", "2026-03-12", "09:00:00", "10:00:00")
	seedEvent(mem, "book club", "2026-03-12", "19:00:00", "")

	result := svc.ProcessMessage(context.Background(), testUserID, "what's on my calendar tomorrow", nil)
	require.True(t, result.Success)
	require.Contains(t, result.Message, "dentist")
	require.Contains(t, result.Message, "book club")
}

func TestUpdateEventDoesNotConflictWithItself(t *testing.T) {
	mem := newMemStore()
	svc, classifier := newTestService(mem)
	event := seedEvent(mem, "dentist appointment", "2026-03-12", "09:00:00", "10:00:00")

	classifier.Overrides["push my dentist appointment to 9:30"] = &router.Intent{
		Type:  router.IntentUpdateCalendar,
		Slots: map[string]any{"title": "dentist", "time": "9:30"},
	}

	result := svc.ProcessMessage(context.Background(), testUserID, "push my dentist appointment to 9:30", nil)
	require.True(t, result.Success, result.Message)
	require.Equal(t, "09:30:00", event.StartTime)
}

func TestShoppingFlow(t *testing.T) {
	ctx := context.Background()
	mem := newMemStore()
	svc, classifier := newTestService(mem)

	result := svc.ProcessMessage(ctx, testUserID, "add milk to the shopping list", nil)
	require.True(t, result.Success, result.Message)
	require.Len(t, mem.shoppingItems, 1)
	require.Equal(t, "milk", mem.shoppingItems[0].Name)
	require.Equal(t, store.CategoryDairy, mem.shoppingItems[0].Category)

	result = svc.ProcessMessage(ctx, testUserID, "what's on the shopping list", nil)
	require.True(t, result.Success)
	require.Contains(t, result.Message, "milk")

	classifier.Overrides["we got the milk"] = &router.Intent{
		Type:  router.IntentUpdateShopping,
		Slots: map[string]any{"item": "milk"},
	}
	result = svc.ProcessMessage(ctx, testUserID, "we got the milk", nil)
	require.True(t, result.Success, result.Message)
	require.True(t, mem.shoppingItems[0].Purchased)

	// Checked-off items drop out of the list view.
	result = svc.ProcessMessage(ctx, testUserID, "what's on the shopping list", nil)
	require.True(t, result.Success)
	require.Contains(t, result.Message, "empty")
}

func TestTaskCompletion(t *testing.T) {
	ctx := context.Background()
	mem := newMemStore()
	svc, classifier := newTestService(mem)

	classifier.Overrides["new task: rake the leaves by friday"] = &router.Intent{
		Type:  router.IntentCreateTask,
		Slots: map[string]any{"title": "rake the leaves", "due_date": "friday", "priority": "high"},
	}
	result := svc.ProcessMessage(ctx, testUserID, "new task: rake the leaves by friday", nil)
	require.True(t, result.Success, result.Message)
	require.Len(t, mem.tasks, 1)
	require.Equal(t, "2026-03-13", mem.tasks[0].DueDate)
	require.Equal(t, store.TaskPriorityHigh, mem.tasks[0].Priority)

	classifier.Overrides["mark the rake task as done"] = &router.Intent{
		Type:  router.IntentUpdateTask,
		Slots: map[string]any{"title": "rake"},
	}
	result = svc.ProcessMessage(ctx, testUserID, "mark the rake task as done", nil)
	require.True(t, result.Success, result.Message)
	require.True(t, mem.tasks[0].Completed)
}

func TestFamilyRoster(t *testing.T) {
	ctx := context.Background()
	mem := newMemStore()
	svc, classifier := newTestService(mem)

	classifier.Overrides["add my son Max, born 2018-06-02"] = &router.Intent{
		Type:  router.IntentCreateFamily,
		Slots: map[string]any{"name": "Max", "birthdate": "2018-06-02", "relation": "son"},
	}
	result := svc.ProcessMessage(ctx, testUserID, "add my son Max, born 2018-06-02", nil)
	require.True(t, result.Success, result.Message)
	require.Len(t, mem.familyMembers, 1)

	classifier.Overrides["who's in the family"] = &router.Intent{
		Type:  router.IntentQueryFamily,
		Slots: map[string]any{},
	}
	result = svc.ProcessMessage(ctx, testUserID, "who's in the family", nil)
	require.True(t, result.Success)
	require.Contains(t, result.Message, "Max")
	require.Contains(t, result.Message, "son")
}

func TestAvailabilityQuery(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)
	seedEvent(mem, "standup", "2026-03-12", "09:00:00", "10:00:00")

	result := svc.ProcessMessage(context.Background(), testUserID, "when am I free tomorrow", nil)
	require.True(t, result.Success, result.Message)
	require.Equal(t, router.IntentQueryCalendar, result.Type)
	require.Contains(t, result.Message, "08:00-09:00")
	require.Contains(t, result.Message, "10:00-22:00")
	require.NotEmpty(t, result.Data["slots"])
}

func TestResultCarriesIntentType(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)

	result := svc.ProcessMessage(context.Background(), testUserID, "remind me to call mom tomorrow at 3pm", nil)
	require.Equal(t, router.IntentCreateReminder, result.Type)

	result = svc.ProcessMessage(context.Background(), testUserID, "hello there", nil)
	require.Equal(t, router.IntentChat, result.Type)
}

// captureLLM records the messages forwarded to the model.
type captureLLM struct {
	messages []ai.Message
}

func (c *captureLLM) Complete(_ context.Context, messages []ai.Message) (string, error) {
	c.messages = messages
	return "sure thing", nil
}

func TestChatCapsForwardedHistory(t *testing.T) {
	mem := newMemStore()
	parser := testParser()
	classifier := router.NewMockClassifierService(parser)
	llm := &captureLLM{}
	svc := NewService(mem, classifier, schedule.NewDetector(mem), llm, parser)

	history := make([]ai.Message, 40)
	for i := range history {
		history[i] = ai.Message{Role: ai.RoleUser, Content: fmt.Sprintf("turn %d", i)}
	}

	result := svc.ProcessMessage(context.Background(), testUserID, "hello there", history)
	require.True(t, result.Success)

	// System prompt, capped history, current message.
	require.Len(t, llm.messages, ai.MaxHistoryTurns+2)
	require.Equal(t, "turn 39", llm.messages[len(llm.messages)-2].Content)
}

func TestChatWithoutModel(t *testing.T) {
	mem := newMemStore()
	svc, _ := newTestService(mem)

	result := svc.ProcessMessage(context.Background(), testUserID, "hello there", nil)
	require.True(t, result.Success)
	require.NotEmpty(t, result.Message)
}

// panicClassifier simulates an unanticipated failure inside the pipeline.
type panicClassifier struct{}

func (panicClassifier) Classify(context.Context, string, string, []ai.Message) *router.Intent {
	panic("boom")
}

func TestPipelinePanicBecomesResult(t *testing.T) {
	mem := newMemStore()
	svc := NewService(mem, panicClassifier{}, schedule.NewDetector(mem), nil, testParser())

	result := svc.ProcessMessage(context.Background(), testUserID, "anything", nil)
	require.False(t, result.Success)
	require.Contains(t, result.Message, "try again")
}

func TestResolveOnePolicy(t *testing.T) {
	one, result := resolveOne([]string{"a"}, "event", "a", func(s string) string { return s })
	require.Nil(t, result)
	require.Equal(t, "a", one)

	_, result = resolveOne(nil, "event", "x", func(s string) string { return s })
	require.False(t, result.Success)
	require.Contains(t, result.Message, "couldn't find")

	_, result = resolveOne([]string{"a", "b", "c", "d", "e", "f", "g"}, "event", "x", func(s string) string { return s })
	require.False(t, result.Success)
	candidates := result.Data["candidates"].([]string)
	require.Len(t, candidates, maxCandidates)
}
