package router

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hearthside/hearth/plugin/ai"
	"github.com/hearthside/hearth/plugin/ai/timeparse"
)

// Wednesday, March 11 2026.
func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	}
}

func fixedMatcher() *RuleMatcher {
	return NewRuleMatcher(timeparse.NewParserAt(fixedClock()))
}

func TestCoerceIntentType(t *testing.T) {
	require.Equal(t, IntentCreateReminder, CoerceIntentType("create_reminder"))
	require.Equal(t, IntentChat, CoerceIntentType("chat"))
	require.Equal(t, IntentChat, CoerceIntentType("make_coffee"))
	require.Equal(t, IntentChat, CoerceIntentType(""))
}

func TestRuleMatcherIsTotal(t *testing.T) {
	m := fixedMatcher()

	inputs := []string{
		"", "   ", "hello", "???", "असम्भव", "remind", "the the the",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	}
	for _, input := range inputs {
		intent := m.Match(input)
		require.NotNil(t, intent, "input %q", input)
		require.True(t, IsValidIntentType(string(intent.Type)), "input %q produced %q", input, intent.Type)
		require.Equal(t, SourceRule, intent.Source)
	}
}

func TestBoolSlot(t *testing.T) {
	intent := &Intent{Slots: map[string]any{"a": true, "b": "true", "c": "yes", "d": "no", "e": 1}}
	require.True(t, intent.BoolSlot("a"))
	require.True(t, intent.BoolSlot("b"))
	require.True(t, intent.BoolSlot("c"))
	require.False(t, intent.BoolSlot("d"))
	require.False(t, intent.BoolSlot("e"))
	require.False(t, intent.BoolSlot("missing"))
}

func TestRuleMatcherAvailability(t *testing.T) {
	m := fixedMatcher()

	intent := m.Match("when am I free on friday")
	require.Equal(t, IntentQueryCalendar, intent.Type)
	require.True(t, intent.BoolSlot("availability"))
	require.Equal(t, "2026-03-13", intent.StringSlot("date"))

	intent = m.Match("any free slots tomorrow?")
	require.Equal(t, IntentQueryCalendar, intent.Type)
	require.True(t, intent.BoolSlot("availability"))
	require.Equal(t, "2026-03-12", intent.StringSlot("date"))
}

func TestRuleMatcherReminder(t *testing.T) {
	m := fixedMatcher()

	intent := m.Match("remind me to call mom tomorrow at 3pm")
	require.Equal(t, IntentCreateReminder, intent.Type)
	require.Equal(t, "call mom", intent.StringSlot("title"))
	require.Equal(t, "2026-03-12", intent.StringSlot("date"))
	require.Equal(t, "15:00:00", intent.StringSlot("time"))
}

func TestRuleMatcherCalendar(t *testing.T) {
	m := fixedMatcher()

	tests := []struct {
		input string
		want  IntentType
		title string
		date  string
		time  string
	}{
		{"schedule dentist tomorrow 9am", IntentCreateCalendar, "dentist", "2026-03-12", "09:00:00"},
		{"book a team meeting friday at 14:00", IntentCreateCalendar, "team meeting", "2026-03-13", "14:00:00"},
		{"cancel my meeting", IntentDeleteCalendar, "meeting", "", ""},
		{"move my dentist appointment to 2026-03-20", IntentUpdateCalendar, "dentist appointment", "2026-03-20", ""},
		{"what's on my calendar today", IntentQueryCalendar, "", "2026-03-11", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent := m.Match(tt.input)
			require.Equal(t, tt.want, intent.Type)
			require.Equal(t, tt.title, intent.StringSlot("title"))
			require.Equal(t, tt.date, intent.StringSlot("date"))
			require.Equal(t, tt.time, intent.StringSlot("time"))
		})
	}
}

func TestRuleMatcherShopping(t *testing.T) {
	m := fixedMatcher()

	intent := m.Match("add milk to the shopping list")
	require.Equal(t, IntentCreateShopping, intent.Type)
	require.Equal(t, "milk", intent.StringSlot("item"))
	require.Equal(t, "dairy", intent.StringSlot("category"))

	intent = m.Match("buy diapers")
	require.Equal(t, IntentCreateShopping, intent.Type)
	require.Equal(t, "diapers", intent.StringSlot("item"))
	require.Equal(t, "baby", intent.StringSlot("category"))

	intent = m.Match("remove bread from the grocery list")
	require.Equal(t, IntentDeleteShopping, intent.Type)
	require.Equal(t, "bread", intent.StringSlot("item"))
}

func TestRuleMatcherTask(t *testing.T) {
	m := fixedMatcher()

	intent := m.Match("add a task to rake the leaves, high priority")
	require.Equal(t, IntentCreateTask, intent.Type)
	require.Equal(t, "high", intent.StringSlot("priority"))

	intent = m.Match("mark the laundry task as done")
	require.Equal(t, IntentUpdateTask, intent.Type)
}

func TestRuleMatcherChatFallback(t *testing.T) {
	m := fixedMatcher()

	for _, input := range []string{"hello there", "how was your day", "tell me a joke"} {
		intent := m.Match(input)
		require.Equal(t, IntentChat, intent.Type, "input %q", input)
	}
}

func TestParseClassifierResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantType IntentType
		wantErr  bool
	}{
		{
			name:     "plain json",
			response: `{"intent": "create_calendar", "slots": {"title": "dentist", "date": "2026-03-12"}, "confidence": 0.92}`,
			wantType: IntentCreateCalendar,
		},
		{
			name:     "fenced json",
			response: "```json\n{\"intent\": \"query_shopping\", \"slots\": {}, \"confidence\": 0.8}\n```",
			wantType: IntentQueryShopping,
		},
		{
			name:     "unknown intent coerced to chat",
			response: `{"intent": "order_pizza", "slots": {}, "confidence": 0.5}`,
			wantType: IntentChat,
		},
		{
			name:     "trailing comma repaired",
			response: `{"intent": "create_task", "slots": {"title": "laundry",}, "confidence": 0.7}`,
			wantType: IntentCreateTask,
		},
		{
			name:     "prose is rejected",
			response: "I think the user wants to create a calendar event.",
			wantErr:  true,
		},
		{
			name:     "missing intent field",
			response: `{"slots": {}, "confidence": 0.9}`,
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := parseClassifierResponse(tt.response)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantType, intent.Type)
			require.Equal(t, SourceLLM, intent.Source)
			require.NotNil(t, intent.Slots)
		})
	}
}

// stubLLM is an LLMService returning a fixed response or error.
type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Complete(_ context.Context, _ []ai.Message) (string, error) {
	return s.response, s.err
}

func TestServiceUsesLLM(t *testing.T) {
	svc := NewService(
		&stubLLM{response: `{"intent": "create_shopping", "slots": {"item": "milk"}, "confidence": 0.9}`},
		timeparse.NewParserAt(fixedClock()),
	)

	intent := svc.Classify(context.Background(), "we need milk", "", nil)
	require.Equal(t, IntentCreateShopping, intent.Type)
	require.Equal(t, SourceLLM, intent.Source)
	require.Equal(t, "milk", intent.StringSlot("item"))
}

func TestServiceFallsBackOnLLMError(t *testing.T) {
	svc := NewService(
		&stubLLM{err: errors.New("connection refused")},
		timeparse.NewParserAt(fixedClock()),
	)

	intent := svc.Classify(context.Background(), "remind me to call mom tomorrow at 3pm", "", nil)
	require.Equal(t, IntentCreateReminder, intent.Type)
	require.Equal(t, SourceRule, intent.Source)
	require.Equal(t, "call mom", intent.StringSlot("title"))
}

func TestServiceFallsBackOnGarbageResponse(t *testing.T) {
	svc := NewService(
		&stubLLM{response: "sorry, I cannot help with that"},
		timeparse.NewParserAt(fixedClock()),
	)

	intent := svc.Classify(context.Background(), "add bread to the shopping list", "", nil)
	require.Equal(t, IntentCreateShopping, intent.Type)
	require.Equal(t, SourceRule, intent.Source)
}

func TestServiceWithoutLLM(t *testing.T) {
	svc := NewService(nil, timeparse.NewParserAt(fixedClock()))

	intent := svc.Classify(context.Background(), "hello", "", nil)
	require.Equal(t, IntentChat, intent.Type)
	require.Equal(t, SourceRule, intent.Source)
}
