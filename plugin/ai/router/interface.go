// Package router classifies free-form user messages into structured intents.
// Primary classification goes through the language model; a deterministic
// rule matcher covers every input when the model is unreachable or returns
// unusable output.
package router

import (
	"context"
	"strings"

	"github.com/hearthside/hearth/plugin/ai"
)

// IntentType identifies one action category. The set is closed: anything a
// classifier produces outside it is coerced to IntentChat.
type IntentType string

const (
	IntentCreateCalendar IntentType = "create_calendar"
	IntentQueryCalendar  IntentType = "query_calendar"
	IntentUpdateCalendar IntentType = "update_calendar"
	IntentDeleteCalendar IntentType = "delete_calendar"

	IntentCreateReminder IntentType = "create_reminder"
	IntentQueryReminder  IntentType = "query_reminder"
	IntentUpdateReminder IntentType = "update_reminder"
	IntentDeleteReminder IntentType = "delete_reminder"

	IntentCreateShopping IntentType = "create_shopping"
	IntentQueryShopping  IntentType = "query_shopping"
	IntentUpdateShopping IntentType = "update_shopping"
	IntentDeleteShopping IntentType = "delete_shopping"

	IntentCreateTask IntentType = "create_task"
	IntentQueryTask  IntentType = "query_task"
	IntentUpdateTask IntentType = "update_task"
	IntentDeleteTask IntentType = "delete_task"

	IntentCreateFamily IntentType = "create_family"
	IntentQueryFamily  IntentType = "query_family"
	IntentUpdateFamily IntentType = "update_family"
	IntentDeleteFamily IntentType = "delete_family"

	IntentChat IntentType = "chat"
)

// allIntentTypes is the closed enum, in prompt order.
var allIntentTypes = []IntentType{
	IntentCreateCalendar, IntentQueryCalendar, IntentUpdateCalendar, IntentDeleteCalendar,
	IntentCreateReminder, IntentQueryReminder, IntentUpdateReminder, IntentDeleteReminder,
	IntentCreateShopping, IntentQueryShopping, IntentUpdateShopping, IntentDeleteShopping,
	IntentCreateTask, IntentQueryTask, IntentUpdateTask, IntentDeleteTask,
	IntentCreateFamily, IntentQueryFamily, IntentUpdateFamily, IntentDeleteFamily,
	IntentChat,
}

// IsValidIntentType reports whether s is a member of the intent enum.
func IsValidIntentType(s string) bool {
	for _, it := range allIntentTypes {
		if string(it) == s {
			return true
		}
	}
	return false
}

// CoerceIntentType maps a raw classifier string onto the enum. Unknown
// values become IntentChat so downstream routing stays total.
func CoerceIntentType(s string) IntentType {
	if IsValidIntentType(s) {
		return IntentType(s)
	}
	return IntentChat
}

// Classification sources.
const (
	SourceLLM  = "llm"
	SourceRule = "rule"
)

// Intent is the structured classification of one user message. Slots carry
// extracted parameter values keyed by name; no slot is guaranteed present
// and handlers must validate the ones they need.
type Intent struct {
	Type       IntentType
	Slots      map[string]any
	Confidence float32
	Source     string
}

// StringSlot returns the named slot as a trimmed string, or "" when the
// slot is absent, not a string, or blank.
func (i *Intent) StringSlot(key string) string {
	if i.Slots == nil {
		return ""
	}
	v, ok := i.Slots[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// BoolSlot returns the named slot as a bool. JSON booleans and the strings
// "true"/"yes" count as true; everything else is false.
func (i *Intent) BoolSlot(key string) bool {
	if i.Slots == nil {
		return false
	}
	switch v := i.Slots[key].(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "yes"
	default:
		return false
	}
}

// ClassifierService classifies a user message into a typed intent. It is a
// total function: implementations degrade to rule-based classification and
// never fail.
type ClassifierService interface {
	Classify(ctx context.Context, message, calendarSummary string, history []ai.Message) *Intent
}
