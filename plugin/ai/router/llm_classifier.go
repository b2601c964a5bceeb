package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/pkg/errors"

	"github.com/hearthside/hearth/plugin/ai"
)

// LLMClassifier asks the language model for an intent. Any failure here is
// recoverable: the caller falls back to the rule matcher.
type LLMClassifier struct {
	llm ai.LLMService
}

// NewLLMClassifier creates a new LLM-backed classifier.
func NewLLMClassifier(llm ai.LLMService) *LLMClassifier {
	return &LLMClassifier{llm: llm}
}

const classificationPromptTemplate = `You are the intent classifier for a household assistant. Classify the user's message into exactly one intent and extract its slots.

Intent types:
- create_calendar / query_calendar / update_calendar / delete_calendar: calendar events
- create_reminder / query_reminder / update_reminder / delete_reminder: reminders
- create_shopping / query_shopping / update_shopping / delete_shopping: shopping list items
- create_task / query_task / update_task / delete_task: household tasks
- create_family / query_family / update_family / delete_family: family member records
- chat: anything else (greetings, questions, small talk)

Slot shapes by intent family:
- calendar: title, date, time, end_time, location, participants
- query_calendar additionally takes availability (boolean, true when the user asks about free time or open slots rather than events)
- reminder: title, date, time
- shopping: item, quantity, category (one of: dairy, produce, meat, bakery, baby, household, other)
- task: title, due_date, priority (one of: low, medium, high)
- family: name, birthdate, relation
- update/delete intents additionally take the search term for the existing record in "title" (or "item"/"name")
- chat: no slots

Dates may be relative ("tomorrow", "friday") — pass them through as written. Omit slots the user did not state; never invent values.

The user's current calendar:
%s

Respond with a single JSON object and nothing else:
{"intent": "<intent type>", "slots": {...}, "confidence": <0-1>}`

// Classify sends the message, calendar summary, and capped history to the
// model and parses its JSON reply.
func (c *LLMClassifier) Classify(ctx context.Context, message, calendarSummary string, history []ai.Message) (*Intent, error) {
	if c.llm == nil {
		return nil, errors.New("llm not configured")
	}

	if calendarSummary == "" {
		calendarSummary = "(no upcoming events)"
	}

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: fmt.Sprintf(classificationPromptTemplate, calendarSummary)},
	}
	messages = append(messages, ai.TrimHistory(history)...)
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message})

	response, err := c.llm.Complete(ctx, messages)
	if err != nil {
		return nil, errors.Wrap(err, "classification request failed")
	}

	return parseClassifierResponse(response)
}

// llmIntentResponse is the JSON shape expected from the model.
type llmIntentResponse struct {
	Intent     string         `json:"intent"`
	Slots      map[string]any `json:"slots"`
	Confidence float64        `json:"confidence"`
}

// parseClassifierResponse parses the model output: strip markdown fences,
// strict parse, then one repair attempt for almost-JSON replies.
func parseClassifierResponse(response string) (*Intent, error) {
	raw := stripMarkdownFences(response)

	var resp llmIntentResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return nil, errors.Wrap(err, "unparseable classifier response")
		}
		if err := json.Unmarshal([]byte(repaired), &resp); err != nil {
			return nil, errors.Wrap(err, "unparseable classifier response after repair")
		}
	}

	if resp.Intent == "" {
		return nil, errors.New("classifier response missing intent")
	}

	slots := resp.Slots
	if slots == nil {
		slots = map[string]any{}
	}

	return &Intent{
		Type:       CoerceIntentType(strings.ToLower(strings.TrimSpace(resp.Intent))),
		Slots:      slots,
		Confidence: float32(resp.Confidence),
		Source:     SourceLLM,
	}, nil
}

// stripMarkdownFences removes ```json fences the model sometimes wraps
// around its output.
func stripMarkdownFences(response string) string {
	response = strings.TrimSpace(response)
	if !strings.HasPrefix(response, "```") {
		return response
	}

	lines := strings.Split(response, "\n")
	var jsonLines []string
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			jsonLines = append(jsonLines, line)
		}
	}
	return strings.Join(jsonLines, "\n")
}
