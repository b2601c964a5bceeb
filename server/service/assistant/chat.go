package assistant

import (
	"context"
	"log/slog"

	"github.com/hearthside/hearth/plugin/ai"
)

const chatSystemPrompt = `You are Hearth, a warm and concise household assistant. You help with calendars, reminders, shopping lists, tasks, and family records, and you chat about everyday things. Answer in a couple of sentences at most.`

const chatFallbackReply = "I'm having trouble thinking right now, but I can still manage your calendar, reminders, shopping list, and tasks. What would you like to do?"

// chat answers conversational messages. When the model is unavailable the
// reply is canned; chat never fails.
func (s *Service) chat(ctx context.Context, message string, history []ai.Message) *ActionResult {
	if s.llm == nil {
		return ok(chatFallbackReply)
	}

	messages := []ai.Message{{Role: ai.RoleSystem, Content: chatSystemPrompt}}
	messages = append(messages, ai.TrimHistory(history)...)
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message})

	reply, err := s.llm.Complete(ctx, messages)
	if err != nil {
		slog.Warn("chat completion failed", "error", err)
		return ok(chatFallbackReply)
	}
	return ok(reply)
}
