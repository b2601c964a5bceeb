package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hearthside/hearth/plugin/ai"
	"github.com/hearthside/hearth/plugin/ai/router"
	"github.com/hearthside/hearth/plugin/ai/timeparse"
	"github.com/hearthside/hearth/server/service/schedule"
	"github.com/hearthside/hearth/store"
)

// calendarSummaryLimit caps how many upcoming events ride along with each
// classification request.
const calendarSummaryLimit = 10

// Service is the natural-language action router: message in, ActionResult
// out.
type Service struct {
	store      Store
	classifier router.ClassifierService
	detector   *schedule.Detector
	llm        ai.LLMService
	parser     *timeparse.Parser
}

// NewService creates the assistant service. llm may be nil; the chat
// handler then answers with a canned reply and everything else runs on the
// rule-based classifier.
func NewService(s Store, classifier router.ClassifierService, detector *schedule.Detector, llm ai.LLMService, parser *timeparse.Parser) *Service {
	if parser == nil {
		parser = timeparse.NewParser()
	}
	return &Service{
		store:      s,
		classifier: classifier,
		detector:   detector,
		llm:        llm,
		parser:     parser,
	}
}

// ProcessMessage runs the full pipeline: summarize calendar state, classify,
// dispatch. It never panics out and never returns an error; every failure
// becomes a user-readable ActionResult.
func (s *Service) ProcessMessage(ctx context.Context, userID int32, message string, history []ai.Message) (result *ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("assistant pipeline panic", "user_id", userID, "panic", r)
			result = fail("Something went wrong on my end. Please try again.")
			result.Type = router.IntentChat
		}
	}()

	summary := s.calendarSummary(ctx, userID)
	intent := s.classifier.Classify(ctx, message, summary, history)

	slog.Info("dispatching intent",
		"user_id", userID,
		"intent", intent.Type,
		"source", intent.Source)

	return s.dispatch(ctx, userID, message, intent, history)
}

// calendarSummary renders the user's upcoming events as prompt context so
// the classifier can ground references like "my dentist appointment".
// Failures degrade to an empty summary; classification must not depend on
// the store being healthy.
func (s *Service) calendarSummary(ctx context.Context, userID int32) string {
	normal := store.Normal
	today := s.today()
	limit := calendarSummaryLimit
	events, err := s.store.ListEvents(ctx, &store.FindEvent{
		CreatorID: &userID,
		RowStatus: &normal,
		DateStart: &today,
		Limit:     &limit,
	})
	if err != nil {
		slog.Warn("failed to build calendar summary", "user_id", userID, "error", err)
		return ""
	}
	if len(events) == 0 {
		return ""
	}

	var b strings.Builder
	for _, event := range events {
		fmt.Fprintf(&b, "- %s on %s", event.Title, event.Date)
		if event.StartTime != "" {
			fmt.Fprintf(&b, " at %s", clockLabel(event.StartTime))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// today returns the current date in canonical form, via the injectable
// parser clock so tests stay deterministic.
func (s *Service) today() string {
	return s.parser.NormalizeDate("today")
}

// clockLabel shortens HH:MM:SS to HH:MM for user-facing text.
func clockLabel(clock string) string {
	if len(clock) >= 5 {
		return clock[:5]
	}
	return clock
}
