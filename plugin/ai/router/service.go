package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/hearthside/hearth/plugin/ai"
	"github.com/hearthside/hearth/plugin/ai/timeparse"
)

// classifyTimeout bounds the model round trip; past it the rule matcher
// answers instead.
const classifyTimeout = 5 * time.Second

// Service is the production classifier: LLM first, rule matcher on any
// failure. There is no retry of the model call; a slow or broken model
// must not stall the pipeline.
type Service struct {
	llmClassifier *LLMClassifier
	ruleMatcher   *RuleMatcher
}

// NewService creates a classifier service. llm may be nil, in which case
// every message goes through the rule matcher.
func NewService(llm ai.LLMService, parser *timeparse.Parser) *Service {
	var classifier *LLMClassifier
	if llm != nil {
		classifier = NewLLMClassifier(llm)
	}
	return &Service{
		llmClassifier: classifier,
		ruleMatcher:   NewRuleMatcher(parser),
	}
}

// Classify returns a typed intent for the message. The fallback path makes
// this total: it never returns nil and never fails.
func (s *Service) Classify(ctx context.Context, message, calendarSummary string, history []ai.Message) *Intent {
	start := time.Now()

	if s.llmClassifier != nil {
		ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
		defer cancel()

		intent, err := s.llmClassifier.Classify(ctx, message, calendarSummary, history)
		if err == nil {
			slog.Debug("intent classified",
				"source", SourceLLM,
				"intent", intent.Type,
				"confidence", intent.Confidence,
				"latency_ms", time.Since(start).Milliseconds())
			return intent
		}
		slog.Warn("llm classification failed, using rule matcher", "error", err)
	}

	intent := s.ruleMatcher.Match(message)
	slog.Debug("intent classified",
		"source", SourceRule,
		"intent", intent.Type,
		"confidence", intent.Confidence,
		"latency_ms", time.Since(start).Milliseconds())
	return intent
}

var _ ClassifierService = (*Service)(nil)
