package router

import (
	"context"

	"github.com/hearthside/hearth/plugin/ai"
	"github.com/hearthside/hearth/plugin/ai/timeparse"
)

// MockClassifierService is a ClassifierService for tests. Exact-message
// overrides take priority; everything else goes through the rule matcher.
type MockClassifierService struct {
	Overrides map[string]*Intent
	matcher   *RuleMatcher
}

// NewMockClassifierService creates a mock classifier with the given clock.
func NewMockClassifierService(parser *timeparse.Parser) *MockClassifierService {
	return &MockClassifierService{
		Overrides: make(map[string]*Intent),
		matcher:   NewRuleMatcher(parser),
	}
}

// Classify returns the override for the message, or a rule-matched intent.
func (m *MockClassifierService) Classify(_ context.Context, message, _ string, _ []ai.Message) *Intent {
	if intent, ok := m.Overrides[message]; ok {
		return intent
	}
	return m.matcher.Match(message)
}

var _ ClassifierService = (*MockClassifierService)(nil)
