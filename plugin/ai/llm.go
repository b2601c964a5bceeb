// Package ai provides the language-model client used by the assistant.
package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/hearthside/hearth/internal/profile"
)

// Message represents a chat message.
type Message struct {
	Role    string
	Content string
}

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MaxHistoryTurns caps how much conversation history any caller forwards
// to the model.
const MaxHistoryTurns = 10

// TrimHistory returns the trailing MaxHistoryTurns messages of history.
func TrimHistory(history []Message) []Message {
	if len(history) <= MaxHistoryTurns {
		return history
	}
	return history[len(history)-MaxHistoryTurns:]
}

// LLMService is the language-model collaborator. Callers must treat every
// error as "model unavailable" and degrade gracefully.
type LLMService interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Config holds the LLM client configuration.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float32
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		Timeout:     5 * time.Second,
		Temperature: 0.1,
	}
}

// ConfigFromProfile builds an LLM config from the server profile.
func ConfigFromProfile(p *profile.Profile) *Config {
	return &Config{
		BaseURL:     p.AIBaseURL,
		APIKey:      p.AIAPIKey,
		Model:       p.AIModel,
		Timeout:     time.Duration(p.AITimeoutSeconds) * time.Second,
		Temperature: float32(p.AITemperature),
	}
}

// OpenAIService implements LLMService against any OpenAI-compatible endpoint.
type OpenAIService struct {
	client *openai.Client
	config *Config
}

// NewOpenAIService creates a new OpenAI-backed LLM service.
func NewOpenAIService(cfg *Config) (*OpenAIService, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIService{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Complete performs a single chat completion. No retries: the caller decides
// whether to fall back or ask again, and classification must stay fast.
func (s *OpenAIService) Complete(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	llmMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		llmMessages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Messages:    llmMessages,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty chat response")
	}

	slog.Debug("llm completion",
		"model", s.config.Model,
		"messages", len(messages),
		"latency_ms", time.Since(start).Milliseconds())

	return resp.Choices[0].Message.Content, nil
}

var _ LLMService = (*OpenAIService)(nil)
