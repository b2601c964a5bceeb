package profile

import (
	"os"
	"testing"
)

func TestAIProfileDefaults(t *testing.T) {
	clearAIEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"AIProvider default", "openai", profile.AIProvider},
		{"AIBaseURL default", "https://api.openai.com/v1", profile.AIBaseURL},
		{"AIModel default", "gpt-4o-mini", profile.AIModel},
		{"Timezone default", "Local", profile.Timezone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if profile.AIEnabled {
		t.Error("AIEnabled should be false by default")
	}
	if profile.AITimeoutSeconds != 5 {
		t.Errorf("AITimeoutSeconds: expected 5, got %d", profile.AITimeoutSeconds)
	}
}

func TestAIProfileFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) string
		expected string
	}{
		{
			name:     "HEARTH_AI_ENABLED=true",
			envVar:   "HEARTH_AI_ENABLED",
			envValue: "true",
			field:    func(p *Profile) string { return boolToString(p.AIEnabled) },
			expected: "true",
		},
		{
			name:     "HEARTH_AI_API_KEY",
			envVar:   "HEARTH_AI_API_KEY",
			envValue: "test-key-123",
			field:    func(p *Profile) string { return p.AIAPIKey },
			expected: "test-key-123",
		},
		{
			name:     "HEARTH_AI_BASE_URL",
			envVar:   "HEARTH_AI_BASE_URL",
			envValue: "https://custom.openai.proxy/v1",
			field:    func(p *Profile) string { return p.AIBaseURL },
			expected: "https://custom.openai.proxy/v1",
		},
		{
			name:     "HEARTH_AI_MODEL",
			envVar:   "HEARTH_AI_MODEL",
			envValue: "gpt-4",
			field:    func(p *Profile) string { return p.AIModel },
			expected: "gpt-4",
		},
		{
			name:     "HEARTH_TIMEZONE",
			envVar:   "HEARTH_TIMEZONE",
			envValue: "America/New_York",
			field:    func(p *Profile) string { return p.Timezone },
			expected: "America/New_York",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAIEnvVars()
			os.Setenv(tt.envVar, tt.envValue)
			defer os.Unsetenv(tt.envVar)

			profile := &Profile{}
			profile.FromEnv()

			actual := tt.field(profile)
			if actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, actual)
			}
		})
	}
}

func TestIsAIEnabled(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(*Profile)
		expectedResult bool
	}{
		{
			name: "AIEnabled=false should return false",
			setup: func(p *Profile) {
				p.AIEnabled = false
			},
			expectedResult: false,
		},
		{
			name: "AIEnabled=true but no API key should return false",
			setup: func(p *Profile) {
				p.AIEnabled = true
				p.AIAPIKey = ""
			},
			expectedResult: false,
		},
		{
			name: "AIEnabled=true with API key should return true",
			setup: func(p *Profile) {
				p.AIEnabled = true
				p.AIAPIKey = "test-key"
			},
			expectedResult: true,
		},
		{
			name: "AIEnabled=false with API key should return false",
			setup: func(p *Profile) {
				p.AIEnabled = false
				p.AIAPIKey = "test-key"
			},
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &Profile{}
			tt.setup(profile)
			result := profile.IsAIEnabled()
			if result != tt.expectedResult {
				t.Errorf("IsAIEnabled(): expected %v, got %v", tt.expectedResult, result)
			}
		})
	}
}

// Helper functions

func clearAIEnvVars() {
	aiEnvVars := []string{
		"HEARTH_AI_ENABLED",
		"HEARTH_AI_PROVIDER",
		"HEARTH_AI_API_KEY",
		"HEARTH_AI_BASE_URL",
		"HEARTH_AI_MODEL",
		"HEARTH_TIMEZONE",
	}
	for _, envVar := range aiEnvVars {
		os.Unsetenv(envVar)
	}
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
