package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where hearth stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// Timezone is the IANA timezone used when normalizing relative dates
	Timezone string

	// AI Configuration
	AIEnabled        bool    // HEARTH_AI_ENABLED
	AIProvider       string  // HEARTH_AI_PROVIDER (default: openai)
	AIAPIKey         string  // HEARTH_AI_API_KEY
	AIBaseURL        string  // HEARTH_AI_BASE_URL (default: https://api.openai.com/v1)
	AIModel          string  // HEARTH_AI_MODEL (default: gpt-4o-mini)
	AITimeoutSeconds int     // HEARTH_AI_TIMEOUT_SECONDS (default: 5)
	AITemperature    float32 // HEARTH_AI_TEMPERATURE (default: 0.1)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI is enabled and an API key is configured.
// When false, the assistant runs entirely on the rule-based classifier.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads AI configuration from HEARTH_* environment variables.
func (p *Profile) FromEnv() {
	p.AIEnabled = os.Getenv("HEARTH_AI_ENABLED") == "true"
	p.AIProvider = getEnvOrDefault("HEARTH_AI_PROVIDER", "openai")
	p.AIAPIKey = os.Getenv("HEARTH_AI_API_KEY")
	p.AIBaseURL = getEnvOrDefault("HEARTH_AI_BASE_URL", "https://api.openai.com/v1")
	p.AIModel = getEnvOrDefault("HEARTH_AI_MODEL", "gpt-4o-mini")
	if p.AITimeoutSeconds == 0 {
		p.AITimeoutSeconds = 5
	}
	if p.AITemperature == 0 {
		p.AITemperature = 0.1
	}
	if p.Timezone == "" {
		p.Timezone = getEnvOrDefault("HEARTH_TIMEZONE", "Local")
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "hearth")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/hearth"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("hearth_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
