// Package config reads process settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Transcript store backends.
const (
	StoreNone     = "none"
	StoreSQLite   = "sqlite"
	StoreDynamoDB = "dynamodb"
)

type Config struct {
	// Base URL of the dialogue service REST channel.
	DialogueURL    string `env:"DIALOGUE_URL" envDefault:"http://localhost:5005"`
	DialogueSender string `env:"DIALOGUE_SENDER" envDefault:"user"`
	DialogueToken  string `env:"DIALOGUE_TOKEN"`
	// SSM parameter holding {"token": "..."}; used when DialogueToken is empty.
	DialogueTokenParam string `env:"DIALOGUE_TOKEN_PARAM"`

	TranscriptStore string `env:"TRANSCRIPT_STORE" envDefault:"none"`
	TranscriptTable string `env:"TRANSCRIPT_TABLE"`
	TranscriptDB    string `env:"TRANSCRIPT_DB" envDefault:".skincare-bot/transcripts.db"`
	SessionID       string `env:"SESSION_ID"`
	HistoryLimit    int    `env:"HISTORY_LIMIT" envDefault:"50"`

	// HTTP listen address for the local action server.
	ActionsAddress string `env:"ACTIONS_ADDRESS" envDefault:":5055"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.TranscriptStore = strings.ToLower(strings.TrimSpace(c.TranscriptStore))
	switch c.TranscriptStore {
	case "":
		c.TranscriptStore = StoreNone
	case StoreNone, StoreSQLite:
	case StoreDynamoDB:
		if strings.TrimSpace(c.TranscriptTable) == "" {
			return errors.New("config: TRANSCRIPT_TABLE is required for the dynamodb store")
		}
	default:
		return fmt.Errorf("config: unknown TRANSCRIPT_STORE %q", c.TranscriptStore)
	}
	if strings.TrimSpace(c.DialogueSender) == "" {
		return errors.New("config: DIALOGUE_SENDER must not be empty")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: HISTORY_LIMIT must not be negative, got %d", c.HistoryLimit)
	}
	return nil
}

// Level maps LOG_LEVEL to a slog level, falling back to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
