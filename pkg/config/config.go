// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Backend identifiers for the completion service.
const (
	BackendChat      = "chat"      // OpenAI-compatible chat completions
	BackendInference = "inference" // HF-style text inference
)

// ErrConfigurationMissing marks a credential or setting absent at startup.
// The process must refuse to start rather than fail on first message.
var ErrConfigurationMissing = errors.New("configuration missing")

type ModelConfig struct {
	Backend        string  `env:"MODEL_BACKEND" envDefault:"chat"`
	Name           string  `env:"MODEL_NAME" envDefault:"mistralai/Mixtral-8x7B-Instruct-v0.1"`
	TogetherAPIKey string  `env:"API_TOKEN_TOGETHER"`
	HFAPIToken     string  `env:"HF_API_TOKEN"`
	ChatBaseURL    string  `env:"MODEL_CHAT_BASE_URL" envDefault:"https://api.together.xyz/v1"`
	InferenceURL   string  `env:"MODEL_INFERENCE_URL" envDefault:"https://api-inference.huggingface.co/models/mistralai/Mixtral-8x7B-Instruct-v0.1"`
	TimeoutSeconds int     `env:"MODEL_TIMEOUT_SECONDS" envDefault:"15"`
	CallsPerSecond float64 `env:"MODEL_CALLS_PER_SECOND" envDefault:"5"`
}

// APIKey returns the credential for the configured backend.
func (m ModelConfig) APIKey() string {
	if m.Backend == BackendInference {
		return m.HFAPIToken
	}
	return m.TogetherAPIKey
}

type TelegramConfig struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN"`
}

type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envDefault:"8000"`
}

type Config struct {
	Environment string `env:"FACTY_ENV" envDefault:"development"`
	Model       ModelConfig
	Telegram    TelegramConfig
	Server      ServerConfig
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings every command needs. The model credential is
// always required; the Telegram token only for the bot command.
func (c *Config) Validate(needTelegram bool) error {
	switch c.Model.Backend {
	case BackendChat, BackendInference:
	default:
		return fmt.Errorf("%w: unknown MODEL_BACKEND %q", ErrConfigurationMissing, c.Model.Backend)
	}
	if c.Model.APIKey() == "" {
		name := "API_TOKEN_TOGETHER"
		if c.Model.Backend == BackendInference {
			name = "HF_API_TOKEN"
		}
		return fmt.Errorf("%w: %s", ErrConfigurationMissing, name)
	}
	if needTelegram && c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN", ErrConfigurationMissing)
	}
	return nil
}
