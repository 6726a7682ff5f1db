package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	APIKey  string `env:"OPENAI_API_KEY,required"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	DataDir string `env:"AIBRIDGE_DATA_DIR" envDefault:"./data"`

	// Execution mode: if false, submissions block the caller until completion.
	AsyncExecution bool `env:"AIBRIDGE_ASYNC" envDefault:"true"`

	// Poller tick interval on the host main loop.
	PollInterval time.Duration `env:"AIBRIDGE_POLL_INTERVAL" envDefault:"100ms"`

	// Models
	ChatModel  string `env:"AIBRIDGE_CHAT_MODEL" envDefault:"gpt-4"`
	CodeModel  string `env:"AIBRIDGE_CODE_MODEL" envDefault:"gpt-4"`
	AudioModel string `env:"AIBRIDGE_AUDIO_MODEL" envDefault:"whisper-1"`

	// Audio transcription default language
	AudioLanguage string `env:"AIBRIDGE_AUDIO_LANGUAGE" envDefault:"en"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
