// Package config loads application settings from environment variables,
// an optional .env file and an optional YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/llm"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

// Standardizer providers.
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

type Config struct {
	Env          string             `yaml:"env" env:"GANTT_ENV" env-default:"local"`
	Log          LogConfig          `yaml:"log"`
	Timeline     TimelineConfig     `yaml:"timeline"`
	Export       ExportConfig       `yaml:"export"`
	Standardizer StandardizerConfig `yaml:"standardizer"`
	Gemini       llm.GeminiConfig   `yaml:"gemini" env-prefix:"GEMINI_"`
	Ollama       llm.LLMConfig      `yaml:"ollama" env-prefix:"OLLAMA_"`
	HTTP         HTTPConfig         `yaml:"http"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"GANTT_LOG_LEVEL" env-default:"info"`
	// JSON forces structured output even in the local env.
	JSON bool `yaml:"json" env:"GANTT_LOG_JSON" env-default:"false"`
}

type TimelineConfig struct {
	BufferDays int `yaml:"buffer_days" env:"GANTT_TIMELINE_BUFFER_DAYS" env-default:"3"`
}

type ExportConfig struct {
	ThemePath string `yaml:"theme" env:"GANTT_EXPORT_THEME"`
	Title     string `yaml:"title" env:"GANTT_EXPORT_TITLE"`
	Project   string `yaml:"project" env:"GANTT_EXPORT_PROJECT"`
	Company   string `yaml:"company" env:"GANTT_EXPORT_COMPANY"`
	Output    string `yaml:"output" env:"GANTT_EXPORT_OUTPUT" env-default:"gantt_chart.xlsx"`
}

type StandardizerConfig struct {
	Provider string `yaml:"provider" env:"GANTT_STANDARDIZER" env-default:"none"`
	// CachePath is the SQLite file caching remote answers. Empty disables
	// the cache.
	CachePath string `yaml:"cache_path" env:"GANTT_STANDARDIZER_CACHE"`
	// CacheTTL drops cached answers older than this when the cache opens.
	// Zero keeps everything.
	CacheTTL time.Duration `yaml:"cache_ttl" env:"GANTT_STANDARDIZER_CACHE_TTL" env-default:"720h"`
	// LogCalls logs one line per remote call.
	LogCalls bool `yaml:"log_calls" env:"GANTT_STANDARDIZER_LOG_CALLS" env-default:"true"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"GANTT_HTTP_HOST" env-default:"127.0.0.1"`
	Port            string        `yaml:"port" env:"GANTT_HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"GANTT_HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	MaxUploadMB     int64         `yaml:"max_upload_mb" env:"GANTT_HTTP_MAX_UPLOAD_MB" env-default:"20"`
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}
	switch c.Standardizer.Provider {
	case ProviderNone, ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unknown standardizer provider: %s", c.Standardizer.Provider)
	}
	if c.Standardizer.CacheTTL < 0 {
		return fmt.Errorf("standardizer cache ttl must not be negative, got %s", c.Standardizer.CacheTTL)
	}
	if c.HTTP.MaxUploadMB <= 0 {
		return fmt.Errorf("http max upload must be positive, got %d", c.HTTP.MaxUploadMB)
	}
	return nil
}
