// Package config loads vocabdrill settings from an optional config.yaml,
// an optional .env file and VOCABDRILL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/vocabdrill/internal/llm"
	"github.com/abhisek/vocabdrill/internal/lookalike"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "VOCABDRILL"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration.
type Config struct {
	Env       string    `mapstructure:"env"`        // local, production
	DBPath    string    `mapstructure:"db"`         // empty resolves to the XDG data dir
	Language  string    `mapstructure:"language"`   // default drill language ID
	Level     string    `mapstructure:"level"`      // default drill level; empty suggests one
	BatchSize int       `mapstructure:"batch_size"` // words per round
	Log       Log       `mapstructure:"log"`
	LLM       LLM       `mapstructure:"llm"`
	Lookalike Lookalike `mapstructure:"lookalike"`
}

// Log configures the zap logger.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // the drill only logs when this is set
}

// LLM configures the language model used for lookalike generation.
type LLM struct {
	Provider   string        `mapstructure:"provider"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Anthropic  Endpoint      `mapstructure:"anthropic"`
	OpenAI     Endpoint      `mapstructure:"openai"`
	Gemini     Endpoint      `mapstructure:"gemini"`
	OpenRouter Endpoint      `mapstructure:"openrouter"`
	Retry      Retry         `mapstructure:"retry"`
}

// Endpoint is one provider's credentials and model.
type Endpoint struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type Retry struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
}

// Lookalike bounds batch generation.
type Lookalike struct {
	Concurrency   int     `mapstructure:"concurrency"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
}

// Options controls where Load looks for files.
type Options struct {
	// ConfigFile is an explicit config path. Empty searches the default
	// locations for config.yaml.
	ConfigFile string

	// EnvFile is loaded into the process environment when present.
	// Empty means ".env".
	EnvFile string
}

// Load reads configuration from config files and environment variables.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Existing environment variables win over the file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	batch := lookalike.DefaultBatchOptions()

	v.SetDefault("env", "local")
	v.SetDefault("db", "")
	v.SetDefault("language", "hungarian")
	v.SetDefault("level", "")
	v.SetDefault("batch_size", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", llmDefaults.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", llmDefaults.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", llmDefaults.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", llmDefaults.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", llmDefaults.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", llmDefaults.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", llmDefaults.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", llmDefaults.Retry.MaxWait)

	v.SetDefault("lookalike.concurrency", batch.Concurrency)
	v.SetDefault("lookalike.rate_per_second", batch.RatePerSecond)
	v.SetDefault("lookalike.burst", batch.Burst)
}

// configDir returns $XDG_CONFIG_HOME/vocabdrill, falling back to
// ~/.config/vocabdrill. Empty when no home directory is known.
func configDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "vocabdrill")
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Level != "" {
		if _, err := wordlist.ParseLevel(c.Level); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch_size must be at least 1, got %d", ErrInvalidConfig, c.BatchSize)
	}
	return nil
}

// DrillLevel returns the configured level, or "" when the drill should
// suggest one from level progress.
func (c *Config) DrillLevel() wordlist.Level {
	if c.Level == "" {
		return ""
	}
	l, _ := wordlist.ParseLevel(c.Level)
	return l
}

// LLMConfig converts the LLM section into an llm.Config. When no provider
// is configured the vendors' standard API key variables are probed.
func (c *Config) LLMConfig() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Timeout > 0 {
		out.Timeout = c.LLM.Timeout
	}

	out.Anthropic.APIKey = c.LLM.Anthropic.APIKey
	out.Anthropic.Model = orDefault(c.LLM.Anthropic.Model, out.Anthropic.Model)
	out.OpenAI.APIKey = c.LLM.OpenAI.APIKey
	out.OpenAI.Model = orDefault(c.LLM.OpenAI.Model, out.OpenAI.Model)
	out.OpenAI.BaseURL = c.LLM.OpenAI.BaseURL
	out.Gemini.APIKey = c.LLM.Gemini.APIKey
	out.Gemini.Model = orDefault(c.LLM.Gemini.Model, out.Gemini.Model)
	out.OpenRouter.APIKey = c.LLM.OpenRouter.APIKey
	out.OpenRouter.Model = orDefault(c.LLM.OpenRouter.Model, out.OpenRouter.Model)
	out.OpenRouter.BaseURL = c.LLM.OpenRouter.BaseURL

	if c.LLM.Retry.MaxAttempts > 0 {
		out.Retry.MaxAttempts = c.LLM.Retry.MaxAttempts
	}
	if c.LLM.Retry.InitialWait > 0 {
		out.Retry.InitialWait = c.LLM.Retry.InitialWait
	}
	if c.LLM.Retry.MaxWait > 0 {
		out.Retry.MaxWait = c.LLM.Retry.MaxWait
	}

	out.Discover()
	return out
}

// BatchOptions converts the lookalike section into batch limits.
func (c *Config) BatchOptions() lookalike.BatchOptions {
	return lookalike.BatchOptions{
		Concurrency:   c.Lookalike.Concurrency,
		RatePerSecond: c.Lookalike.RatePerSecond,
		Burst:         c.Lookalike.Burst,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
