package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the assistant.
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Search  SearchConfig  `mapstructure:"search"`
	Memory  MemoryConfig  `mapstructure:"memory"`
}

// GeneralConfig contains process-wide settings.
type GeneralConfig struct {
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Address renders the listen address for the HTTP server.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (s ServerConfig) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", s.Port)
	}
	return nil
}

// LLMConfig contains language-model provider settings. The API key falls
// back to GROQ_API_KEY when not set through config.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.Provider) == "" {
		return errors.New("llm.provider is required")
	}
	if strings.TrimSpace(l.APIKey) == "" {
		return errors.New("GROQ_API_KEY not set")
	}
	if strings.TrimSpace(l.Model) == "" {
		return errors.New("llm.model is required")
	}
	return nil
}

// SearchConfig contains web-search provider settings. The API key falls back
// to TAVILY_API_KEY or BRAVE_API_KEY depending on the selected provider.
type SearchConfig struct {
	Provider   string        `mapstructure:"provider"`
	APIKey     string        `mapstructure:"api_key"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func (s SearchConfig) Validate() error {
	if strings.TrimSpace(s.Provider) == "" {
		return errors.New("search.provider is required")
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return fmt.Errorf("%s_API_KEY not set", strings.ToUpper(s.Provider))
	}
	if s.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be > 0, got %d", s.MaxResults)
	}
	return nil
}

// MemoryConfig bounds the per-session stores and the prompt windows cut
// from them.
type MemoryConfig struct {
	MaxTurns     int `mapstructure:"max_turns"`
	MaxAnswers   int `mapstructure:"max_answers"`
	ContextTurns int `mapstructure:"context_turns"`
	HistoryItems int `mapstructure:"history_items"`
}

func (m MemoryConfig) Validate() error {
	if m.MaxTurns <= 0 {
		return fmt.Errorf("memory.max_turns must be > 0, got %d", m.MaxTurns)
	}
	if m.MaxAnswers <= 0 {
		return fmt.Errorf("memory.max_answers must be > 0, got %d", m.MaxAnswers)
	}
	if m.ContextTurns <= 0 {
		return fmt.Errorf("memory.context_turns must be > 0, got %d", m.ContextTurns)
	}
	if m.HistoryItems <= 0 {
		return fmt.Errorf("memory.history_items must be > 0, got %d", m.HistoryItems)
	}
	return nil
}

// Load reads configuration from an optional config file, the environment
// (SOTIN_* plus the conventional provider key variables) and built-in
// defaults. A .env file in the working directory is loaded first. Credential
// checks are left to Validate so callers can verify just the sections they
// use.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("SOTIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = os.Getenv(strings.ToUpper(cfg.Search.Provider) + "_API_KEY")
	}

	return &cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	return c.Memory.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.debug", false)
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.log_format", "console")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "llama-3.1-8b-instant")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout", time.Minute)

	v.SetDefault("search.provider", "tavily")
	v.SetDefault("search.max_results", 6)
	v.SetDefault("search.timeout", 30*time.Second)

	v.SetDefault("memory.max_turns", 40)
	v.SetDefault("memory.max_answers", 20)
	v.SetDefault("memory.context_turns", 12)
	v.SetDefault("memory.history_items", 10)
}
