package provider

import (
	"context"
	"errors"

	"github.com/sotinhq/sotin/config"
	"github.com/sotinhq/sotin/models"
	"github.com/sotinhq/sotin/provider/groq"
)

// Client identifies an LLM provider implementation.
type Client string

const (
	Groq Client = "groq"
)

// ErrUnsupportedProvider is returned for provider names without an
// implementation.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// Provider is the interface all LLM implementations satisfy. Chat sends the
// messages and returns the model's text output.
type Provider interface {
	Chat(ctx context.Context, messages []models.Message, maxTokens int) (string, error)
}

// NewProvider creates an LLM client from configuration.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Provider) {
	case Groq:
		if cfg.APIKey == "" {
			return nil, errors.New("GROQ_API_KEY not set")
		}
		return groq.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Temperature, cfg.Timeout), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
