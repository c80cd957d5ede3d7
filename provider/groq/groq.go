package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sotinhq/sotin/models"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Client talks to Groq's chat completions API.
type Client struct {
	completionModel string
	temperature     float32
	api             *openai.Client
}

// NewClient creates a Groq client. An empty baseURL selects the public Groq
// endpoint; timeout bounds each HTTP call.
func NewClient(apiKey, completionModel, baseURL string, temperature float64, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		completionModel: completionModel,
		temperature:     float32(temperature),
		api:             openai.NewClientWithConfig(cfg),
	}
}

// Chat sends the messages and returns the first choice's content, trimmed.
func (c *Client) Chat(ctx context.Context, messages []models.Message, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.completionModel,
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
