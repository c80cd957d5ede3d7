package agent

import (
	"context"
	"fmt"

	"github.com/sotinhq/sotin/internal/telemetry"
	"github.com/sotinhq/sotin/models"
)

// summarize asks the model for an answer grounded strictly in the passages
// and the engine's own quick answer. The model's stylistic choices are not
// post-processed.
func (a *Agent) summarize(ctx context.Context, query, engineAnswer string, passages []models.NormalizedPassage, jsonHistory string) (string, error) {
	messages := []models.Message{
		{Role: models.RoleSystem, Content: summarizerSystemPrompt(jsonHistory)},
		{Role: models.RoleUser, Content: summarizerUserPrompt(query, engineAnswer, passages)},
	}
	summary, err := a.llm.Chat(ctx, messages, summarizerMaxTokens)
	if err != nil {
		telemetry.LLMCalls.WithLabelValues("summarizer", "error").Inc()
		return "", fmt.Errorf("summarizer: %w", err)
	}
	telemetry.LLMCalls.WithLabelValues("summarizer", "ok").Inc()
	return summary, nil
}
