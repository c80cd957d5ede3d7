package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/sotinhq/sotin/internal/telemetry"
	"github.com/sotinhq/sotin/models"
)

// Decision is the router's verdict for one request. It is either a
// DirectAnswer or a NeedsSearch; the orchestrator switches on the concrete
// type.
type Decision interface {
	isDecision()
}

// DirectAnswer carries the model's own answer text.
type DirectAnswer struct {
	Text string
}

// NeedsSearch defers the request to the web search path.
type NeedsSearch struct{}

func (DirectAnswer) isDecision() {}
func (NeedsSearch) isDecision()  {}

// route asks the model whether it can answer directly. NeedsSearch is
// returned iff the trimmed model output equals the sentinel token exactly;
// any other output is the direct answer.
func (a *Agent) route(ctx context.Context, req Request) (Decision, error) {
	latest := collapseWhitespace(req.Message)
	prompt := req.PromptContext
	if prompt == "" {
		prompt = latest
	}

	messages := []models.Message{
		{Role: models.RoleSystem, Content: routerSystemPrompt(req.HistoryJSON)},
		{Role: models.RoleUser, Content: prompt},
	}
	answer, err := a.llm.Chat(ctx, messages, routerMaxTokens)
	if err != nil {
		telemetry.LLMCalls.WithLabelValues("router", "error").Inc()
		return nil, fmt.Errorf("router: %w", err)
	}
	telemetry.LLMCalls.WithLabelValues("router", "ok").Inc()

	if strings.TrimSpace(answer) == SearchSentinel {
		return NeedsSearch{}, nil
	}
	return DirectAnswer{Text: answer}, nil
}
