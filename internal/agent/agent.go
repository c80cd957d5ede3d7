package agent

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sotinhq/sotin/internal/telemetry"
	"github.com/sotinhq/sotin/models"
	"github.com/sotinhq/sotin/provider"
	"github.com/sotinhq/sotin/tools/websearch"
)

// Request carries one user message plus the memory snapshots the pipeline
// may consult. The pipeline holds no state of its own, so repeated runs are
// independent except through the supplied history.
type Request struct {
	UserID    string
	SessionID string
	// Message is the latest user input; it doubles as the search query.
	Message string
	// PromptContext is the rolling transcript shown to the router. When
	// empty the trimmed message is used.
	PromptContext string
	// HistoryJSON is the compact serialization of prior structured answers.
	HistoryJSON string
}

// Agent runs the chat pipeline: route, then either answer directly or
// search, normalize and summarize, and finally assemble the structured
// answer.
type Agent struct {
	llm        provider.Provider
	searcher   websearch.WebSearcher
	logger     *zap.Logger
	maxSources int
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets the agent's logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMaxSources caps how many passages survive normalization.
func WithMaxSources(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxSources = n
		}
	}
}

// New creates an Agent over the given model and search providers.
func New(llm provider.Provider, searcher websearch.WebSearcher, opts ...Option) *Agent {
	a := &Agent{
		llm:        llm,
		searcher:   searcher,
		logger:     zap.NewNop(),
		maxSources: DefaultMaxSources,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run processes one chat request. Control flows routing, then on a search
// decision searching, normalizing and summarizing, and always finalizing.
// There are no retries and no cycles; a failed stage aborts the run and the
// error surfaces to the caller.
func (a *Agent) Run(ctx context.Context, req Request) (models.StructuredAnswer, error) {
	started := time.Now()

	decision, err := a.route(ctx, req)
	if err != nil {
		return models.StructuredAnswer{}, err
	}

	var (
		directAnswer string
		summary      string
		passages     []models.NormalizedPassage
	)
	switch d := decision.(type) {
	case DirectAnswer:
		directAnswer = d.Text
		a.logger.Debug("router answered directly", zap.String("session_id", req.SessionID))
	case NeedsSearch:
		a.logger.Debug("router deferred to web search", zap.String("session_id", req.SessionID))
		resp, err := a.searchWeb(ctx, req.Message, true)
		if err != nil {
			return models.StructuredAnswer{}, err
		}
		passages = NormalizeSources(resp.Results, a.maxSources)
		summary, err = a.summarize(ctx, req.Message, resp.Answer, passages, req.HistoryJSON)
		if err != nil {
			return models.StructuredAnswer{}, err
		}
	default:
		return models.StructuredAnswer{}, fmt.Errorf("unexpected route decision %T", decision)
	}

	out := finalize(req.Message, summary, directAnswer, passages)
	telemetry.PipelineDuration.WithLabelValues("chat").Observe(time.Since(started).Seconds())
	a.logger.Info("chat request finished",
		zap.String("session_id", req.SessionID),
		zap.Any("engine", out.Meta["engine"]),
		zap.Int("num_sources", len(out.Citations)),
		zap.Duration("took", time.Since(started)),
	)
	return out, nil
}

// searchWeb issues the query to the search provider. An empty query
// short-circuits to an empty envelope without touching the provider.
func (a *Agent) searchWeb(ctx context.Context, query string, includeAnswer bool) (models.SearchResponse, error) {
	query = collapseWhitespace(query)
	if query == "" {
		return models.SearchResponse{}, nil
	}

	resp, err := a.searcher.Search(ctx, query, models.SearchOptions{
		MaxResults:        a.maxSources,
		IncludeAnswer:     includeAnswer,
		IncludeRawContent: true,
	})
	if err != nil {
		telemetry.SearchCalls.WithLabelValues("error").Inc()
		return models.SearchResponse{}, fmt.Errorf("web search: %w", err)
	}
	telemetry.SearchCalls.WithLabelValues("ok").Inc()
	return resp, nil
}
