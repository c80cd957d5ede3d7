package main

import (
	"go.uber.org/zap"

	"github.com/sotinhq/sotin/config"
	"github.com/sotinhq/sotin/internal/agent"
	"github.com/sotinhq/sotin/internal/telemetry"
	"github.com/sotinhq/sotin/memory"
	"github.com/sotinhq/sotin/memory/inmemory"
	"github.com/sotinhq/sotin/provider"
	"github.com/sotinhq/sotin/tools/websearch"
)

// app bundles the wired components a fully configured command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	agent   *agent.Agent
	turns   memory.ConversationStore
	answers memory.AnswerStore
}

// buildApp loads configuration and wires the complete pipeline. Commands
// that need both the model and search providers start here.
func buildApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := telemetry.NewLogger(cfg.General.LogLevel, cfg.General.LogFormat)
	if err != nil {
		return nil, err
	}

	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return nil, err
	}
	searcher, err := websearch.NewWebSearcher(websearch.Provider(cfg.Search.Provider), cfg.Search.APIKey)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		agent: agent.New(llm, searcher,
			agent.WithLogger(logger),
			agent.WithMaxSources(cfg.Search.MaxResults),
		),
		turns:   inmemory.NewTurns(cfg.Memory.MaxTurns),
		answers: inmemory.NewAnswers(cfg.Memory.MaxAnswers),
	}, nil
}
