package telemetry

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger from level and format settings.
// Format "json" selects production encoding, anything else the development
// console encoding.
func NewLogger(level, format string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

var (
	// ChatRequests counts chat requests by the engine that answered them.
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sotin_chat_requests_total",
			Help: "Chat requests processed, labelled by answering engine.",
		},
		[]string{"engine"},
	)

	// PipelineDuration tracks end-to-end pipeline latency.
	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "sotin_pipeline_duration_seconds",
			Help: "Duration of one pipeline run in seconds.",
		},
		[]string{"pipeline"},
	)

	// SearchCalls counts web search calls by provider outcome.
	SearchCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sotin_search_calls_total",
			Help: "Web search calls issued, labelled by outcome.",
		},
		[]string{"outcome"},
	)

	// LLMCalls counts language-model calls by pipeline stage and outcome.
	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sotin_llm_calls_total",
			Help: "Language model calls issued, labelled by stage and outcome.",
		},
		[]string{"stage", "outcome"},
	)
)
