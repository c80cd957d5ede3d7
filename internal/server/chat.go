package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sotinhq/sotin/internal/agent"
	"github.com/sotinhq/sotin/internal/telemetry"
	"github.com/sotinhq/sotin/memory"
	"github.com/sotinhq/sotin/models"
)

// Pipeline is the slice of the agent the chat endpoint depends on.
type Pipeline interface {
	Run(ctx context.Context, req agent.Request) (models.StructuredAnswer, error)
}

// ChatHandler serves the conversational endpoint. Every accepted request
// updates the per-(user, session) stores, whether or not the pipeline
// succeeds.
type ChatHandler struct {
	Agent        Pipeline
	Turns        memory.ConversationStore
	Answers      memory.AnswerStore
	ContextTurns int
	HistoryItems int
	Logger       *zap.Logger
}

// ChatRequest is the POST /chat payload.
type ChatRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (h *ChatHandler) Register(e *echo.Echo) {
	e.POST("/chat", h.chat)
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.UserID == "" || req.SessionID == "" || strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id, session_id and message required")
	}

	// The user turn is recorded before the pipeline runs so a failed run
	// still leaves the question in the transcript.
	h.Turns.SaveTurn(req.UserID, req.SessionID, models.RoleUser, req.Message)

	recent := h.Turns.Recent(req.UserID, req.SessionID, h.ContextTurns)
	promptContext := memory.BuildChatContext(recent, req.Message, h.ContextTurns)
	historyJSON := memory.HistoryJSON(h.Answers.History(req.UserID, req.SessionID), h.HistoryItems)

	started := time.Now()
	answer, err := h.Agent.Run(c.Request().Context(), agent.Request{
		UserID:        req.UserID,
		SessionID:     req.SessionID,
		Message:       req.Message,
		PromptContext: promptContext,
		HistoryJSON:   historyJSON,
	})
	if err != nil {
		h.Logger.Error("pipeline failed",
			zap.String("session_id", req.SessionID),
			zap.Error(err),
		)
		answer = degradedAnswer(req.Message, err)
	}

	engine, _ := answer.Meta["engine"].(string)
	telemetry.ChatRequests.WithLabelValues(engine).Inc()
	h.Logger.Debug("chat served",
		zap.String("engine", engine),
		zap.Duration("took", time.Since(started)),
	)

	h.Answers.Append(req.UserID, req.SessionID, answer)
	h.Turns.SaveTurn(req.UserID, req.SessionID, models.RoleAssistant, answer.FinalAnswer)

	return c.JSON(http.StatusOK, answer)
}

// degradedAnswer keeps the response shape uniform when the pipeline errors:
// clients get status 200 with the failure recorded in meta.
func degradedAnswer(query string, err error) models.StructuredAnswer {
	return models.StructuredAnswer{
		Query:       query,
		FinalAnswer: "Sorry, something went wrong while processing that request.",
		Citations:   []models.Citation{},
		Meta: map[string]any{
			"engine": models.EngineError,
			"error":  err.Error(),
		},
	}
}
