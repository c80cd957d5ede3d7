package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sotinhq/sotin/internal/helpers"
	"github.com/sotinhq/sotin/memory"
	"github.com/sotinhq/sotin/models"
)

// TranscriptHandler exports a session's conversation as a markdown document.
type TranscriptHandler struct {
	Turns   memory.ConversationStore
	Answers memory.AnswerStore
}

func (h *TranscriptHandler) Register(e *echo.Echo) {
	e.GET("/sessions/:session_id/transcript", h.transcript)
}

func (h *TranscriptHandler) transcript(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id required")
	}
	sessionID := c.Param("session_id")
	doc := BuildTranscript(h.Turns.Recent(userID, sessionID, 0), h.Answers.History(userID, sessionID))
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc))
}

// BuildTranscript renders retained turns as markdown. Assistant turns are
// matched against stored answers by answer text so their citations can be
// listed; turns whose answer was evicted render without sources.
func BuildTranscript(turns []models.ChatTurn, answers []models.StructuredAnswer) string {
	lines := []string{"# SOTIN — Chat Transcript", ""}

	next := 0
	for _, turn := range turns {
		who := "**Assistant**"
		if turn.Role == models.RoleUser {
			who = "**User**"
		}
		lines = append(lines, who+":")
		lines = append(lines, turn.Content)

		if turn.Role == models.RoleAssistant {
			if idx := matchAnswer(answers, next, turn.Content); idx >= 0 {
				next = idx + 1
				if cs := answers[idx].Citations; len(cs) > 0 {
					lines = append(lines, "")
					lines = append(lines, "  - **Sources:**")
					for _, item := range helpers.FormatCitations(cs) {
						lines = append(lines, "    - "+item)
					}
				}
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// matchAnswer scans forward so repeated identical answers pair up with
// distinct turns.
func matchAnswer(answers []models.StructuredAnswer, from int, text string) int {
	for i := from; i < len(answers); i++ {
		if answers[i].FinalAnswer == text {
			return i
		}
	}
	return -1
}
