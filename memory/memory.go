package memory

import (
	"encoding/json"
	"strings"

	"github.com/sotinhq/sotin/models"
)

// Key identifies one conversation.
type Key struct {
	UserID    string
	SessionID string
}

// ConversationStore keeps the rolling chat turns of each conversation.
// Implementations bound each conversation and evict the oldest turns first;
// concurrent appends for the same key must not lose or truncate turns.
type ConversationStore interface {
	// SaveTurn appends one turn in arrival order.
	SaveTurn(userID, sessionID, role, content string)
	// Recent returns the last n turns, oldest first. n <= 0 returns all
	// retained turns. The returned slice is the caller's to keep.
	Recent(userID, sessionID string, n int) []models.ChatTurn
}

// AnswerStore keeps prior structured answers of each conversation, consumed
// only as serialized JSON context for the language model.
type AnswerStore interface {
	Append(userID, sessionID string, answer models.StructuredAnswer)
	// History returns retained answers, oldest first. The returned slice is
	// the caller's to keep.
	History(userID, sessionID string) []models.StructuredAnswer
}

// BuildChatContext renders the last maxTurns turns plus the latest user
// message as a plain-text transcript for the router prompt.
func BuildChatContext(history []models.ChatTurn, latest string, maxTurns int) string {
	if maxTurns > 0 && len(history) > maxTurns {
		history = history[len(history)-maxTurns:]
	}
	var b strings.Builder
	for _, t := range history {
		label := "Assistant"
		if t.Role == models.RoleUser {
			label = "User"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(latest)
	return b.String()
}

// HistoryJSON serializes the most recent n answers as one compact JSON
// array. Returns the empty string when there is nothing to serialize or the
// answers cannot be marshalled.
func HistoryJSON(answers []models.StructuredAnswer, n int) string {
	if len(answers) == 0 {
		return ""
	}
	if n > 0 && len(answers) > n {
		answers = answers[len(answers)-n:]
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return ""
	}
	return string(raw)
}
