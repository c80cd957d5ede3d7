package memory

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/sotinhq/sotin/models"
)

func TestBuildChatContextWindow(t *testing.T) {
	t.Parallel()
	var history []models.ChatTurn
	for i := 1; i <= 14; i++ {
		role := models.RoleUser
		if i%2 == 0 {
			role = models.RoleAssistant
		}
		history = append(history, models.ChatTurn{Role: role, Content: fmt.Sprintf("m%d", i)})
	}

	got := BuildChatContext(history, "latest", 12)

	var lines []string
	for i := 3; i <= 14; i++ {
		label := "User"
		if i%2 == 0 {
			label = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: m%d", label, i))
	}
	lines = append(lines, "User: latest")
	want := strings.Join(lines, "\n")

	if got != want {
		t.Fatalf("BuildChatContext() = %q, want %q", got, want)
	}
}

func TestBuildChatContextEmptyHistory(t *testing.T) {
	t.Parallel()
	if got := BuildChatContext(nil, "hi", 12); got != "User: hi" {
		t.Fatalf("BuildChatContext() = %q, want %q", got, "User: hi")
	}
}

func TestHistoryJSONKeepsLastN(t *testing.T) {
	t.Parallel()
	var answers []models.StructuredAnswer
	for i := 1; i <= 12; i++ {
		answers = append(answers, models.StructuredAnswer{Query: fmt.Sprintf("q%d", i)})
	}

	raw := HistoryJSON(answers, 10)
	if raw == "" {
		t.Fatalf("expected serialized history")
	}

	var decoded []models.StructuredAnswer
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 10 {
		t.Fatalf("expected 10 answers, got %d", len(decoded))
	}
	if decoded[0].Query != "q3" || decoded[9].Query != "q12" {
		t.Fatalf("unexpected window: first %q last %q", decoded[0].Query, decoded[9].Query)
	}
}

func TestHistoryJSONEmpty(t *testing.T) {
	t.Parallel()
	if got := HistoryJSON(nil, 10); got != "" {
		t.Fatalf("HistoryJSON(nil) = %q, want empty", got)
	}
}
