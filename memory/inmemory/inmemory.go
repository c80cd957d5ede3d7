package inmemory

import (
	"sync"

	"github.com/sotinhq/sotin/memory"
	"github.com/sotinhq/sotin/models"
)

// Turns is a bounded in-process store of chat turns keyed by conversation.
// Oldest turns are evicted first once a conversation exceeds maxTurns.
type Turns struct {
	mu       sync.Mutex
	maxTurns int
	store    map[memory.Key][]models.ChatTurn
}

// NewTurns creates a conversation store retaining at most maxTurns turns
// per conversation.
func NewTurns(maxTurns int) *Turns {
	if maxTurns <= 0 {
		maxTurns = 40
	}
	return &Turns{maxTurns: maxTurns, store: make(map[memory.Key][]models.ChatTurn)}
}

func (s *Turns) SaveTurn(userID, sessionID, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memory.Key{UserID: userID, SessionID: sessionID}
	convo := append(s.store[key], models.ChatTurn{Role: role, Content: content})
	if len(convo) > s.maxTurns {
		convo = append([]models.ChatTurn(nil), convo[len(convo)-s.maxTurns:]...)
	}
	s.store[key] = convo
}

func (s *Turns) Recent(userID, sessionID string, n int) []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	convo := s.store[memory.Key{UserID: userID, SessionID: sessionID}]
	if n > 0 && len(convo) > n {
		convo = convo[len(convo)-n:]
	}
	out := make([]models.ChatTurn, len(convo))
	copy(out, convo)
	return out
}

// Answers is a bounded in-process store of structured answers keyed by
// conversation, FIFO-evicted past maxItems.
type Answers struct {
	mu       sync.Mutex
	maxItems int
	store    map[memory.Key][]models.StructuredAnswer
}

// NewAnswers creates an answer store retaining at most maxItems answers per
// conversation.
func NewAnswers(maxItems int) *Answers {
	if maxItems <= 0 {
		maxItems = 20
	}
	return &Answers{maxItems: maxItems, store: make(map[memory.Key][]models.StructuredAnswer)}
}

func (s *Answers) Append(userID, sessionID string, answer models.StructuredAnswer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memory.Key{UserID: userID, SessionID: sessionID}
	items := append(s.store[key], answer)
	if len(items) > s.maxItems {
		items = append([]models.StructuredAnswer(nil), items[len(items)-s.maxItems:]...)
	}
	s.store[key] = items
}

func (s *Answers) History(userID, sessionID string) []models.StructuredAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.store[memory.Key{UserID: userID, SessionID: sessionID}]
	out := make([]models.StructuredAnswer, len(items))
	copy(out, items)
	return out
}
