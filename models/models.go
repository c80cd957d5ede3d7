package models

// Roles for chat turns and prompt messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Engine labels recorded in StructuredAnswer meta. They identify which path
// produced the answer text.
const (
	EngineWebSearch  = "llm+tavily"
	EngineDirect     = "llm_only"
	EngineSearchOnly = "tavily"
	EngineError      = "error"
)

// ChatTurn is one message in a conversation, stored in arrival order.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message is one entry in a model prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Citation points at one web source backing an answer.
type Citation struct {
	Title    string  `json:"title,omitempty"`
	URL      string  `json:"url"`
	Snippet  string  `json:"snippet,omitempty"`
	Score    float64 `json:"score,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

// StructuredAnswer is the response object produced once per chat request.
// Meta holds scalar metadata such as the engine label and source count.
type StructuredAnswer struct {
	Query       string         `json:"query"`
	FinalAnswer string         `json:"final_answer"`
	Citations   []Citation     `json:"citations"`
	Meta        map[string]any `json:"meta"`
}

// RawSearchResult is one record as returned by a search provider, consumed
// once by normalization and discarded.
type RawSearchResult struct {
	URL        string  `json:"url"`
	Title      string  `json:"title,omitempty"`
	Content    string  `json:"content,omitempty"`
	RawContent string  `json:"raw_content,omitempty"`
	Snippet    string  `json:"snippet,omitempty"`
	Score      float64 `json:"score,omitempty"`
	Thumbnail  string  `json:"thumbnail,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
}

// SearchResponse is the envelope a search provider returns: the raw results
// plus the engine's own quick answer when one was requested.
type SearchResponse struct {
	Results []RawSearchResult `json:"results"`
	Answer  string            `json:"answer,omitempty"`
}

// SearchOptions are the request knobs shared by all search providers.
type SearchOptions struct {
	MaxResults        int
	IncludeAnswer     bool
	IncludeRawContent bool
}

// NormalizedPassage is a deduplicated, cleaned search snippet ready to cite.
// Within one normalization batch no two passages share a URL.
type NormalizedPassage struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
	ImageURL string `json:"image_url,omitempty"`
}
