package agent

import (
	"fmt"
	"strings"

	"github.com/sotinhq/sotin/models"
)

// SearchSentinel is the exact token the router model must emit to defer to
// web search instead of answering directly. The match is exact after
// trimming; the contract assumes the model never emits this string inside a
// legitimate answer.
const SearchSentinel = "CALL_TAVILY"

const (
	routerMaxTokens     = 600
	summarizerMaxTokens = 900

	// historyClipChars bounds the JSON history inlined into prompts.
	historyClipChars = 2000
)

const routerSystemTemplate = `You are a research assistant. You can answer from your knowledge, and if you are not confident or the question is clearly about current events, you must respond with exactly the token %[1]s.

You also receive a compact JSON history of previous answers. Use it to answer follow-ups when possible to avoid new web searches.

JSON_HISTORY:
%[2]s
END_JSON_HISTORY

If the question is clearly about *today's* news, dates, very recent events, or if you lack enough info, reply with only %[1]s.`

const summarizerSystemTemplate = `You are a precise research summarizer. You must ONLY use the Tavily documents and factual info.
If something is not in the sources, clearly say you couldn't find it.

Answer style rules:
- If the question asks for 'latest updates', 'what happened', 'give me the details', or otherwise describes an incident or ongoing case, write 2–4 short paragraphs in a clear, story-like style. After that, you may add a short bullet list with the most important facts or a brief timeline. No markdown headings.
- If the question is a direct factual query like 'who is the doctor arrested', 'who is X', 'what is', 'when was', respond with one concise sentence plus 2–5 bullet points highlighting the key facts. Keep it tight, no fluff.
- Never use markdown headings such as '#', '##', '###'. Bullets with '-' or '•' are fine.

You are also given a compact JSON history of previous answers; use it for context and consistency, but do not invent facts beyond the Tavily sources.

JSON_HISTORY:
%s
END_JSON_HISTORY`

const summarizerUserTemplate = `User question: %s

Tavily suggested answer (may be rough):
%s

DOCUMENT CORPUS:
%s

Now write the final answer following the style rules above.`

func routerSystemPrompt(jsonHistory string) string {
	return fmt.Sprintf(routerSystemTemplate, SearchSentinel, clipHistory(jsonHistory))
}

func summarizerSystemPrompt(jsonHistory string) string {
	return fmt.Sprintf(summarizerSystemTemplate, clipHistory(jsonHistory))
}

func summarizerUserPrompt(query, engineAnswer string, passages []models.NormalizedPassage) string {
	return fmt.Sprintf(summarizerUserTemplate, query, engineAnswer, buildCorpus(passages))
}

// buildCorpus renders passages as a numbered document list for grounding.
func buildCorpus(passages []models.NormalizedPassage) string {
	parts := make([]string, 0, len(passages))
	for i, p := range passages {
		parts = append(parts, fmt.Sprintf("[%d] %s\nURL: %s\n%s", i+1, p.Title, p.URL, p.Snippet))
	}
	return strings.Join(parts, "\n\n")
}

// clipHistory caps the serialized history at historyClipChars characters.
func clipHistory(s string) string {
	if len(s) <= historyClipChars {
		return s
	}
	r := []rune(s)
	if len(r) <= historyClipChars {
		return s
	}
	return string(r[:historyClipChars])
}
