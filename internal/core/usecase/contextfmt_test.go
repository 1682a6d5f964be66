package usecase

import (
	"strings"
	"testing"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

func TestFormatContextNumbersAndOrder(t *testing.T) {
	result := domain.RetrievalResult{
		{Source: "langgraph_intro.md", Text: "LangGraph builds stateful graphs.", Distance: 0.512},
		{Source: "rag_notes.md", Text: "Retrieval grounds generation.", Distance: 0.9},
	}

	got := FormatContext(result)
	want := "[Chunk 1 | Source: langgraph_intro.md | distance=0.512]\n" +
		"LangGraph builds stateful graphs.\n\n" +
		"[Chunk 2 | Source: rag_notes.md | distance=0.900]\n" +
		"Retrieval grounds generation."
	if got != want {
		t.Fatalf("unexpected context block:\n%s", got)
	}
}

func TestFormatContextReducesSourceToBaseFilename(t *testing.T) {
	got := FormatContext(domain.RetrievalResult{
		{Source: "docs/kb/langgraph_intro.md", Text: "text", Distance: 0.2},
	})
	if !strings.Contains(got, "Source: langgraph_intro.md |") {
		t.Fatalf("context label must use the base filename:\n%s", got)
	}
	if strings.Contains(got, "docs/kb") {
		t.Fatalf("ingestion path must not leak into the context:\n%s", got)
	}
}

func TestFormatContextEmptyInput(t *testing.T) {
	if got := FormatContext(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

// The prompt instruction and the self-refusal detector must share the
// exact refusal sentence; any drift silently breaks refusal detection.
func TestBuildPromptEmbedsCanonicalRefusalSentence(t *testing.T) {
	prompt := BuildPrompt("what is a graph?", "[Chunk 1 | ...]")
	if !strings.Contains(prompt, "\""+domain.RefusalSentence+"\"") {
		t.Fatalf("prompt does not embed the canonical refusal sentence:\n%s", prompt)
	}
	if !strings.Contains(prompt, "ONLY the provided context") {
		t.Fatalf("prompt lost the grounding instruction:\n%s", prompt)
	}
	if !strings.Contains(prompt, "what is a graph?") {
		t.Fatalf("prompt lost the question:\n%s", prompt)
	}
}
