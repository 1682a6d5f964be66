package usecase

import (
	"fmt"
	"strings"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

// FormatContext renders the surviving chunks into the single ordered
// context block fed to the generation prompt. Pure; empty input yields "".
func FormatContext(result domain.RetrievalResult) string {
	parts := make([]string, 0, len(result))
	for i, chunk := range result {
		parts = append(parts, fmt.Sprintf(
			"[Chunk %d | Source: %s | distance=%.3f]\n%s",
			i+1,
			domain.SourceName(chunk.Source),
			chunk.Distance,
			chunk.Text,
		))
	}
	return strings.Join(parts, "\n\n")
}

// BuildPrompt assembles the fixed generation instruction. The refusal
// sentence embedded here and the one the detector compares against are
// the same constant; a test guards against drift.
func BuildPrompt(query, contextBlock string) string {
	return fmt.Sprintf(`You are a careful RAG assistant.

Answer the user's question using ONLY the provided context.

If the context is insufficient, say:
"%s"

Question:
%s

Context:
%s

Answer:`, domain.RefusalSentence, query, contextBlock)
}
