package domain

import (
	"path/filepath"
	"strings"
)

// Chunk is one unit of retrieved evidence. Distance is the semantic
// distance between the query and the chunk; lower means more similar.
type Chunk struct {
	Source   string  `json:"source"`
	Text     string  `json:"text"`
	Distance float64 `json:"distance"`
}

// RetrievalResult holds the chunks that survived the distance cutoff,
// ordered by ascending distance.
type RetrievalResult []Chunk

func (r RetrievalResult) Sources() []string {
	out := make([]string, 0, len(r))
	for _, chunk := range r {
		out = append(out, chunk.Source)
	}
	return out
}

const snippetMaxRunes = 300

// SourceName reduces an index payload source to its base filename. Index
// payloads may carry the ingestion path; user-facing surfaces only show
// the document name.
func SourceName(source string) string {
	if source == "" {
		return ""
	}
	return filepath.Base(source)
}

type SourceHit struct {
	Source   string  `json:"source"`
	Distance float64 `json:"distance"`
	Snippet  string  `json:"snippet"`
}

// BuildSourceHits maps every retrieved chunk to a source entry with the
// base filename and a snippet capped at 300 characters, newlines
// collapsed to spaces.
func BuildSourceHits(result RetrievalResult) []SourceHit {
	hits := make([]SourceHit, 0, len(result))
	for _, chunk := range result {
		snippet := chunk.Text
		if runes := []rune(snippet); len(runes) > snippetMaxRunes {
			snippet = string(runes[:snippetMaxRunes])
		}
		snippet = strings.ReplaceAll(snippet, "\n", " ")
		hits = append(hits, SourceHit{
			Source:   SourceName(chunk.Source),
			Distance: chunk.Distance,
			Snippet:  snippet,
		})
	}
	return hits
}

type QueryResponse struct {
	Query         string        `json:"query"`
	Refused       bool          `json:"refused"`
	Answer        string        `json:"answer"`
	Sources       []SourceHit   `json:"sources"`
	RefusalReason RefusalReason `json:"refusal_reason,omitempty"`
}

type HealthStatus struct {
	OK              bool `json:"ok"`
	CollectionCount int  `json:"collection_count"`
}
