package ports

import (
	"context"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

// Embedder builds a vector for query text.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex is the read-only, pre-built nearest-neighbor index over
// content chunks. Search returns up to limit chunks by ascending distance.
type VectorIndex interface {
	Search(ctx context.Context, queryVector []float32, limit int) ([]domain.Chunk, error)
	Count(ctx context.Context) (int, error)
}

// Generator invokes the external text-generation model. Generation is
// deterministic (zero sampling temperature) given identical input and
// model version.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// QueryJournal appends one immutable record per handled query.
type QueryJournal interface {
	AppendQuery(ctx context.Context, record domain.QueryRecord) error
}

// AgentJournal appends one immutable record per agent run.
type AgentJournal interface {
	AppendRun(ctx context.Context, record domain.AgentRunRecord) error
}

// EvalJournal appends one immutable record per evaluated case.
type EvalJournal interface {
	AppendResult(ctx context.Context, record domain.EvalResult) error
}
