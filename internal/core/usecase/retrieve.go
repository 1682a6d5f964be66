package usecase

import (
	"context"
	"fmt"

	"github.com/okozyrev/ragproof/internal/core/domain"
	"github.com/okozyrev/ragproof/internal/core/ports"
)

// Retriever embeds the query, runs the top-k similarity search and keeps
// chunks at or under the distance threshold.
type Retriever struct {
	embedder    ports.Embedder
	index       ports.VectorIndex
	maxDistance float64
}

func NewRetriever(embedder ports.Embedder, index ports.VectorIndex, maxDistance float64) *Retriever {
	return &Retriever{
		embedder:    embedder,
		index:       index,
		maxDistance: maxDistance,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, k int) (domain.RetrievalResult, error) {
	if r.embedder == nil || r.index == nil {
		return nil, domain.WrapError(domain.ErrServiceNotReady, "retrieve", fmt.Errorf("embedding index not initialized"))
	}
	if k <= 0 {
		k = 5
	}

	queryVector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := r.index.Search(ctx, queryVector, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	// Threshold is inclusive; index order (ascending distance) is kept
	// and sources are not deduplicated.
	filtered := make(domain.RetrievalResult, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Distance <= r.maxDistance {
			filtered = append(filtered, chunk)
		}
	}
	return filtered, nil
}
