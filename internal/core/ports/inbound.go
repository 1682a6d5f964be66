package ports

import (
	"context"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

// ChunkRetriever issues the top-k similarity query and applies the
// maximum-distance cutoff.
type ChunkRetriever interface {
	Retrieve(ctx context.Context, query string, k int) (domain.RetrievalResult, error)
}

// QueryAnswering is the inbound contract of the query service.
type QueryAnswering interface {
	Handle(ctx context.Context, query string) (*domain.QueryResponse, error)
	Health(ctx context.Context) (*domain.HealthStatus, error)
}

// QueryTool is the calling contract the agent uses to reach the query
// service. Invoke never returns an error: failures are folded into the
// result with reason tool_error.
type QueryTool interface {
	Invoke(ctx context.Context, query string) domain.ToolResult
}
