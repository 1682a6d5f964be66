package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okozyrev/ragproof/internal/core/domain"
	"github.com/okozyrev/ragproof/internal/core/ports"
)

// QueryConfig carries the retrieval configuration and model identifiers
// recorded with every query-log entry.
type QueryConfig struct {
	TopK        int
	MaxDistance float64
	GenModel    string
	EmbedModel  string
}

// QueryService runs the retrieval-and-refusal-gated generation pipeline.
// Constructed once at startup; all per-request state is local to Handle.
type QueryService struct {
	retriever ports.ChunkRetriever
	generator ports.Generator
	index     ports.VectorIndex
	journal   ports.QueryJournal
	cfg       QueryConfig
}

func NewQueryService(
	retriever ports.ChunkRetriever,
	generator ports.Generator,
	index ports.VectorIndex,
	journal ports.QueryJournal,
	cfg QueryConfig,
) *QueryService {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	return &QueryService{
		retriever: retriever,
		generator: generator,
		index:     index,
		journal:   journal,
		cfg:       cfg,
	}
}

func (s *QueryService) Handle(ctx context.Context, query string) (*domain.QueryResponse, error) {
	if s.retriever == nil || s.generator == nil {
		return nil, domain.WrapError(domain.ErrServiceNotReady, "handle query", fmt.Errorf("pipeline not initialized"))
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "handle query", fmt.Errorf("query must not be empty"))
	}

	requestID := uuid.NewString()
	start := time.Now()

	result, err := s.retriever.Retrieve(ctx, q, s.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	// Evidence refusal: nothing survived the cutoff, so generation is
	// skipped entirely.
	if len(result) == 0 {
		decision := domain.EvidenceRefusal()
		response := &domain.QueryResponse{
			Query:         q,
			Refused:       true,
			Answer:        domain.RefusalSentence,
			Sources:       []domain.SourceHit{},
			RefusalReason: decision.Reason,
		}
		s.logQuery(ctx, requestID, q, decision, nil, time.Since(start))
		return response, nil
	}

	prompt := BuildPrompt(q, FormatContext(result))
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	decision := domain.DetectSelfRefusal(answer)
	sources := domain.BuildSourceHits(result)

	response := &domain.QueryResponse{
		Query:         q,
		Refused:       decision.Refused,
		Answer:        answer,
		Sources:       sources,
		RefusalReason: decision.Reason,
	}
	s.logQuery(ctx, requestID, q, decision, result, time.Since(start))
	return response, nil
}

// Health reports whether the pipeline can take traffic, and the current
// size of the chunk collection when it can.
func (s *QueryService) Health(ctx context.Context) (*domain.HealthStatus, error) {
	if s.retriever == nil || s.generator == nil || s.index == nil {
		return nil, domain.WrapError(domain.ErrServiceNotReady, "health", fmt.Errorf("pipeline not initialized"))
	}
	count, err := s.index.Count(ctx)
	if err != nil {
		return &domain.HealthStatus{OK: false}, nil
	}
	return &domain.HealthStatus{OK: true, CollectionCount: count}, nil
}

func (s *QueryService) logQuery(
	ctx context.Context,
	requestID, query string,
	decision domain.RefusalDecision,
	result domain.RetrievalResult,
	latency time.Duration,
) {
	if s.journal == nil {
		return
	}

	sources := make([]domain.SourceRef, 0, len(result))
	for _, chunk := range result {
		sources = append(sources, domain.SourceRef{Source: domain.SourceName(chunk.Source), Distance: chunk.Distance})
	}

	record := domain.QueryRecord{
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
		RequestID:     requestID,
		Query:         query,
		Refused:       decision.Refused,
		RefusalReason: decision.Reason,
		Sources:       sources,
		K:             s.cfg.TopK,
		MaxDistance:   s.cfg.MaxDistance,
		LatencySec:    latency.Seconds(),
		GenModel:      s.cfg.GenModel,
		EmbedModel:    s.cfg.EmbedModel,
	}
	if err := s.journal.AppendQuery(ctx, record); err != nil {
		// A failed log write must not fail the request.
		slog.Warn("query_journal_append_failed", "request_id", requestID, "error", err)
	}
}
