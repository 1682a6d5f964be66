package bootstrap

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/okozyrev/ragproof/internal/agent"
	"github.com/okozyrev/ragproof/internal/config"
	"github.com/okozyrev/ragproof/internal/core/usecase"
	"github.com/okozyrev/ragproof/internal/infrastructure/llm/ollama"
	"github.com/okozyrev/ragproof/internal/infrastructure/resilience"
	"github.com/okozyrev/ragproof/internal/infrastructure/vector/qdrant"
	"github.com/okozyrev/ragproof/internal/journal"
	"github.com/okozyrev/ragproof/internal/observability/metrics"
)

// App wires the singletons once at startup. Clients are shared read-only
// across requests; nothing here is mutated after New returns.
type App struct {
	Config config.Config

	QueryService *usecase.QueryService
	Orchestrator *agent.Orchestrator
	Metrics      *metrics.ServerMetrics
}

func New(cfg config.Config) (*App, error) {
	exec := resilience.NewExecutor(resilience.DefaultConfig())
	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, exec)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient)

	vectorIndex := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)

	queryLog, err := journal.NewQueryLog(filepath.Join(cfg.LogDir, cfg.QueryLogFile))
	if err != nil {
		return nil, fmt.Errorf("init query log: %w", err)
	}
	agentLog, err := journal.NewAgentLog(filepath.Join(cfg.LogDir, cfg.AgentLogFile))
	if err != nil {
		return nil, fmt.Errorf("init agent log: %w", err)
	}

	retriever := usecase.NewRetriever(embedder, vectorIndex, cfg.RAGMaxDistance)
	queryService := usecase.NewQueryService(retriever, generator, vectorIndex, queryLog, usecase.QueryConfig{
		TopK:        cfg.RAGTopK,
		MaxDistance: cfg.RAGMaxDistance,
		GenModel:    cfg.OllamaGenModel,
		EmbedModel:  cfg.OllamaEmbedModel,
	})

	planner := agent.NewLLMPlanner(generator)
	tool := agent.NewLocalTool(queryService, time.Duration(cfg.ToolTimeoutSeconds)*time.Second)
	orchestrator := agent.NewOrchestrator(planner, tool, agentLog)

	return &App{
		Config:       cfg,
		QueryService: queryService,
		Orchestrator: orchestrator,
		Metrics:      metrics.NewServerMetrics("rag-query-api"),
	}, nil
}
