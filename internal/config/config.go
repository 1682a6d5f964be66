package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string
	LogLevel string

	OllamaURL        string
	OllamaGenModel   string
	OllamaEmbedModel string

	QdrantURL        string
	QdrantCollection string

	RAGTopK        int
	RAGMaxDistance float64

	LogDir       string
	QueryLogFile string
	AgentLogFile string

	RAGAPIURL          string
	ToolTimeoutSeconds int
	EvalTimeoutSeconds int

	EvalTarget   string
	EvalCaseFile string
	EvalLogFile  string

	APIRateLimitRPS   float64
	APIRateLimitBurst int
}

func Load() Config {
	// Overrides may live in a local .env; real environment variables win.
	_ = godotenv.Load()

	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		OllamaURL:        mustEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaGenModel:   mustEnv("OLLAMA_GEN_MODEL", "llama3.1:8b"),
		OllamaEmbedModel: mustEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),

		QdrantURL:        mustEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: mustEnv("QDRANT_COLLECTION", "doc_chunks"),

		RAGTopK:        mustEnvInt("RAG_TOP_K", 5),
		RAGMaxDistance: mustEnvFloat("RAG_MAX_DISTANCE", 1.05),

		LogDir:       mustEnv("LOG_DIR", "./logs"),
		QueryLogFile: mustEnv("QUERY_LOG_FILE", "queries.jsonl"),
		AgentLogFile: mustEnv("AGENT_LOG_FILE", "agent_runs.jsonl"),

		RAGAPIURL:          mustEnv("RAG_API_URL", "http://127.0.0.1:8080"),
		ToolTimeoutSeconds: mustEnvInt("TOOL_TIMEOUT_SECONDS", 20),
		EvalTimeoutSeconds: mustEnvInt("EVAL_TIMEOUT_SECONDS", 60),

		EvalTarget:   mustEnv("EVAL_TARGET", "agent"),
		EvalCaseFile: mustEnv("EVAL_CASE_FILE", "./evals/eval_queries_v1.json"),
		EvalLogFile:  mustEnv("EVAL_LOG_FILE", "./evals/eval_results_v1.jsonl"),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 10),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 20),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
