package config

import "testing"

func TestLoadRetrievalDefaults(t *testing.T) {
	t.Setenv("RAG_TOP_K", "")
	t.Setenv("RAG_MAX_DISTANCE", "")
	t.Setenv("EVAL_TARGET", "")

	cfg := Load()
	if cfg.RAGTopK != 5 {
		t.Fatalf("expected default top k 5, got %d", cfg.RAGTopK)
	}
	if cfg.RAGMaxDistance != 1.05 {
		t.Fatalf("expected default max distance 1.05, got %v", cfg.RAGMaxDistance)
	}
	if cfg.EvalTarget != "agent" {
		t.Fatalf("expected default eval target agent, got %q", cfg.EvalTarget)
	}
	if cfg.ToolTimeoutSeconds != 20 || cfg.EvalTimeoutSeconds != 60 {
		t.Fatalf("unexpected timeout defaults: %d/%d", cfg.ToolTimeoutSeconds, cfg.EvalTimeoutSeconds)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("RAG_TOP_K", "8")
	t.Setenv("RAG_MAX_DISTANCE", "1.2")
	t.Setenv("EVAL_TARGET", "api")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")

	cfg := Load()
	if cfg.RAGTopK != 8 {
		t.Fatalf("expected top k 8, got %d", cfg.RAGTopK)
	}
	if cfg.RAGMaxDistance != 1.2 {
		t.Fatalf("expected max distance 1.2, got %v", cfg.RAGMaxDistance)
	}
	if cfg.EvalTarget != "api" {
		t.Fatalf("expected eval target api, got %q", cfg.EvalTarget)
	}
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit 2.5, got %v", cfg.APIRateLimitRPS)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("RAG_TOP_K", "five")
	t.Setenv("RAG_MAX_DISTANCE", "loose")

	cfg := Load()
	if cfg.RAGTopK != 5 || cfg.RAGMaxDistance != 1.05 {
		t.Fatalf("malformed values should fall back to defaults, got %d/%v", cfg.RAGTopK, cfg.RAGMaxDistance)
	}
}
