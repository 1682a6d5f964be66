package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okozyrev/ragproof/internal/core/ports"
)

// ToolCall is one requested invocation of the query tool.
type ToolCall struct {
	Query string `json:"query"`
}

// Planner decides which tool invocations the user message requires.
type Planner interface {
	Plan(ctx context.Context, query string) ([]ToolCall, error)
}

// LLMPlanner asks the generation model, in JSON mode, for the tool calls.
// The instruction mandates the query tool for every domain question and
// forbids answering from general knowledge.
type LLMPlanner struct {
	generator ports.Generator
}

func NewLLMPlanner(generator ports.Generator) *LLMPlanner {
	return &LLMPlanner{generator: generator}
}

func (p *LLMPlanner) Plan(ctx context.Context, query string) ([]ToolCall, error) {
	raw, err := p.generator.GenerateJSON(ctx, buildPlannerPrompt(query))
	if err != nil {
		return nil, fmt.Errorf("planner generate: %w", err)
	}
	return parseToolCalls(raw)
}

func buildPlannerPrompt(query string) string {
	return fmt.Sprintf(`You are a precise AI Engineering Assistant focused on LangChain and RAG systems.
For any question in this domain, you MUST call the rag_query tool.
Never answer from general knowledge.
Respect the tool's refusal logic exactly.

Return ONLY a valid JSON object with this schema:
{"tool_calls":[{"query":"..."}]}

User message:
%s
`, query)
}

func parseToolCalls(raw string) ([]ToolCall, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty planner response")
	}
	var plan struct {
		ToolCalls []ToolCall `json:"tool_calls"`
	}
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("unmarshal planner json: %w", err)
	}
	calls := make([]ToolCall, 0, len(plan.ToolCalls))
	for _, call := range plan.ToolCalls {
		if q := strings.TrimSpace(call.Query); q != "" {
			calls = append(calls, ToolCall{Query: q})
		}
	}
	return calls, nil
}
