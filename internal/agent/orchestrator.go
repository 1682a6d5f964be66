package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/okozyrev/ragproof/internal/core/domain"
	"github.com/okozyrev/ragproof/internal/core/ports"
)

const fallbackMessage = "I cannot answer this query."

// Orchestrator is the fixed two-state pipeline: the agent state plans
// tool calls, the tool state executes them and renders the final chat
// message. There is no edge back to the agent state; the pipeline cannot
// re-query or refine based on tool output.
type Orchestrator struct {
	planner Planner
	tool    ports.QueryTool
	journal ports.AgentJournal
}

func NewOrchestrator(planner Planner, tool ports.QueryTool, journal ports.AgentJournal) *Orchestrator {
	return &Orchestrator{
		planner: planner,
		tool:    tool,
		journal: journal,
	}
}

// Run executes one pass over the pipeline and returns the terminal chat
// message. It is always non-empty.
func (o *Orchestrator) Run(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "agent run", fmt.Errorf("query must not be empty"))
	}

	start := time.Now()

	// State agent: plan the tool calls. A planner failure degrades to
	// the forced single call with the raw user message; forced-tool
	// semantics win over planner fidelity.
	calls, err := o.planner.Plan(ctx, query)
	if err != nil {
		slog.Warn("agent_planner_degraded", "error", err)
		calls = []ToolCall{{Query: query}}
	}

	// State tool: no requested invocation terminates with the fixed
	// fallback; otherwise exactly one invocation runs, the first planned
	// call. Extra calls in the plan are ignored.
	if len(calls) == 0 {
		o.logRun(ctx, query, fallbackMessage, false, false, time.Since(start))
		return fallbackMessage, nil
	}

	result := o.tool.Invoke(ctx, calls[0].Query)
	message := renderToolMessage(result)
	toolError := result.RefusalReason == domain.RefusalToolError

	o.logRun(ctx, query, message, result.Refused, toolError, time.Since(start))
	return message, nil
}

// renderToolMessage converts a tool result into the chat message body:
// refusals carry an explicit reason annotation, answers stand alone.
func renderToolMessage(result domain.ToolResult) string {
	answer := result.Answer
	if strings.TrimSpace(answer) == "" {
		answer = "No answer returned."
	}
	if result.Refused {
		reason := string(result.RefusalReason)
		if reason == "" {
			reason = "unknown"
		}
		return fmt.Sprintf("%s\n\n(Refusal reason: %s)", answer, reason)
	}
	return answer
}

func (o *Orchestrator) logRun(ctx context.Context, query, answer string, refused, errored bool, latency time.Duration) {
	if o.journal == nil {
		return
	}
	record := domain.AgentRunRecord{
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Query:      query,
		Answer:     answer,
		Refused:    refused,
		Error:      errored,
		LatencySec: latency.Seconds(),
	}
	if err := o.journal.AppendRun(ctx, record); err != nil {
		slog.Warn("agent_journal_append_failed", "error", err)
	}
}
