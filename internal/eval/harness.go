package eval

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/okozyrev/ragproof/internal/core/domain"
	"github.com/okozyrev/ragproof/internal/core/ports"
)

// Outcome is what a runner observed for one replayed query.
type Outcome struct {
	Answer           string
	Refused          bool
	RetrievedSources []string
	// CheckHit marks whether RetrievedSources is trustworthy enough to
	// grade source overlap against.
	CheckHit bool
}

// CaseRunner executes one query against a target pipeline.
type CaseRunner interface {
	RunCase(ctx context.Context, query string) (Outcome, error)
}

// agentPipeline is the part of the orchestrator the harness needs.
type agentPipeline interface {
	Run(ctx context.Context, query string) (string, error)
}

// AgentRunner replays cases through the in-process agent. Only the
// rendered chat message is observable, so refusal is detected by phrase
// matching and source overlap is not graded.
type AgentRunner struct {
	agent agentPipeline
}

func NewAgentRunner(agent agentPipeline) *AgentRunner {
	return &AgentRunner{agent: agent}
}

func (r *AgentRunner) RunCase(ctx context.Context, query string) (Outcome, error) {
	answer, err := r.agent.Run(ctx, query)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Answer:  answer,
		Refused: domain.LooksLikeRefusal(answer),
	}, nil
}

// queryAPI is the part of the HTTP client the harness needs.
type queryAPI interface {
	Query(ctx context.Context, query string) (*domain.QueryResponse, error)
}

// APIRunner replays cases over the query endpoint, where the structured
// refusal flag and the retrieved sources are available.
type APIRunner struct {
	client queryAPI
}

func NewAPIRunner(client queryAPI) *APIRunner {
	return &APIRunner{client: client}
}

func (r *APIRunner) RunCase(ctx context.Context, query string) (Outcome, error) {
	resp, err := r.client.Query(ctx, query)
	if err != nil {
		return Outcome{}, err
	}
	sources := make([]string, 0, len(resp.Sources))
	for _, s := range resp.Sources {
		sources = append(sources, s.Source)
	}
	return Outcome{
		Answer:           resp.Answer,
		Refused:          resp.Refused,
		RetrievedSources: sources,
		CheckHit:         true,
	}, nil
}

// Summary aggregates one harness run.
type Summary struct {
	Total              int
	Passes             int
	CorrectRefusals    int
	UnexpectedRefusals int
	RetrievalHits      int
	HitChecked         int
	MeanLatencySec     float64
	MedianLatencySec   float64
}

// Harness drives a full run: every case is executed, classified, printed,
// and journaled; runner failures mark the case failed and the run
// continues.
type Harness struct {
	runner  CaseRunner
	journal ports.EvalJournal
	out     io.Writer
}

func NewHarness(runner CaseRunner, journal ports.EvalJournal, out io.Writer) *Harness {
	if out == nil {
		out = io.Discard
	}
	return &Harness{runner: runner, journal: journal, out: out}
}

func (h *Harness) Run(ctx context.Context, cases []domain.EvalCase) (*Summary, error) {
	summary := &Summary{Total: len(cases)}
	latencies := make([]float64, 0, len(cases))

	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)

	for _, c := range cases {
		fmt.Fprintf(h.out, "--- %s (%s) ---\n", c.ID, c.Category)

		start := time.Now()
		outcome, err := h.runner.RunCase(ctx, c.Query)
		latency := time.Since(start).Seconds()
		latencies = append(latencies, latency)

		var verdict Verdict
		if err != nil {
			outcome = Outcome{Answer: fmt.Sprintf("Agent error: %v", err)}
			verdict = Verdict{Passed: false, Detail: "runner error"}
		} else {
			verdict = Classify(c, outcome.Refused, outcome.RetrievedSources, outcome.CheckHit)
		}

		h.tally(summary, c, outcome, verdict)

		if verdict.Passed {
			pass.Fprintf(h.out, "✓ PASS")
		} else {
			fail.Fprintf(h.out, "✗ FAIL")
		}
		fmt.Fprintf(h.out, " [%s] refused=%v latency=%.2fs\n", verdict.Detail, outcome.Refused, latency)
		fmt.Fprintf(h.out, "  %s\n\n", firstLine(outcome.Answer))

		result := domain.EvalResult{
			Timestamp:        float64(time.Now().UnixNano()) / 1e9,
			EvalID:           c.ID,
			Query:            c.Query,
			Category:         c.Category,
			Answer:           outcome.Answer,
			MustRefuse:       c.MustRefuse,
			Refused:          outcome.Refused,
			Passed:           verdict.Passed,
			Hit:              verdict.Hit,
			ExpectedSources:  c.ExpectedSources,
			RetrievedSources: outcome.RetrievedSources,
			LatencySec:       latency,
		}
		if h.journal != nil {
			if err := h.journal.AppendResult(ctx, result); err != nil {
				return nil, fmt.Errorf("append eval result %s: %w", c.ID, err)
			}
		}
	}

	summary.MeanLatencySec = mean(latencies)
	summary.MedianLatencySec = median(latencies)
	h.printSummary(summary)
	return summary, nil
}

func (h *Harness) tally(summary *Summary, c domain.EvalCase, outcome Outcome, verdict Verdict) {
	if verdict.Passed {
		summary.Passes++
	}
	if c.MustRefuse && outcome.Refused {
		summary.CorrectRefusals++
	}
	if !c.MustRefuse && outcome.Refused {
		summary.UnexpectedRefusals++
	}
	if verdict.Hit != nil {
		summary.HitChecked++
		if *verdict.Hit {
			summary.RetrievalHits++
		}
	}
}

func (h *Harness) printSummary(s *Summary) {
	fmt.Fprintf(h.out, "=== Summary ===\n")
	fmt.Fprintf(h.out, "passed:              %d/%d\n", s.Passes, s.Total)
	fmt.Fprintf(h.out, "correct refusals:    %d\n", s.CorrectRefusals)
	fmt.Fprintf(h.out, "unexpected refusals: %d\n", s.UnexpectedRefusals)
	fmt.Fprintf(h.out, "retrieval hits:      %d/%d\n", s.RetrievalHits, s.HitChecked)
	fmt.Fprintf(h.out, "latency mean/median: %.2fs / %.2fs\n", s.MeanLatencySec, s.MedianLatencySec)
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
