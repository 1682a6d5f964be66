package eval

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

type runnerFake struct {
	outcomes map[string]Outcome
	errs     map[string]error
}

func (f *runnerFake) RunCase(_ context.Context, query string) (Outcome, error) {
	if err := f.errs[query]; err != nil {
		return Outcome{}, err
	}
	return f.outcomes[query], nil
}

type evalJournalFake struct {
	results []domain.EvalResult
}

func (f *evalJournalFake) AppendResult(_ context.Context, result domain.EvalResult) error {
	f.results = append(f.results, result)
	return nil
}

func TestHarnessJournalsEveryCase(t *testing.T) {
	cases := []domain.EvalCase{
		{ID: "ood-1", Query: "who won the 2022 world cup?", MustRefuse: true, Category: "out_of_domain"},
		{ID: "core-1", Query: "what is langgraph?", Category: "core", ExpectedSources: []string{"intro.md"}},
		{ID: "err-1", Query: "broken", Category: "core"},
	}
	runner := &runnerFake{
		outcomes: map[string]Outcome{
			"who won the 2022 world cup?": {Answer: domain.RefusalSentence, Refused: true},
			"what is langgraph?": {
				Answer:           "A graph runtime.",
				RetrievedSources: []string{"intro.md"},
				CheckHit:         true,
			},
		},
		errs: map[string]error{"broken": errors.New("connection refused")},
	}
	journal := &evalJournalFake{}
	out := &bytes.Buffer{}

	summary, err := NewHarness(runner, journal, out).Run(context.Background(), cases)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(journal.results) != 3 {
		t.Fatalf("every case must be journaled, got %d", len(journal.results))
	}
	if summary.Total != 3 || summary.Passes != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.CorrectRefusals != 1 || summary.UnexpectedRefusals != 0 {
		t.Fatalf("refusal tallies wrong: %+v", summary)
	}
	if summary.RetrievalHits != 1 || summary.HitChecked != 1 {
		t.Fatalf("hit tallies wrong: %+v", summary)
	}

	failed := journal.results[2]
	if failed.Passed || !strings.HasPrefix(failed.Answer, "Agent error:") {
		t.Fatalf("runner failures must be journaled as failed cases: %+v", failed)
	}
	if failed.Hit != nil {
		t.Fatalf("runner failures must not record a hit: %+v", failed)
	}

	console := out.String()
	if !strings.Contains(console, "--- ood-1 (out_of_domain) ---") {
		t.Fatalf("per-case block missing:\n%s", console)
	}
	if !strings.Contains(console, "passed:              2/3") {
		t.Fatalf("summary block missing:\n%s", console)
	}
}

func TestHarnessContinuesAfterRunnerError(t *testing.T) {
	cases := []domain.EvalCase{
		{ID: "err-1", Query: "first"},
		{ID: "core-1", Query: "second", ExpectedSources: []string{"a.md"}},
	}
	runner := &runnerFake{
		outcomes: map[string]Outcome{
			"second": {Answer: "fine", RetrievedSources: []string{"a.md"}, CheckHit: true},
		},
		errs: map[string]error{"first": errors.New("boom")},
	}
	journal := &evalJournalFake{}

	summary, err := NewHarness(runner, journal, nil).Run(context.Background(), cases)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Passes != 1 || len(journal.results) != 2 {
		t.Fatalf("run must continue past runner errors: %+v", summary)
	}
}

func TestAgentRunnerDetectsRefusalByPhrase(t *testing.T) {
	runner := NewAgentRunner(agentStub{
		answer: "I don't have enough relevant context to answer confidently.\n\n(Refusal reason: no_relevant_chunks)",
	})

	outcome, err := runner.RunCase(context.Background(), "q")
	if err != nil {
		t.Fatalf("RunCase() error = %v", err)
	}
	if !outcome.Refused {
		t.Fatalf("phrase match must flag the refusal: %+v", outcome)
	}
	if outcome.CheckHit {
		t.Fatalf("agent path must not grade source overlap")
	}
}

type agentStub struct {
	answer string
}

func (s agentStub) Run(context.Context, string) (string, error) {
	return s.answer, nil
}

func TestAPIRunnerUsesStructuredFlag(t *testing.T) {
	runner := NewAPIRunner(apiStub{resp: &domain.QueryResponse{
		Answer:  "grounded",
		Sources: []domain.SourceHit{{Source: "a.md"}, {Source: "b.md"}},
	}})

	outcome, err := runner.RunCase(context.Background(), "q")
	if err != nil {
		t.Fatalf("RunCase() error = %v", err)
	}
	if outcome.Refused || !outcome.CheckHit {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if len(outcome.RetrievedSources) != 2 {
		t.Fatalf("sources must be extracted: %+v", outcome.RetrievedSources)
	}
}

type apiStub struct {
	resp *domain.QueryResponse
}

func (s apiStub) Query(context.Context, string) (*domain.QueryResponse, error) {
	return s.resp, nil
}
