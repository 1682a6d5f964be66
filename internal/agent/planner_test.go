package agent

import (
	"context"
	"strings"
	"testing"
)

type plannerGeneratorFake struct {
	response string
	prompt   string
}

func (f *plannerGeneratorFake) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, nil
}

func (f *plannerGeneratorFake) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return f.Generate(ctx, prompt)
}

func TestPlanParsesToolCalls(t *testing.T) {
	generator := &plannerGeneratorFake{response: `{"tool_calls":[{"query":"what is langgraph?"}]}`}
	planner := NewLLMPlanner(generator)

	calls, err := planner.Plan(context.Background(), "what is langgraph?")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(calls) != 1 || calls[0].Query != "what is langgraph?" {
		t.Fatalf("unexpected calls %+v", calls)
	}
	if !strings.Contains(generator.prompt, "what is langgraph?") {
		t.Fatalf("planner prompt must carry the user message")
	}
	if !strings.Contains(generator.prompt, "MUST call the rag_query tool") {
		t.Fatalf("planner prompt lost the forced-tool instruction:\n%s", generator.prompt)
	}
}

func TestPlanDropsBlankQueries(t *testing.T) {
	generator := &plannerGeneratorFake{response: `{"tool_calls":[{"query":"  "},{"query":"real one"}]}`}
	planner := NewLLMPlanner(generator)

	calls, err := planner.Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(calls) != 1 || calls[0].Query != "real one" {
		t.Fatalf("blank queries must be dropped: %+v", calls)
	}
}

func TestPlanRejectsMalformedJSON(t *testing.T) {
	for _, response := range []string{"", "not json", `{"tool_calls":`} {
		planner := NewLLMPlanner(&plannerGeneratorFake{response: response})
		if _, err := planner.Plan(context.Background(), "q"); err == nil {
			t.Fatalf("response %q: expected parse error", response)
		}
	}
}

func TestPlanAllowsEmptyCallList(t *testing.T) {
	planner := NewLLMPlanner(&plannerGeneratorFake{response: `{"tool_calls":[]}`})

	calls, err := planner.Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("expected empty plan, got %+v", calls)
	}
}
