package eval

import (
	"testing"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

func TestClassifyRefusalQuadrants(t *testing.T) {
	refuseCase := domain.EvalCase{ID: "ood-1", MustRefuse: true}
	answerCase := domain.EvalCase{ID: "core-1", ExpectedSources: []string{"intro.md"}}

	if v := Classify(refuseCase, true, nil, true); !v.Passed || v.Hit != nil {
		t.Fatalf("correct refusal must pass without a hit check: %+v", v)
	}
	if v := Classify(refuseCase, false, []string{"intro.md"}, true); v.Passed {
		t.Fatalf("missed refusal must fail: %+v", v)
	}
	if v := Classify(answerCase, true, nil, true); v.Passed {
		t.Fatalf("unexpected refusal must fail: %+v", v)
	}
}

func TestClassifyAnsweredRequiresSourceOverlap(t *testing.T) {
	c := domain.EvalCase{ID: "core-2", ExpectedSources: []string{"langgraph_intro.md"}}

	v := Classify(c, false, []string{"rag_notes.md", "langgraph_intro.md"}, true)
	if !v.Passed || v.Hit == nil || !*v.Hit {
		t.Fatalf("overlapping sources must pass with hit=true: %+v", v)
	}

	v = Classify(c, false, []string{"unrelated.md"}, true)
	if v.Passed || v.Hit == nil || *v.Hit {
		t.Fatalf("disjoint sources must fail with hit=false: %+v", v)
	}
}

func TestClassifyAgentPathSkipsHitCheck(t *testing.T) {
	c := domain.EvalCase{ID: "core-3", ExpectedSources: []string{"intro.md"}}

	v := Classify(c, false, nil, false)
	if !v.Passed {
		t.Fatalf("answered case passes when overlap is unobservable: %+v", v)
	}
	if v.Hit != nil {
		t.Fatalf("hit must stay nil when overlap was not checked: %+v", v)
	}
}

func TestClassifyEmptyExpectedSourcesNeverHits(t *testing.T) {
	c := domain.EvalCase{ID: "core-5", ExpectedSources: nil}

	v := Classify(c, false, []string{"anything.md"}, true)
	if v.Passed {
		t.Fatalf("an empty expected set cannot overlap retrieval: %+v", v)
	}
	if v.Hit == nil || *v.Hit {
		t.Fatalf("expected hit=false, got %+v", v)
	}
}

func TestClassifyNormalizesSourcePaths(t *testing.T) {
	c := domain.EvalCase{ID: "core-4", ExpectedSources: []string{"Langgraph_Intro.md"}}

	v := Classify(c, false, []string{"docs/kb/langgraph_intro.md"}, true)
	if !v.Passed {
		t.Fatalf("base filename comparison must match across path prefixes: %+v", v)
	}
}
