package domain

// EvalCase is one labeled query replayed by the harness. Loaded once per
// run, never mutated.
type EvalCase struct {
	ID              string   `json:"id"`
	Query           string   `json:"query"`
	MustRefuse      bool     `json:"must_refuse"`
	Category        string   `json:"category"`
	ExpectedSources []string `json:"expected_sources"`
}

// EvalResult is the per-case outcome appended to the eval log. Hit is nil
// when source overlap was not checked (refusal cases, agent path).
type EvalResult struct {
	Timestamp        float64  `json:"ts"`
	EvalID           string   `json:"eval_id"`
	Query            string   `json:"query"`
	Category         string   `json:"category,omitempty"`
	Answer           string   `json:"answer,omitempty"`
	MustRefuse       bool     `json:"must_refuse"`
	Refused          bool     `json:"refused"`
	Passed           bool     `json:"passed"`
	Hit              *bool    `json:"hit,omitempty"`
	ExpectedSources  []string `json:"expected_sources,omitempty"`
	RetrievedSources []string `json:"retrieved_sources,omitempty"`
	LatencySec       float64  `json:"latency_sec"`
}
