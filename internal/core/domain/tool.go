package domain

// ToolResult is the tagged result of a query-tool invocation. Failures at
// the tool boundary are represented as a value with Reason tool_error
// instead of an error, so the agent pipeline never crashes on a bad call.
type ToolResult struct {
	Answer        string        `json:"answer"`
	Refused       bool          `json:"refused"`
	Sources       []SourceHit   `json:"sources"`
	RefusalReason RefusalReason `json:"refusal_reason,omitempty"`
	Error         string        `json:"error,omitempty"`
}

const toolUnavailableAnswer = "RAG service unavailable."

// ToolFailure converts a tool-boundary error into the structured
// unavailable result.
func ToolFailure(err error) ToolResult {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return ToolResult{
		Answer:        toolUnavailableAnswer,
		Refused:       true,
		Sources:       []SourceHit{},
		RefusalReason: RefusalToolError,
		Error:         msg,
	}
}

func (r ToolResult) RetrievedSources() []string {
	out := make([]string, 0, len(r.Sources))
	for _, s := range r.Sources {
		out = append(out, s.Source)
	}
	return out
}
