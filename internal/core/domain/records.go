package domain

// SourceRef is the compact source reference stored in the query log.
type SourceRef struct {
	Source   string  `json:"source"`
	Distance float64 `json:"distance"`
}

// QueryRecord is one append-only query-log entry. Written once per
// handled query, refusals included; never updated.
type QueryRecord struct {
	Timestamp     string        `json:"ts"`
	RequestID     string        `json:"request_id"`
	Query         string        `json:"query"`
	Refused       bool          `json:"refused"`
	RefusalReason RefusalReason `json:"refusal_reason,omitempty"`
	Sources       []SourceRef   `json:"sources"`
	K             int           `json:"k"`
	MaxDistance   float64       `json:"max_distance"`
	LatencySec    float64       `json:"latency_sec"`
	GenModel      string        `json:"gen_model"`
	EmbedModel    string        `json:"embed_model"`
}

// AgentRunRecord is one append-only agent-run log entry.
type AgentRunRecord struct {
	Timestamp  string  `json:"ts"`
	Query      string  `json:"query"`
	Answer     string  `json:"answer"`
	Refused    bool    `json:"refused"`
	Error      bool    `json:"error"`
	LatencySec float64 `json:"latency_sec"`
}
