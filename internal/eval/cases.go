// Package eval replays labeled queries against the pipeline, classifies
// each outcome, and appends one result record per case to the eval log.
package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

// LoadCases reads the full case file, a JSON array of eval cases, before
// the run starts. Cases with a blank id or query are rejected so a bad
// file fails loudly instead of skewing the aggregates.
func LoadCases(path string) ([]domain.EvalCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}

	var cases []domain.EvalCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse case file %s: %w", path, err)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("case file %s contains no cases", path)
	}
	for i, c := range cases {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("case %d has no id", i)
		}
		if strings.TrimSpace(c.Query) == "" {
			return nil, fmt.Errorf("case %q has no query", c.ID)
		}
	}
	return cases, nil
}
