package eval

import (
	"path/filepath"
	"strings"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

// Verdict is the classification of one replayed case.
type Verdict struct {
	Passed bool
	// Hit is non-nil only when source overlap was actually checked, so
	// the log distinguishes "no overlap" from "not applicable".
	Hit    *bool
	Detail string
}

// Classify applies the four-quadrant outcome matrix. checkHit is false on
// the agent path, where only the rendered chat message is observable and
// retrieved sources are not reported.
func Classify(c domain.EvalCase, refused bool, retrieved []string, checkHit bool) Verdict {
	switch {
	case c.MustRefuse && refused:
		return Verdict{Passed: true, Detail: "correct refusal"}
	case c.MustRefuse && !refused:
		return Verdict{Passed: false, Detail: "should have refused"}
	case refused:
		return Verdict{Passed: false, Detail: "unexpected refusal"}
	}

	if !checkHit {
		return Verdict{Passed: true, Detail: "answered"}
	}
	hit := sourcesOverlap(c.ExpectedSources, retrieved)
	if hit {
		return Verdict{Passed: true, Hit: &hit, Detail: "answered with expected sources"}
	}
	return Verdict{Passed: false, Hit: &hit, Detail: "wrong sources"}
}

// sourcesOverlap reports whether any expected source appears among the
// retrieved ones. Comparison is on base filenames so the expectation
// stays valid if the ingestion path prefix changes. An empty expected
// set can never overlap anything.
func sourcesOverlap(expected, retrieved []string) bool {
	seen := make(map[string]struct{}, len(retrieved))
	for _, src := range retrieved {
		seen[normalizeSource(src)] = struct{}{}
	}
	for _, src := range expected {
		if _, ok := seen[normalizeSource(src)]; ok {
			return true
		}
	}
	return false
}

func normalizeSource(src string) string {
	return strings.ToLower(filepath.Base(strings.TrimSpace(src)))
}
