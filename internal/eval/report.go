package eval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

// maxFailingIDs caps how many failing cases the report names.
const maxFailingIDs = 5

// Report is recomputed from the eval log alone; it needs no live
// pipeline and can be re-run on historical logs.
type Report struct {
	Total              int
	Passed             int
	MustRefuseTotal    int
	CorrectRefusals    int
	UnexpectedRefusals int
	HitChecked         int
	RetrievalHits      int
	MeanLatencySec     float64
	MedianLatencySec   float64
	FailingCaseIDs     []string
}

// ReadResults loads every parseable line of the eval log. Blank lines
// are skipped; a malformed line aborts with its line number so log
// corruption is noticed rather than silently averaged over.
func ReadResults(path string) ([]domain.EvalResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open eval log: %w", err)
	}
	defer f.Close()

	var results []domain.EvalResult
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var result domain.EvalResult
		if err := json.Unmarshal([]byte(line), &result); err != nil {
			return nil, fmt.Errorf("eval log line %d: %w", lineNo, err)
		}
		results = append(results, result)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan eval log: %w", err)
	}
	return results, nil
}

// Analyze recomputes the aggregates from logged results.
func Analyze(results []domain.EvalResult) *Report {
	report := &Report{Total: len(results)}
	latencies := make([]float64, 0, len(results))

	for _, r := range results {
		latencies = append(latencies, r.LatencySec)
		if r.Passed {
			report.Passed++
		} else if len(report.FailingCaseIDs) < maxFailingIDs {
			report.FailingCaseIDs = append(report.FailingCaseIDs, r.EvalID)
		}
		if r.MustRefuse {
			report.MustRefuseTotal++
			if r.Refused {
				report.CorrectRefusals++
			}
		} else if r.Refused {
			report.UnexpectedRefusals++
		}
		if r.Hit != nil {
			report.HitChecked++
			if *r.Hit {
				report.RetrievalHits++
			}
		}
	}

	report.MeanLatencySec = mean(latencies)
	report.MedianLatencySec = median(latencies)
	return report
}

// Print renders the report in the same console style as the live run.
func (r *Report) Print(out io.Writer) {
	fmt.Fprintf(out, "=== Eval log report (%d cases) ===\n", r.Total)
	fmt.Fprintf(out, "pass rate:           %s\n", rate(r.Passed, r.Total))
	fmt.Fprintf(out, "refusal accuracy:    %s\n", rate(r.CorrectRefusals, r.MustRefuseTotal))
	fmt.Fprintf(out, "unexpected refusals: %d\n", r.UnexpectedRefusals)
	fmt.Fprintf(out, "retrieval hit rate:  %s\n", rate(r.RetrievalHits, r.HitChecked))
	fmt.Fprintf(out, "latency mean/median: %.2fs / %.2fs\n", r.MeanLatencySec, r.MedianLatencySec)

	if len(r.FailingCaseIDs) > 0 {
		color.New(color.FgRed).Fprintf(out, "failing cases: %s\n", strings.Join(r.FailingCaseIDs, ", "))
	} else if r.Total > 0 {
		color.New(color.FgGreen).Fprintf(out, "all cases passed\n")
	}
}

func rate(part, total int) string {
	if total == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", part, total, 100*float64(part)/float64(total))
}
