package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

func TestQueryLogAppendsOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "queries.jsonl")
	log, err := NewQueryLog(path)
	require.NoError(t, err)

	first := domain.QueryRecord{RequestID: "req-1", Query: "what is langgraph", K: 5, MaxDistance: 1.05}
	second := domain.QueryRecord{RequestID: "req-2", Query: "capital of france", Refused: true, RefusalReason: domain.RefusalNoRelevantChunks}

	require.NoError(t, log.AppendQuery(context.Background(), first))
	require.NoError(t, log.AppendQuery(context.Background(), second))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []domain.QueryRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec domain.QueryRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 2)
	require.Equal(t, "req-1", records[0].RequestID)
	require.Equal(t, domain.RefusalNoRelevantChunks, records[1].RefusalReason)
}

func TestWriterNeverTruncatesExistingLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.jsonl")
	log, err := NewEvalLog(path)
	require.NoError(t, err)
	require.NoError(t, log.AppendResult(context.Background(), domain.EvalResult{EvalID: "e1"}))

	// A second writer on the same path must append, not rewrite.
	again, err := NewEvalLog(path)
	require.NoError(t, err)
	require.NoError(t, again.AppendResult(context.Background(), domain.EvalResult{EvalID: "e2"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "e1")
	require.Contains(t, string(data), "e2")
}

func TestNewWriterRequiresPath(t *testing.T) {
	_, err := NewWriter("")
	require.Error(t, err)
}
