package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

// Writer appends JSON records to a log file, one object per line.
// Records are immutable once written; the file is never truncated or
// rewritten by this process.
type Writer struct {
	mu   sync.Mutex
	path string
}

func NewWriter(path string) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return &Writer{path: path}, nil
}

func (w *Writer) Append(record any) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal journal record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append journal record: %w", err)
	}
	return nil
}

// QueryLog stores one record per handled query.
type QueryLog struct {
	w *Writer
}

func NewQueryLog(path string) (*QueryLog, error) {
	w, err := NewWriter(path)
	if err != nil {
		return nil, err
	}
	return &QueryLog{w: w}, nil
}

func (l *QueryLog) AppendQuery(_ context.Context, record domain.QueryRecord) error {
	return l.w.Append(record)
}

// AgentLog stores one record per agent run.
type AgentLog struct {
	w *Writer
}

func NewAgentLog(path string) (*AgentLog, error) {
	w, err := NewWriter(path)
	if err != nil {
		return nil, err
	}
	return &AgentLog{w: w}, nil
}

func (l *AgentLog) AppendRun(_ context.Context, record domain.AgentRunRecord) error {
	return l.w.Append(record)
}

// EvalLog stores one record per evaluated case.
type EvalLog struct {
	w *Writer
}

func NewEvalLog(path string) (*EvalLog, error) {
	w, err := NewWriter(path)
	if err != nil {
		return nil, err
	}
	return &EvalLog{w: w}, nil
}

func (l *EvalLog) AppendResult(_ context.Context, record domain.EvalResult) error {
	return l.w.Append(record)
}
