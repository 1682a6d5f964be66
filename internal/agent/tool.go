package agent

import (
	"context"
	"time"

	"github.com/okozyrev/ragproof/internal/core/domain"
	"github.com/okozyrev/ragproof/internal/core/ports"
)

// LocalTool invokes the query service in-process. It is the tool-boundary
// adapter for the single-binary agent: service errors never escape, they
// become tool_error results.
type LocalTool struct {
	service ports.QueryAnswering
	timeout time.Duration
}

func NewLocalTool(service ports.QueryAnswering, timeout time.Duration) *LocalTool {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &LocalTool{service: service, timeout: timeout}
}

func (t *LocalTool) Invoke(ctx context.Context, query string) domain.ToolResult {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.service.Handle(ctx, query)
	if err != nil {
		return domain.ToolFailure(err)
	}
	return domain.ToolResult{
		Answer:        resp.Answer,
		Refused:       resp.Refused,
		Sources:       resp.Sources,
		RefusalReason: resp.RefusalReason,
	}
}
