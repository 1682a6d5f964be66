// Package ragapi is the HTTP client for the query service API. The eval
// harness uses it to exercise the service over the wire, and RemoteTool
// lets the agent reach a service running in another process.
package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okozyrev/ragproof/internal/core/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Query posts one question to POST /query and returns the decoded
// response. Non-2xx statuses are errors carrying the response body.
func (c *Client) Query(ctx context.Context, query string) (*domain.QueryResponse, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshal query request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "rag api query", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("rag api query: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out domain.QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return &out, nil
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*domain.HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "rag api health", err)
	}
	defer resp.Body.Close()

	// Degraded services answer non-200 with an arbitrary body; the status
	// alone is the signal.
	if resp.StatusCode != http.StatusOK {
		return &domain.HealthStatus{OK: false}, nil
	}

	var out domain.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return &out, nil
}

// RemoteTool adapts the API client to the agent's tool contract.
type RemoteTool struct {
	client *Client
}

func NewRemoteTool(client *Client) *RemoteTool {
	return &RemoteTool{client: client}
}

func (t *RemoteTool) Invoke(ctx context.Context, query string) domain.ToolResult {
	resp, err := t.client.Query(ctx, query)
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
