package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type httpClient struct {
	endpoint string
	key      string
	hc       *http.Client
}

// NewHTTP builds a client for the remote assessment API. The timeout bounds
// the single attempt; zero falls back to 10s.
func NewHTTP(endpoint, key string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		hc:       &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) Complete(ctx context.Context, reqBody CompleteRequest) (*CompleteResponse, error) {
	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal assessment request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/assessment/complete", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assessment api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("assessment api: status %d", resp.StatusCode)
	}

	var out CompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("assessment api: malformed payload: %w", err)
	}
	return &out, nil
}
