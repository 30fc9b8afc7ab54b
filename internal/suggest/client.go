package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RequestTimeout is the hard ceiling on one suggestion lookup. Suggestions
// are decoration; a slow answer is worth less than none.
const RequestTimeout = 3 * time.Second

// Client looks up search suggestions. The endpoint speaks the classic
// suggest wire format: a JSON array whose second element is the candidate
// list.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: RequestTimeout},
	}
}

func (c *Client) Suggestions(ctx context.Context, query string) ([]string, error) {
	q := url.Values{}
	q.Set("client", "firefox")
	q.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest lookup error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("suggest lookup %d: %s", resp.StatusCode, string(b))
	}

	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("malformed suggest response: %d elements", len(payload))
	}
	var candidates []string
	if err := json.Unmarshal(payload[1], &candidates); err != nil {
		return nil, fmt.Errorf("decoding candidate list: %w", err)
	}
	return candidates, nil
}
