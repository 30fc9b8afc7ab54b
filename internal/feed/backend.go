package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
)

// TopicsClient asks the agent service to generate search queries for a
// profile. Failures wrap ErrAgentUnreachable so callers can show the
// right banner.
type TopicsClient struct {
	baseURL string
	client  *http.Client
}

func NewTopicsClient(baseURL string, timeout time.Duration) *TopicsClient {
	return &TopicsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type topicsRequest struct {
	JobTitle   string `json:"jobTitle"`
	Department string `json:"department"`
}

type topicsResponse struct {
	Queries []string `json:"queries"`
}

func (c *TopicsClient) Topics(ctx context.Context, profile identity.Profile) ([]string, error) {
	body, err := json.Marshal(topicsRequest{
		JobTitle:   profile.JobTitle,
		Department: profile.Department,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling topics request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-topics", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating topics request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAgentUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d: %s", ErrAgentUnreachable, resp.StatusCode, b)
	}

	var parsed topicsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrAgentUnreachable, err)
	}
	return parsed.Queries, nil
}

// NewsClient fetches articles from the news backend. Failures wrap
// ErrBackendUnreachable.
type NewsClient struct {
	baseURL string
	client  *http.Client
}

func NewNewsClient(baseURL string, timeout time.Duration) *NewsClient {
	return &NewsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type newsResponse struct {
	Articles []newscache.Article `json:"articles"`
}

func (c *NewsClient) News(ctx context.Context, queries []string, role string) ([]newscache.Article, error) {
	params := url.Values{}
	params.Set("q", strings.Join(queries, ","))
	if role != "" {
		params.Set("role", role)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/news?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating news request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d: %s", ErrBackendUnreachable, resp.StatusCode, b)
	}

	var parsed newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrBackendUnreachable, err)
	}
	return parsed.Articles, nil
}
