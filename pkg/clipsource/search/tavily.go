package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// Tavily queries the Tavily search API.
type Tavily struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewTavily builds a Tavily provider, or nil when the key is empty.
func NewTavily(apiKey string) *Tavily {
	if apiKey == "" {
		return nil
	}
	return &Tavily{
		apiKey:   apiKey,
		endpoint: tavilyEndpoint,
		client:   newHTTPClient(),
	}
}

func (t *Tavily) Name() string { return "tavily" }

// Search implements Provider.
func (t *Tavily) Search(ctx context.Context, snippet string, max int) ([]string, error) {
	payload, err := json.Marshal(map[string]any{
		"api_key":     t.apiKey,
		"query":       siteQuery(snippet),
		"max_results": max,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling tavily: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tavily returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		Results []struct {
			URL string `json:"url"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding tavily response: %w", err)
	}

	var urls []string
	for _, item := range decoded.Results {
		if strings.Contains(item.URL, "youtube.com/watch") {
			urls = append(urls, item.URL)
		}
	}
	return urls, nil
}
