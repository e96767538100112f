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

const serperEndpoint = "https://google.serper.dev/search"

// Serper queries the Serper.dev Google Search API.
type Serper struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSerper builds a Serper provider. Returns nil when the key is empty so
// callers can append the result unconditionally and filter nils.
func NewSerper(apiKey string) *Serper {
	if apiKey == "" {
		return nil
	}
	return &Serper{
		apiKey:   apiKey,
		endpoint: serperEndpoint,
		client:   newHTTPClient(),
	}
}

func (s *Serper) Name() string { return "serper" }

// Search implements Provider.
func (s *Serper) Search(ctx context.Context, snippet string, max int) ([]string, error) {
	payload, err := json.Marshal(map[string]any{
		"q":   siteQuery(snippet),
		"num": max,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling serper: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("serper returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		Organic []struct {
			Link string `json:"link"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding serper response: %w", err)
	}

	var urls []string
	for _, item := range decoded.Organic {
		if strings.Contains(item.Link, "youtube.com/watch") {
			urls = append(urls, item.Link)
		}
	}
	return urls, nil
}
