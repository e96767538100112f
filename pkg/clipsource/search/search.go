// Package search turns a text snippet into candidate YouTube watch URLs via
// web search providers. Provider order matters: the blended result order is
// the ranking tie-break downstream, so providers are queried in the order
// they are configured.
package search

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clipsource/pkg/logger"
)

const requestTimeout = 20 * time.Second

// Provider is one web search backend returning YouTube watch URLs for a
// snippet, most relevant first.
type Provider interface {
	Name() string
	Search(ctx context.Context, snippet string, max int) ([]string, error)
}

// Multi blends providers in order, deduplicates and caps the result. A
// failing provider is logged and skipped; discovery degrades rather than
// failing the whole run.
type Multi struct {
	providers []Provider
	log       *logger.Logger
}

// NewMulti builds a blended searcher over the given providers.
func NewMulti(providers ...Provider) *Multi {
	return &Multi{providers: providers, log: logger.GetLogger()}
}

// Search implements the blended lookup.
func (m *Multi) Search(ctx context.Context, snippet string, max int) ([]string, error) {
	if len(m.providers) == 0 {
		return nil, fmt.Errorf("no search providers configured")
	}

	var out []string
	seen := make(map[string]struct{})
	for _, p := range m.providers {
		urls, err := p.Search(ctx, snippet, max)
		if err != nil {
			m.log.Warnf("%s search failed: %v", p.Name(), err)
			continue
		}
		for _, u := range urls {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
			if len(out) >= max {
				return out, nil
			}
		}
	}
	return out, nil
}

// siteQuery builds the quoted site-restricted query both providers use.
func siteQuery(snippet string) string {
	return fmt.Sprintf("%q site:youtube.com", snippet)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
