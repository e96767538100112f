package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerperSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["q"], "site:youtube.com")
		assert.Contains(t, body["q"], `"start with why"`)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]string{
				{"link": "https://www.youtube.com/watch?v=u4ZoJKF_VuA"},
				{"link": "https://example.com/blog/start-with-why"},
				{"link": "https://www.youtube.com/watch?v=qp0HIF3SfI4"},
			},
		})
	}))
	defer srv.Close()

	s := NewSerper("test-key")
	s.endpoint = srv.URL
	s.client = srv.Client()

	urls, err := s.Search(context.Background(), "start with why", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=u4ZoJKF_VuA",
		"https://www.youtube.com/watch?v=qp0HIF3SfI4",
	}, urls)
}

func TestSerperErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSerper("bad")
	s.endpoint = srv.URL
	s.client = srv.Client()

	_, err := s.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-key", body["api_key"])
		assert.Contains(t, body["query"], "site:youtube.com")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"url": "https://www.youtube.com/watch?v=u4ZoJKF_VuA"},
				{"url": "https://vimeo.com/12345"},
			},
		})
	}))
	defer srv.Close()

	tv := NewTavily("test-key")
	tv.endpoint = srv.URL
	tv.client = srv.Client()

	urls, err := tv.Search(context.Background(), "start with why", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=u4ZoJKF_VuA"}, urls)
}

func TestProviderNilOnMissingKey(t *testing.T) {
	assert.Nil(t, NewSerper(""))
	assert.Nil(t, NewTavily(""))
}

type fakeProvider struct {
	name string
	urls []string
	err  error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(_ context.Context, _ string, _ int) ([]string, error) {
	return f.urls, f.err
}

func TestMultiBlendsAndDedupes(t *testing.T) {
	a := &fakeProvider{name: "a", urls: []string{"u1", "u2"}}
	b := &fakeProvider{name: "b", urls: []string{"u2", "u3", "u4"}}

	urls, err := NewMulti(a, b).Search(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, urls)
}

func TestMultiSkipsFailingProvider(t *testing.T) {
	a := &fakeProvider{name: "a", err: errors.New("quota exceeded")}
	b := &fakeProvider{name: "b", urls: []string{"u1"}}

	urls, err := NewMulti(a, b).Search(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, urls)
}

func TestMultiNoProviders(t *testing.T) {
	_, err := NewMulti().Search(context.Background(), "q", 10)
	assert.Error(t, err)
}
