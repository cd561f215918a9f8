package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleResponse = `{
	"items": [
		{"id": {"videoId": "abc123"}, "snippet": {"title": "Lofi Beats 1"}},
		{"id": {"videoId": "def456"}, "snippet": {"title": "Lofi Beats 2"}},
		{"id": {}, "snippet": {"title": "A channel, not a video"}}
	]
}`

func TestSearch(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"part":       q.Get("part"),
			"q":          q.Get("q"),
			"type":       q.Get("type"),
			"maxResults": q.Get("maxResults"),
			"key":        q.Get("key"),
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewYouTubeClient("test-key", nil, zap.NewNop()).WithEndpoint(srv.URL)

	results, err := client.Search(context.Background(), "lofi beats")
	require.NoError(t, err)

	assert.Equal(t, "snippet", gotQuery["part"])
	assert.Equal(t, "lofi beats", gotQuery["q"])
	assert.Equal(t, "video", gotQuery["type"])
	assert.Equal(t, "5", gotQuery["maxResults"])
	assert.Equal(t, "test-key", gotQuery["key"])

	// Items without a video id are skipped.
	require.Len(t, results, 2)
	assert.Equal(t, "Lofi Beats 1", results[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", results[0].URL)
	assert.Equal(t, "https://www.youtube.com/watch?v=def456", results[1].URL)
}

func TestSearch_Disabled(t *testing.T) {
	client := NewYouTubeClient("", nil, zap.NewNop())

	assert.False(t, client.Enabled())

	results, err := client.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestSearch_NilClientDisabled(t *testing.T) {
	var client *YouTubeClient
	assert.False(t, client.Enabled())
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := NewYouTubeClient("test-key", nil, zap.NewNop())

	_, err := client.Search(context.Background(), "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestSearch_APIStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 403, "message": "quotaExceeded"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewYouTubeClient("test-key", nil, zap.NewNop()).WithEndpoint(srv.URL)

	_, err := client.Search(context.Background(), "lofi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestSearch_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	client := NewYouTubeClient("test-key", nil, zap.NewNop()).WithEndpoint(srv.URL)

	results, err := client.Search(context.Background(), "zxqv")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "search:yt:lofi beats", cacheKey("  Lofi Beats "))
}
