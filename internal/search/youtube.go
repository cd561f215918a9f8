// Package search provides keyword lookup against the YouTube Data API.
// This path is advisory only: results are presented to the user as links
// and never queued directly.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://www.googleapis.com/youtube/v3/search"

	// The Data API is asked for at most this many results per query.
	MaxResults = 5

	cacheKeyPrefix = "search:yt:"
	cacheTTL       = 5 * time.Minute
)

var ErrSearchFailed = errors.New("youtube search failed")

type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// YouTubeClient queries the Data API, caching results in Redis when a
// cache client is supplied. A zero api key disables the client: Search
// returns empty results without touching the network.
type YouTubeClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	cache      *redislib.Client
	log        *zap.Logger
}

func NewYouTubeClient(apiKey string, cache *redislib.Client, log *zap.Logger) *YouTubeClient {
	return &YouTubeClient{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		log:        log,
	}
}

// WithEndpoint overrides the API endpoint. Used by tests.
func (c *YouTubeClient) WithEndpoint(endpoint string) *YouTubeClient {
	c.endpoint = endpoint
	return c
}

func (c *YouTubeClient) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Search returns up to MaxResults (title, watch URL) pairs for a keyword
// query, or nothing when the client is disabled.
func (c *YouTubeClient) Search(ctx context.Context, query string) ([]Result, error) {
	if !c.Enabled() {
		return nil, nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrSearchFailed)
	}

	key := cacheKey(query)
	if cached, ok := c.cacheGet(ctx, key); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", MaxResults))
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: api status %d", ErrSearchFailed, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	results := make([]Result, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results = append(results, Result{
			Title: item.Snippet.Title,
			URL:   "https://www.youtube.com/watch?v=" + item.ID.VideoID,
		})
	}

	c.cacheSet(ctx, key, results)
	return results, nil
}

func cacheKey(query string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}

// Cache failures degrade to a direct API call; they are never surfaced.
func (c *YouTubeClient) cacheGet(ctx context.Context, key string) ([]Result, bool) {
	if c.cache == nil {
		return nil, false
	}

	raw, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redislib.Nil) {
			c.log.Debug("search cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var results []Result
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *YouTubeClient) cacheSet(ctx context.Context, key string, results []Result) {
	if c.cache == nil {
		return
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		c.log.Debug("search cache write failed", zap.Error(err))
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}
