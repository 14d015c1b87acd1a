package fansly

import (
	"Fanscope/internal/platform"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trendingHTML = `<html><body>
<div class="feed-item type-video">
  <a class="item-link" href="/post/1"></a>
  <span class="item-title">热门视频</span>
  <span class="like-count">1.2k</span>
  <span class="comment-count">340</span>
</div>
<div class="feed-item type-image">
  <a class="item-link" href="/post/2"></a>
  <span class="item-title">图片内容</span>
  <span class="like-count">98</span>
  <span class="comment-count">7</span>
</div>
</body></html>`

func newTestClient(baseURL string) *Client {
	return New(platform.ClientConfig{
		BaseURL:     baseURL,
		RequestTimeout: 5 * time.Second,
		MaxRetries:  1,
		BackoffBase: time.Millisecond,
		RateLimit:   100,
		RateWindow:  time.Minute,
	}, nil)
}

func TestGetTrendingContentHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/explore/trending" {
			_, _ = w.Write([]byte(trendingHTML))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	items, err := c.GetTrendingContent(context.Background(), "us")

	require.NoError(t, err)
	require.Len(t, items, 2)

	// 按热度分降序：1200+340*2 > 98+7*2
	assert.Equal(t, "热门视频", items[0].Title)
	assert.Equal(t, "video", items[0].ContentType)
	assert.Equal(t, 1200, items[0].Likes)
	assert.Equal(t, 340, items[0].Comments)
	assert.Equal(t, "us", items[0].Region)
	assert.Equal(t, srv.URL+"/post/1", items[0].URL)

	assert.Equal(t, "image", items[1].ContentType)
}

func TestGetCreatorMetricsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "response": []}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.GetCreatorMetrics(context.Background(), "nobody")

	var nfe *platform.NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestGetCreatorMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alice", r.URL.Query().Get("usernames"))
		_, _ = w.Write([]byte(`{"success": true, "response": [
			{"id": "acc-1", "username": "alice", "followCount": 200, "likeCount": 30, "commentCount": 10}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	m, err := c.GetCreatorMetrics(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "fansly", m.Platform)
	assert.Equal(t, "acc-1", m.ExternalID)
	assert.Equal(t, 200, m.Followers)
	assert.Equal(t, 20.0, m.EngagementRate())
}

func TestParseCount(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"42":    42,
		"1,234": 1234,
		"1.2k":  1200,
		"3m":    3000000,
		"abc":   0,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseCount(in), "parseCount(%q)", in)
	}
}
