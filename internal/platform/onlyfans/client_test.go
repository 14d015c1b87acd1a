package onlyfans

import (
	"Fanscope/internal/platform"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return New(platform.ClientConfig{
		BaseURL:        baseURL,
		Token:          "test-token",
		RequestTimeout: 5 * time.Second,
		MaxRetries:     3,
		BackoffBase:    time.Millisecond,
		BackoffMax:     5 * time.Millisecond,
		RateLimit:      100,
		RateWindow:     time.Minute,
	})
}

func mockUpstream(t *testing.T, attempts *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts != nil {
			atomic.AddInt64(attempts, 1)
		}
		switch r.URL.Path {
		case "/api2/v2/users/test_user":
			_, _ = w.Write([]byte(`{
				"id": 42,
				"username": "test_user",
				"followers_count": 1000,
				"favorites_count": 500,
				"comments_count": 120,
				"total_earnings": 1234.56
			}`))
		case "/api2/v2/users/partial_user":
			_, _ = w.Write([]byte(`{"id": 43, "username": "partial_user", "followers_count": 10}`))
		case "/api2/v2/content/trending":
			_, _ = w.Write([]byte(`{"items": [
				{"title": "b", "content_type": "image", "likes_count": 10, "comments_count": 1},
				{"title": "a", "content_type": "video", "likes_count": 100, "comments_count": 20}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

// 端到端：mock 上游返回 followers=1000 likes=500 comments=120，
// 归一化结果互动率为 62.0
func TestGetCreatorMetrics(t *testing.T) {
	srv := mockUpstream(t, nil)
	defer srv.Close()

	c := newTestClient(srv.URL)
	m, err := c.GetCreatorMetrics(context.Background(), "test_user")

	require.NoError(t, err)
	assert.Equal(t, "onlyfans", m.Platform)
	assert.Equal(t, 1000, m.Followers)
	assert.Equal(t, 500, m.Likes)
	assert.Equal(t, 120, m.Comments)
	assert.Equal(t, 62.0, m.EngagementRate())
	require.NotNil(t, m.Earnings)
	assert.Equal(t, 1234.56, *m.Earnings)
	assert.False(t, m.CapturedAt.IsZero())
}

// 不存在的账号：NotFoundError 且不重试，上游只收到 1 次请求
func TestGetCreatorMetricsNotFound(t *testing.T) {
	var attempts int64
	srv := mockUpstream(t, &attempts)
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.GetCreatorMetrics(context.Background(), "ghost_user")

	var nfe *platform.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "ghost_user", nfe.Identifier)
	assert.Equal(t, int64(1), atomic.LoadInt64(&attempts))
}

// 上游缺字段时补 0，不失败
func TestGetCreatorMetricsPartial(t *testing.T) {
	srv := mockUpstream(t, nil)
	defer srv.Close()

	c := newTestClient(srv.URL)
	m, err := c.GetCreatorMetrics(context.Background(), "partial_user")

	require.NoError(t, err)
	assert.Equal(t, 10, m.Followers)
	assert.Equal(t, 0, m.Likes)
	assert.Equal(t, 0, m.Comments)
	assert.Nil(t, m.Earnings)
}

// 缓存生效：TTL 内重复调用不回源
func TestGetCreatorMetricsCached(t *testing.T) {
	var attempts int64
	srv := mockUpstream(t, &attempts)
	defer srv.Close()

	c := newTestClient(srv.URL)
	first, err := c.GetCreatorMetrics(context.Background(), "test_user")
	require.NoError(t, err)
	second, err := c.GetCreatorMetrics(context.Background(), "test_user")
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&attempts))
	assert.Equal(t, first, second)

	// 显式失效后回源
	c.InvalidateMetrics("test_user")
	_, err = c.GetCreatorMetrics(context.Background(), "test_user")
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&attempts))
}

func TestGetTrendingContent(t *testing.T) {
	srv := mockUpstream(t, nil)
	defer srv.Close()

	c := newTestClient(srv.URL)
	items, err := c.GetTrendingContent(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, items, 2)
	// 按热度分降序
	assert.Equal(t, "a", items[0].Title)
	assert.Equal(t, "video", items[0].ContentType)
}

// 非阻塞调用超出配额时快速失败
func TestRateLimitFailFast(t *testing.T) {
	srv := mockUpstream(t, nil)
	defer srv.Close()

	c := New(platform.ClientConfig{
		BaseURL:     srv.URL,
		RateLimit:   1,
		RateWindow:  time.Hour,
		BackoffBase: time.Millisecond,
	})

	_, err := c.GetCreatorMetrics(context.Background(), "test_user")
	require.NoError(t, err)

	// 换个标识符绕开缓存，配额已耗尽
	_, err = c.GetCreatorMetrics(context.Background(), "partial_user")
	var rle *platform.RateLimitExceededError
	require.ErrorAs(t, err, &rle)
}
