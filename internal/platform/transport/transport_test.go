package transport

import (
	"Fanscope/internal/platform"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(name string) platform.ClientConfig {
	return platform.ClientConfig{
		Platform:       name,
		RequestTimeout: 5 * time.Second,
		MaxRetries:     3,
		BackoffBase:    time.Millisecond,
		BackoffMax:     5 * time.Millisecond,
	}
}

// 503 两次后 200，调用方拿到成功响应，上游共收到 3 次请求
func TestRetryThenSuccess(t *testing.T) {
	var attempts int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&attempts, 1)
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr := New(testConfig("mock"))
	body, err := tr.Do(context.Background(), "TestOp", Request{Method: "GET", URL: srv.URL})

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int64(3), atomic.LoadInt64(&attempts))
}

// 404 不可重试，只打一次，返回携带状态码的 TransportError
func TestNotFoundNoRetry(t *testing.T) {
	var attempts int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tr := New(testConfig("mock"))
	_, err := tr.Do(context.Background(), "TestOp", Request{Method: "GET", URL: srv.URL})

	var te *platform.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
	assert.Equal(t, int64(1), atomic.LoadInt64(&attempts))
}

func TestRetriesExhausted(t *testing.T) {
	var attempts int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := New(testConfig("mock"))
	_, err := tr.Do(context.Background(), "TestOp", Request{Method: "GET", URL: srv.URL})

	var te *platform.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)
	// 首次 + 3 次重试
	assert.Equal(t, int64(4), atomic.LoadInt64(&attempts))
}

// 命中反爬特征返回 BotDetectionError 并轮换出口身份
func TestBotDetectionRotatesIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>Access Denied - please complete the CAPTCHA</body></html>`))
	}))
	defer srv.Close()

	cfg := testConfig("mock")
	cfg.UserAgents = []string{"ua-one", "ua-two"}
	tr := New(cfg)

	before := tr.CurrentUserAgent()
	_, err := tr.Do(context.Background(), "TestOp", Request{Method: "GET", URL: srv.URL})

	var bde *platform.BotDetectionError
	require.ErrorAs(t, err, &bde)
	assert.NotEmpty(t, bde.Signature)
	assert.NotEqual(t, before, tr.CurrentUserAgent(), "拦截后应轮换 User-Agent")
}

func TestInvalidMethod(t *testing.T) {
	tr := New(testConfig("mock"))
	_, err := tr.Do(context.Background(), "TestOp", Request{Method: "PATCH", URL: "https://example.com"})

	var te *platform.TransportError
	require.ErrorAs(t, err, &te)
}

func TestRelativeURLRejected(t *testing.T) {
	tr := New(testConfig("mock"))
	_, err := tr.Do(context.Background(), "TestOp", Request{Method: "GET", URL: "/users/alice"})

	var te *platform.TransportError
	require.ErrorAs(t, err, &te)
}

func TestConnectionErrorWrapped(t *testing.T) {
	cfg := testConfig("mock")
	cfg.MaxRetries = 1
	tr := New(cfg)

	// 不可达端口
	_, err := tr.Do(context.Background(), "TestOp", Request{Method: "GET", URL: "http://127.0.0.1:1"})

	var te *platform.TransportError
	require.ErrorAs(t, err, &te)
	assert.NotNil(t, errors.Unwrap(te))
}

func TestQueryAndHeadersForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "global", r.URL.Query().Get("region"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := New(testConfig("mock"))
	_, err := tr.Do(context.Background(), "TestOp", Request{
		Method:  "GET",
		URL:     srv.URL,
		Query:   map[string]string{"region": "global"},
		Headers: map[string]string{"Authorization": "Bearer test-token"},
	})
	require.NoError(t, err)
}
