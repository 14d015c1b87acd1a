package transport

import (
	"Fanscope/internal/platform"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// 默认反爬拦截特征，可被配置覆盖
var defaultBotSignatures = []string{
	"captcha",
	"access denied",
	"unusual traffic",
	"cf-chl",
	"just a moment",
}

// 默认出口身份池
var defaultUserAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Request 一次上游请求的描述
type Request struct {
	Method  string
	URL     string
	Query   map[string]string
	Headers map[string]string
	Body    interface{}
}

// Transport 带统一韧性语义的 HTTP 出口
// 连接复用、超时、429/5xx 指数退避重试、反爬身份轮换都收敛在这一层，
// 上层适配器只关心业务路径和解析
type Transport struct {
	platform   string
	client     *resty.Client
	signatures []string

	mu         sync.Mutex
	idx        int
	userAgents []string
	proxies    []string
}

func New(cfg platform.ClientConfig) *Transport {
	cfg = cfg.Normalize()

	userAgents := cfg.UserAgents
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}

	client := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.BackoffBase).
		SetRetryMaxWaitTime(cfg.BackoffMax).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgents[0]).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// 连接/超时错误重试；429 和 5xx 重试；其余 4xx 立即失败
			if err != nil {
				return true
			}
			return retryableStatus(r.StatusCode())
		})

	t := &Transport{
		platform:   cfg.Platform,
		client:     client,
		signatures: defaultBotSignatures,
		userAgents: userAgents,
		proxies:    cfg.Proxies,
	}
	if len(t.proxies) > 0 {
		t.client.SetProxy(t.proxies[0])
	}
	return t
}

func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// Do 发起一次请求，重试耗尽或状态异常时返回类型化错误
// 请求与响应按成功 INFO / 失败 ERROR 记录，永不记录凭据
func (t *Transport) Do(ctx context.Context, operation string, r Request) ([]byte, error) {
	if err := validate(r); err != nil {
		return nil, &platform.TransportError{Platform: t.platform, Operation: operation, Err: err}
	}

	req := t.client.R().SetContext(ctx)
	if len(r.Query) > 0 {
		req.SetQueryParams(r.Query)
	}
	if len(r.Headers) > 0 {
		req.SetHeaders(r.Headers)
	}
	if r.Body != nil {
		req.SetBody(r.Body)
	}

	start := time.Now()
	resp, err := req.Execute(r.Method, r.URL)
	elapsed := time.Since(start)

	fields := []any{
		log.String("platform", t.platform),
		log.String("operation", operation),
		log.String("method", r.Method),
		log.String("url", r.URL),
		log.Duration("latency", elapsed),
	}

	if err != nil {
		log.ErrorContext(ctx, "Platform request failed", append(fields, log.Any("err", err))...)
		return nil, &platform.TransportError{Platform: t.platform, Operation: operation, Err: err}
	}

	body := resp.Body()

	// 先于状态码判断：带验证码的 403/200 页面是拦截而不是一般失败
	if sig := t.matchBotSignature(body); sig != "" {
		t.RotateIdentity()
		log.WarnContext(ctx, "Platform bot detection triggered",
			append(fields, log.String("signature", sig))...)
		return nil, &platform.BotDetectionError{Platform: t.platform, Operation: operation, Signature: sig}
	}

	if resp.StatusCode() >= 400 {
		log.ErrorContext(ctx, "Platform request failed",
			append(fields, log.Int("status", resp.StatusCode()))...)
		return nil, &platform.TransportError{Platform: t.platform, Operation: operation, StatusCode: resp.StatusCode()}
	}

	log.InfoContext(ctx, "Platform request",
		append(fields, log.Int("status", resp.StatusCode()))...)
	return body, nil
}

func validate(r Request) error {
	switch r.Method {
	case "GET", "POST", "PUT", "DELETE":
	default:
		return fmt.Errorf("不支持的请求方法: %s", r.Method)
	}
	if !strings.HasPrefix(r.URL, "http://") && !strings.HasPrefix(r.URL, "https://") {
		return fmt.Errorf("url 必须是绝对地址: %s", r.URL)
	}
	return nil
}

func (t *Transport) matchBotSignature(body []byte) string {
	// 大响应只检查前 4KB，拦截页都很小
	limit := len(body)
	if limit > 4096 {
		limit = 4096
	}
	lower := strings.ToLower(string(body[:limit]))
	for _, sig := range t.signatures {
		if strings.Contains(lower, sig) {
			return sig
		}
	}
	return ""
}

// RotateIdentity 轮换出口 User-Agent 与代理
func (t *Transport) RotateIdentity() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.idx++
	t.client.SetHeader("User-Agent", t.userAgents[t.idx%len(t.userAgents)])
	if len(t.proxies) > 0 {
		t.client.SetProxy(t.proxies[t.idx%len(t.proxies)])
	}
}

// CurrentUserAgent 当前出口 UA
func (t *Transport) CurrentUserAgent() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.userAgents[t.idx%len(t.userAgents)]
}
