package platform

import "time"

// ClientConfig 单个平台的静态配置，构造后不再修改，每进程每平台一份
type ClientConfig struct {
	Platform       string
	BaseURL        string
	Token          string
	RequestTimeout time.Duration

	// 重试策略
	MaxRetries    int
	BackoffBase   time.Duration
	BackoffMax    time.Duration

	// 限流
	RateAlgorithm string
	RateLimit     int
	RateWindow    time.Duration

	// 缓存 TTL，趋势内容波动大所以更短
	MetricsTTL  time.Duration
	TrendingTTL time.Duration

	// 反爬身份池
	UserAgents []string
	Proxies    []string
}

// 未配置时的兜底值
const (
	DefaultTimeout     = 15 * time.Second
	DefaultMaxRetries  = 3
	DefaultBackoffBase = 500 * time.Millisecond
	DefaultBackoffMax  = 10 * time.Second
	DefaultRateLimit   = 60
	DefaultRateWindow  = time.Minute
	DefaultMetricsTTL  = 30 * time.Minute
	DefaultTrendingTTL = 5 * time.Minute
)

// Normalize 填充未设置的字段
func (c ClientConfig) Normalize() ClientConfig {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	if c.BackoffMax <= 0 {
		c.BackoffMax = DefaultBackoffMax
	}
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.RateWindow <= 0 {
		c.RateWindow = DefaultRateWindow
	}
	if c.MetricsTTL <= 0 {
		c.MetricsTTL = DefaultMetricsTTL
	}
	if c.TrendingTTL <= 0 {
		c.TrendingTTL = DefaultTrendingTTL
	}
	return c
}
