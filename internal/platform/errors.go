package platform

import (
	"errors"
	"fmt"
)

// TransportError 重试耗尽后的网络/HTTP失败，由调用方决定降级或上抛
type TransportError struct {
	Platform   string
	Operation  string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: 上游请求失败, status=%d", e.Platform, e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: 上游请求失败: %v", e.Platform, e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BotDetectionError 上游识别为机器人并拦截，区别于一般失败，
// 调用方可在身份轮换后选择重试或放弃
type BotDetectionError struct {
	Platform  string
	Operation string
	Signature string
}

func (e *BotDetectionError) Error() string {
	return fmt.Sprintf("%s %s: 命中反爬拦截 (%s)", e.Platform, e.Operation, e.Signature)
}

// RateLimitExceededError 非阻塞限流检查失败时快速失败使用
type RateLimitExceededError struct {
	Platform string
	Key      string
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("%s: 请求超出限流配额, key=%s", e.Platform, e.Key)
}

// NotFoundError 标识符在上游不存在，不重试
type NotFoundError struct {
	Platform   string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: 账号不存在: %s", e.Platform, e.Identifier)
}

// ParseError 上游响应结构变化或不符合预期
// Payload 记录截断后的原始内容，便于排查
type ParseError struct {
	Platform  string
	Operation string
	Payload   string
	Err       error
}

const parsePayloadLimit = 1000

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: 响应解析失败: %v", e.Platform, e.Operation, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError 构造解析错误，原始内容截断到 1000 字符
func NewParseError(platform, operation string, payload []byte, err error) *ParseError {
	p := string(payload)
	if len(p) > parsePayloadLimit {
		p = p[:parsePayloadLimit] + "...[truncated]"
	}
	return &ParseError{Platform: platform, Operation: operation, Payload: p, Err: err}
}

// MapNotFound 将 404 的传输错误转成 NotFoundError，其余原样返回
// 各平台适配器在解析身份类接口的错误时复用
func MapNotFound(err error, platformName, identifier string) error {
	var te *TransportError
	if errors.As(err, &te) && te.StatusCode == 404 {
		return &NotFoundError{Platform: platformName, Identifier: identifier}
	}
	return err
}
