package kafka

import (
	"Fanscope/internal/platform"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "账号不存在不重试",
			err:  &platform.NotFoundError{Platform: "reddit", Identifier: "ghost"},
			want: false,
		},
		{
			name: "解析失败不重试",
			err:  &platform.ParseError{Platform: "onlyfans", Operation: "GetCreatorMetrics"},
			want: false,
		},
		{
			name: "上游 4xx 不重试",
			err:  &platform.TransportError{Platform: "fansly", StatusCode: 403},
			want: false,
		},
		{
			name: "上游 5xx 可重试",
			err:  &platform.TransportError{Platform: "fansly", StatusCode: 503},
			want: true,
		},
		{
			name: "无状态码的网络错误可重试",
			err:  &platform.TransportError{Platform: "reddit", Err: errors.New("connection reset")},
			want: true,
		},
		{
			name: "包装后的错误也能识别",
			err:  fmt.Errorf("fetch: %w", &platform.NotFoundError{Platform: "reddit", Identifier: "ghost"}),
			want: false,
		},
		{
			name: "未知错误默认可重试",
			err:  errors.New("boom"),
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, retryable(tc.err))
		})
	}
}
