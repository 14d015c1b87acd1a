package llm

import (
	"Fanscope/internal/api/config"
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// GenerateInsight 根据一段指标摘要生成运营建议文本
// LLM 未启用时返回空串，调用方回退到规则建议
func GenerateInsight(ctx context.Context, platform, username string, summary string) (string, error) {
	if !config.Cfg.LLM.Enable || llmClient == nil {
		return "", nil
	}

	userPrompt := fmt.Sprintf("平台: %s\n创作者: %s\n%s", platform, username, summary)

	resp, err := fetchModel(ctx, insightPrompt, userPrompt, 0.7)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty llm response")
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
