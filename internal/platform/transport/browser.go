package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher 无头浏览器兜底抓取
// 常规请求持续命中反爬拦截时，用真实浏览器引擎渲染页面拿 HTML
type BrowserFetcher struct {
	browserCtx context.Context
	cancel     context.CancelFunc
}

// NewBrowserFetcher 启动浏览器引擎，进程内复用同一实例
func NewBrowserFetcher(userAgent, proxy string) (*BrowserFetcher, error) {
	if userAgent == "" {
		userAgent = defaultUserAgents[0]
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.UserAgent(userAgent),
	)
	if proxy != "" {
		opts = append(opts, chromedp.ProxyServer(proxy))
	}

	allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		return nil, fmt.Errorf("浏览器引擎启动失败: %w", err)
	}

	return &BrowserFetcher{browserCtx: browserCtx, cancel: cancel}, nil
}

// FetchHTML 渲染页面并返回完整 HTML
func (b *BrowserFetcher) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	taskCtx, taskCancel := context.WithTimeout(b.browserCtx, 30*time.Second)
	defer taskCancel()

	// 外层调用取消时同步取消渲染
	stop := context.AfterFunc(ctx, taskCancel)
	defer stop()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("页面渲染失败 %s: %w", pageURL, err)
	}
	return html, nil
}

// Close 关闭浏览器引擎
func (b *BrowserFetcher) Close() {
	b.cancel()
}
