package fansly

import (
	"Fanscope/internal/model"
	"Fanscope/internal/platform"
	"Fanscope/internal/platform/cache"
	"Fanscope/internal/platform/ratelimit"
	"Fanscope/internal/platform/transport"
	"context"
	"errors"
	log "log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/goccy/go-json"
)

const platformName = "fansly"

// 详情页标题补抓的上限，避免一次趋势查询放大出太多请求
const maxDetailFetches = 3

// Client Fansly 适配器
// 指标走 JSON 接口；趋势页没有公开接口，抓 HTML 解析，
// 命中反爬拦截时回退到无头浏览器渲染
type Client struct {
	cfg       platform.ClientConfig
	transport *transport.Transport
	limiter   ratelimit.Limiter
	cache     *cache.Cache
	browser   *transport.BrowserFetcher
}

// New browser 可为 nil，此时拦截直接上抛不做浏览器回退
func New(cfg platform.ClientConfig, browser *transport.BrowserFetcher) *Client {
	cfg.Platform = platformName
	cfg = cfg.Normalize()
	return &Client{
		cfg:       cfg,
		transport: transport.New(cfg),
		limiter:   ratelimit.New(cfg.RateAlgorithm, cfg.RateLimit, cfg.RateWindow),
		cache:     cache.New(time.Minute),
		browser:   browser,
	}
}

func (c *Client) Platform() string {
	return platformName
}

func (c *Client) gate(ctx context.Context) error {
	if platform.IsBlocking(ctx) {
		return c.limiter.Wait(ctx, platformName)
	}
	if !c.limiter.Allow(platformName) {
		return &platform.RateLimitExceededError{Platform: platformName, Key: platformName}
	}
	return nil
}

type accountPayload struct {
	Success  bool `json:"success"`
	Response []struct {
		ID            string   `json:"id"`
		Username      string   `json:"username"`
		FollowCount   *int     `json:"followCount"`
		LikeCount     *int     `json:"likeCount"`
		CommentCount  *int     `json:"commentCount"`
		EarningsTotal *float64 `json:"earningsTotal"`
	} `json:"response"`
}

func (c *Client) GetCreatorMetrics(ctx context.Context, identifier string) (*model.CreatorMetrics, error) {
	endpoint := c.cfg.BaseURL + "/api/v1/account"
	params := map[string]string{"usernames": identifier}
	key := cache.Key("GET", endpoint, params)

	v, err := c.cache.GetOrCompute(ctx, key, c.cfg.MetricsTTL, func(ctx context.Context) (interface{}, error) {
		if err := c.gate(ctx); err != nil {
			return nil, err
		}

		headers := map[string]string{}
		if c.cfg.Token != "" {
			headers["Authorization"] = "Bearer " + c.cfg.Token
		}
		body, err := c.transport.Do(ctx, "GetCreatorMetrics", transport.Request{
			Method:  "GET",
			URL:     endpoint,
			Query:   params,
			Headers: headers,
		})
		if err != nil {
			return nil, platform.MapNotFound(err, platformName, identifier)
		}

		var raw accountPayload
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, platform.NewParseError(platformName, "GetCreatorMetrics", body, err)
		}
		if !raw.Success || len(raw.Response) == 0 {
			return nil, &platform.NotFoundError{Platform: platformName, Identifier: identifier}
		}

		acc := raw.Response[0]
		m := &model.CreatorMetrics{
			Platform:   platformName,
			ExternalID: acc.ID,
			Username:   acc.Username,
			Earnings:   acc.EarningsTotal,
			CapturedAt: time.Now(),
		}
		if m.ExternalID == "" {
			m.ExternalID = identifier
		}

		missing := make([]string, 0, 3)
		if acc.FollowCount != nil {
			m.Followers = *acc.FollowCount
		} else {
			missing = append(missing, "followCount")
		}
		if acc.LikeCount != nil {
			m.Likes = *acc.LikeCount
		} else {
			missing = append(missing, "likeCount")
		}
		if acc.CommentCount != nil {
			m.Comments = *acc.CommentCount
		} else {
			missing = append(missing, "commentCount")
		}
		if len(missing) > 0 {
			log.WarnContext(ctx, "Upstream response missing fields",
				log.String("platform", platformName),
				log.String("identifier", identifier),
				log.Any("missing", missing),
			)
		}
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.CreatorMetrics), nil
}

func (c *Client) GetTrendingContent(ctx context.Context, region string) ([]*model.TrendingContentItem, error) {
	if region == "" {
		region = "global"
	}
	endpoint := c.cfg.BaseURL + "/explore/trending"
	params := map[string]string{"region": region}
	key := cache.Key("GET", endpoint, params)

	v, err := c.cache.GetOrCompute(ctx, key, c.cfg.TrendingTTL, func(ctx context.Context) (interface{}, error) {
		if err := c.gate(ctx); err != nil {
			return nil, err
		}

		html, err := c.fetchTrendingHTML(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}
		return c.parseTrending(ctx, html, region)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*model.TrendingContentItem), nil
}

// fetchTrendingHTML 常规抓取，拦截时回退浏览器渲染
func (c *Client) fetchTrendingHTML(ctx context.Context, endpoint string, params map[string]string) (string, error) {
	body, err := c.transport.Do(ctx, "GetTrendingContent", transport.Request{
		Method:  "GET",
		URL:     endpoint,
		Query:   params,
		Headers: map[string]string{"Accept": "text/html"},
	})
	if err == nil {
		return string(body), nil
	}

	var bde *platform.BotDetectionError
	if !errors.As(err, &bde) || c.browser == nil {
		return "", err
	}

	log.WarnContext(ctx, "Falling back to browser fetch",
		log.String("platform", platformName),
		log.String("signature", bde.Signature),
	)
	return c.browser.FetchHTML(ctx, endpoint+"?region="+params["region"])
}

func (c *Client) parseTrending(ctx context.Context, html, region string) ([]*model.TrendingContentItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, platform.NewParseError(platformName, "GetTrendingContent", []byte(html), err)
	}

	items := make([]*model.TrendingContentItem, 0)
	detailFetches := 0

	doc.Find("div.feed-item").Each(func(_ int, card *goquery.Selection) {
		item := &model.TrendingContentItem{
			Title:       strings.TrimSpace(card.Find(".item-title").Text()),
			ContentType: cardContentType(card),
			Likes:       parseCount(card.Find(".like-count").Text()),
			Comments:    parseCount(card.Find(".comment-count").Text()),
			Region:      region,
		}
		if href, ok := card.Find("a.item-link").Attr("href"); ok {
			item.URL = absoluteURL(c.cfg.BaseURL, href)
		}

		// 图片卡片经常没有标题，从详情页提正文标题，有数量上限
		if item.Title == "" && item.URL != "" && detailFetches < maxDetailFetches {
			detailFetches++
			if title := c.fetchDetailTitle(ctx, item.URL); title != "" {
				item.Title = title
			}
		}

		items = append(items, item)
	})

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EngagementScore() > items[j].EngagementScore()
	})
	return items, nil
}

// fetchDetailTitle 用 readability 从详情页抽取标题，失败只告警
func (c *Client) fetchDetailTitle(ctx context.Context, pageURL string) string {
	body, err := c.transport.Do(ctx, "FetchDetail", transport.Request{
		Method:  "GET",
		URL:     pageURL,
		Headers: map[string]string{"Accept": "text/html"},
	})
	if err != nil {
		log.WarnContext(ctx, "Detail page fetch failed",
			log.String("platform", platformName),
			log.String("url", pageURL),
			log.Any("err", err),
		)
		return ""
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(string(body)), parsed)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.Title)
}

func cardContentType(card *goquery.Selection) string {
	switch {
	case card.HasClass("type-video"):
		return model.ContentTypeVideo
	case card.HasClass("type-image"):
		return model.ContentTypeImage
	case card.HasClass("type-live"):
		return model.ContentTypeLive
	default:
		return model.ContentTypePost
	}
}

// parseCount 解析 "1,234" / "1.2k" / "3m" 形式的计数
func parseCount(s string) int {
	s = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	if s == "" {
		return 0
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult = 1_000
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult = 1_000_000
		s = strings.TrimSuffix(s, "m")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f * mult)
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return base + href
}

func (c *Client) GenerateRecommendations(metrics *model.CreatorMetrics) []platform.Recommendation {
	recs := platform.DefaultRecommendations(metrics)
	if metrics != nil && metrics.Earnings == nil {
		recs = append(recs, platform.Recommendation{
			Category: "monetization",
			Action:   "Fansly 支持多档订阅，建议配置入门档位吸引首批付费粉丝",
			Priority: platform.PriorityMedium,
		})
	}
	return recs
}

var _ platform.Client = (*Client)(nil)
