package onlyfans

import (
	"Fanscope/internal/model"
	"Fanscope/internal/platform"
	"Fanscope/internal/platform/cache"
	"Fanscope/internal/platform/ratelimit"
	"Fanscope/internal/platform/transport"
	"context"
	log "log/slog"
	"net/url"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

const platformName = "onlyfans"

// Client OnlyFans 适配器，也是平台客户端的参考实现
// 独占一份 Transport + Limiter + Cache，与其他平台不共享状态
type Client struct {
	cfg       platform.ClientConfig
	transport *transport.Transport
	limiter   ratelimit.Limiter
	cache     *cache.Cache
}

func New(cfg platform.ClientConfig) *Client {
	cfg.Platform = platformName
	cfg = cfg.Normalize()
	return &Client{
		cfg:       cfg,
		transport: transport.New(cfg),
		limiter:   ratelimit.New(cfg.RateAlgorithm, cfg.RateLimit, cfg.RateWindow),
		cache:     cache.New(time.Minute),
	}
}

func (c *Client) Platform() string {
	return platformName
}

// gate 限流闸口：交互请求快速失败，批量回填阻塞等待
func (c *Client) gate(ctx context.Context) error {
	if platform.IsBlocking(ctx) {
		return c.limiter.Wait(ctx, platformName)
	}
	if !c.limiter.Allow(platformName) {
		return &platform.RateLimitExceededError{Platform: platformName, Key: platformName}
	}
	return nil
}

func (c *Client) authHeaders() map[string]string {
	if c.cfg.Token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.cfg.Token}
}

// 上游用户接口响应，指针字段用于区分缺失与 0
type userPayload struct {
	ID             *int64   `json:"id"`
	Username       string   `json:"username"`
	FollowersCount *int     `json:"followers_count"`
	FavoritesCount *int     `json:"favorites_count"`
	CommentsCount  *int     `json:"comments_count"`
	TotalEarnings  *float64 `json:"total_earnings"`
	Avatar         string   `json:"avatar"`
}

func (c *Client) GetCreatorMetrics(ctx context.Context, identifier string) (*model.CreatorMetrics, error) {
	endpoint := c.cfg.BaseURL + "/api2/v2/users/" + url.PathEscape(identifier)
	key := cache.Key("GET", endpoint, nil)

	v, err := c.cache.GetOrCompute(ctx, key, c.cfg.MetricsTTL, func(ctx context.Context) (interface{}, error) {
		if err := c.gate(ctx); err != nil {
			return nil, err
		}

		body, err := c.transport.Do(ctx, "GetCreatorMetrics", transport.Request{
			Method:  "GET",
			URL:     endpoint,
			Headers: c.authHeaders(),
		})
		if err != nil {
			return nil, platform.MapNotFound(err, platformName, identifier)
		}

		var raw userPayload
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, platform.NewParseError(platformName, "GetCreatorMetrics", body, err)
		}
		if raw.ID == nil && raw.Username == "" {
			return nil, &platform.NotFoundError{Platform: platformName, Identifier: identifier}
		}

		return c.normalize(ctx, identifier, &raw), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.CreatorMetrics), nil
}

// normalize 缺失的数值字段补 0 并告警，不整体失败
func (c *Client) normalize(ctx context.Context, identifier string, raw *userPayload) *model.CreatorMetrics {
	m := &model.CreatorMetrics{
		Platform:   platformName,
		ExternalID: identifier,
		Username:   raw.Username,
		Earnings:   raw.TotalEarnings,
		CapturedAt: time.Now(),
	}
	if raw.Username == "" {
		m.Username = identifier
	}

	missing := make([]string, 0, 3)
	if raw.FollowersCount != nil {
		m.Followers = *raw.FollowersCount
	} else {
		missing = append(missing, "followers_count")
	}
	if raw.FavoritesCount != nil {
		m.Likes = *raw.FavoritesCount
	} else {
		missing = append(missing, "favorites_count")
	}
	if raw.CommentsCount != nil {
		m.Comments = *raw.CommentsCount
	} else {
		missing = append(missing, "comments_count")
	}

	if len(missing) > 0 {
		log.WarnContext(ctx, "Upstream response missing fields",
			log.String("platform", platformName),
			log.String("identifier", identifier),
			log.Any("missing", missing),
		)
	}
	return m
}

type trendingPayload struct {
	Items []struct {
		Title         string `json:"title"`
		ContentType   string `json:"content_type"`
		LikesCount    int    `json:"likes_count"`
		CommentsCount int    `json:"comments_count"`
		Region        string `json:"region"`
		URL           string `json:"url"`
	} `json:"items"`
}

func (c *Client) GetTrendingContent(ctx context.Context, region string) ([]*model.TrendingContentItem, error) {
	if region == "" {
		region = "global"
	}
	endpoint := c.cfg.BaseURL + "/api2/v2/content/trending"
	params := map[string]string{"region": region}
	key := cache.Key("GET", endpoint, params)

	v, err := c.cache.GetOrCompute(ctx, key, c.cfg.TrendingTTL, func(ctx context.Context) (interface{}, error) {
		if err := c.gate(ctx); err != nil {
			return nil, err
		}

		body, err := c.transport.Do(ctx, "GetTrendingContent", transport.Request{
			Method:  "GET",
			URL:     endpoint,
			Query:   params,
			Headers: c.authHeaders(),
		})
		if err != nil {
			return nil, err
		}

		var raw trendingPayload
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, platform.NewParseError(platformName, "GetTrendingContent", body, err)
		}

		items := make([]*model.TrendingContentItem, 0, len(raw.Items))
		for _, it := range raw.Items {
			contentType := it.ContentType
			if contentType == "" {
				contentType = model.ContentTypePost
			}
			items = append(items, &model.TrendingContentItem{
				Title:       it.Title,
				ContentType: contentType,
				Likes:       it.LikesCount,
				Comments:    it.CommentsCount,
				Region:      it.Region,
				URL:         it.URL,
			})
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].EngagementScore() > items[j].EngagementScore()
		})
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*model.TrendingContentItem), nil
}

func (c *Client) GenerateRecommendations(metrics *model.CreatorMetrics) []platform.Recommendation {
	recs := platform.DefaultRecommendations(metrics)
	if metrics != nil && metrics.Earnings != nil && metrics.Followers >= 500 {
		recs = append(recs, platform.Recommendation{
			Category: "monetization",
			Action:   "尝试分级订阅与限时折扣，OnlyFans 上对转化提升明显",
			Priority: platform.PriorityLow,
		})
	}
	return recs
}

// InvalidateMetrics 账号数据被外部修改后强制下次回源
func (c *Client) InvalidateMetrics(identifier string) {
	endpoint := c.cfg.BaseURL + "/api2/v2/users/" + url.PathEscape(identifier)
	c.cache.Invalidate(cache.Key("GET", endpoint, nil))
}

var _ platform.Client = (*Client)(nil)
