package reddit

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

const platformName = "reddit"

// Client Reddit 适配器，走公开 JSON 接口
type Client struct {
	cfg       platform.ClientConfig
	transport *transport.Transport
	limiter   ratelimit.Limiter
	cache     *cache.Cache
}

func New(cfg platform.ClientConfig) *Client {
	cfg.Platform = platformName
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
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

func (c *Client) gate(ctx context.Context) error {
	if platform.IsBlocking(ctx) {
		return c.limiter.Wait(ctx, platformName)
	}
	if !c.limiter.Allow(platformName) {
		return &platform.RateLimitExceededError{Platform: platformName, Key: platformName}
	}
	return nil
}

type aboutPayload struct {
	Data struct {
		Name         string `json:"name"`
		Subscribers  *int   `json:"subscribers"`
		LinkKarma    *int   `json:"link_karma"`
		CommentKarma *int   `json:"comment_karma"`
		IconImg      string `json:"icon_img"`
	} `json:"data"`
}

func (c *Client) GetCreatorMetrics(ctx context.Context, identifier string) (*model.CreatorMetrics, error) {
	endpoint := c.cfg.BaseURL + "/user/" + url.PathEscape(identifier) + "/about.json"
	key := cache.Key("GET", endpoint, nil)

	v, err := c.cache.GetOrCompute(ctx, key, c.cfg.MetricsTTL, func(ctx context.Context) (interface{}, error) {
		if err := c.gate(ctx); err != nil {
			return nil, err
		}

		body, err := c.transport.Do(ctx, "GetCreatorMetrics", transport.Request{
			Method: "GET",
			URL:    endpoint,
		})
		if err != nil {
			return nil, platform.MapNotFound(err, platformName, identifier)
		}

		var raw aboutPayload
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, platform.NewParseError(platformName, "GetCreatorMetrics", body, err)
		}
		if raw.Data.Name == "" {
			return nil, &platform.NotFoundError{Platform: platformName, Identifier: identifier}
		}

		m := &model.CreatorMetrics{
			Platform:   platformName,
			ExternalID: identifier,
			Username:   raw.Data.Name,
			CapturedAt: time.Now(),
		}

		missing := make([]string, 0, 3)
		if raw.Data.Subscribers != nil {
			m.Followers = *raw.Data.Subscribers
		} else {
			missing = append(missing, "subscribers")
		}
		if raw.Data.LinkKarma != nil {
			m.Likes = *raw.Data.LinkKarma
		} else {
			missing = append(missing, "link_karma")
		}
		if raw.Data.CommentKarma != nil {
			m.Comments = *raw.Data.CommentKarma
		} else {
			missing = append(missing, "comment_karma")
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

type listingPayload struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string `json:"title"`
				Ups         int    `json:"ups"`
				NumComments int    `json:"num_comments"`
				IsVideo     bool   `json:"is_video"`
				PostHint    string `json:"post_hint"`
				Permalink   string `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *Client) GetTrendingContent(ctx context.Context, region string) ([]*model.TrendingContentItem, error) {
	if region == "" {
		region = "global"
	}
	endpoint := c.cfg.BaseURL + "/r/popular/hot.json"
	params := map[string]string{"limit": "50"}
	if region != "global" {
		params["geo_filter"] = region
	}
	key := cache.Key("GET", endpoint, params)

	v, err := c.cache.GetOrCompute(ctx, key, c.cfg.TrendingTTL, func(ctx context.Context) (interface{}, error) {
		if err := c.gate(ctx); err != nil {
			return nil, err
		}

		body, err := c.transport.Do(ctx, "GetTrendingContent", transport.Request{
			Method: "GET",
			URL:    endpoint,
			Query:  params,
		})
		if err != nil {
			return nil, err
		}

		var raw listingPayload
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, platform.NewParseError(platformName, "GetTrendingContent", body, err)
		}

		items := make([]*model.TrendingContentItem, 0, len(raw.Data.Children))
		for _, child := range raw.Data.Children {
			d := child.Data
			items = append(items, &model.TrendingContentItem{
				Title:       d.Title,
				ContentType: contentType(d.IsVideo, d.PostHint),
				Likes:       d.Ups,
				Comments:    d.NumComments,
				Region:      region,
				URL:         c.cfg.BaseURL + d.Permalink,
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

func contentType(isVideo bool, hint string) string {
	switch {
	case isVideo:
		return model.ContentTypeVideo
	case hint == "image":
		return model.ContentTypeImage
	default:
		return model.ContentTypePost
	}
}

func (c *Client) GenerateRecommendations(metrics *model.CreatorMetrics) []platform.Recommendation {
	recs := platform.DefaultRecommendations(metrics)
	if metrics != nil && metrics.Comments > metrics.Likes*2 {
		recs = append(recs, platform.Recommendation{
			Category: "content",
			Action:   "评论karma远高于发帖karma，建议沉淀高赞评论为原创帖",
			Priority: platform.PriorityLow,
		})
	}
	return recs
}

var _ platform.Client = (*Client)(nil)
