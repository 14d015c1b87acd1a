package model

// 趋势内容类型
const (
	ContentTypeVideo = "video"
	ContentTypeImage = "image"
	ContentTypeLive  = "live"
	ContentTypePost  = "post"
)

// TrendingContentItem 一条平台趋势内容，临时数据，每次查询重新生成，不落库
type TrendingContentItem struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Likes       int    `json:"likes"`
	Comments    int    `json:"comments"`
	Region      string `json:"region,omitempty"`
	URL         string `json:"url,omitempty"`
}

// EngagementScore 趋势内容热度分，评论权重高于点赞
func (t *TrendingContentItem) EngagementScore() float64 {
	return float64(t.Likes) + float64(t.Comments)*2
}
