package handler

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	metricsSvc service.MetricsService
}

func NewMetricsHandler(metricsSvc service.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		metricsSvc: metricsSvc,
	}
}

// GetLatest 实时抓取一次指标，客户端缓存兜底
func (s *MetricsHandler) GetLatest(c *gin.Context) {
	var query dto.MetricsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	metric, err := s.metricsSvc.GetLatest(c.Request.Context(), query.Platform, query.Identifier)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toMetricsItem(metric))
}

func (s *MetricsHandler) GetHistory(c *gin.Context) {
	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	history, err := s.metricsSvc.GetHistory(c.Request.Context(), query.Platform, query.ExternalID, query.Days)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.MetricsItem, 0, len(history))
	for _, m := range history {
		items = append(items, toMetricsItem(m))
	}
	response.Success(c, items)
}

func (s *MetricsHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	snapshots, err := s.metricsSvc.SearchSnapshots(c.Request.Context(), query.Keyword, query.Platform, query.From, query.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshots)
}

// toMetricsItem 互动率在出参边界推导
func toMetricsItem(m *model.CreatorMetrics) *dto.MetricsItem {
	return &dto.MetricsItem{
		Platform:       m.Platform,
		ExternalID:     m.ExternalID,
		Username:       m.Username,
		Followers:      m.Followers,
		Likes:          m.Likes,
		Comments:       m.Comments,
		EngagementRate: m.EngagementRate(),
		Earnings:       m.Earnings,
		CapturedAt:     m.CapturedAt,
	}
}
