package handler

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type TrendingHandler struct {
	trendingSvc service.TrendingService
}

func NewTrendingHandler(trendingSvc service.TrendingService) *TrendingHandler {
	return &TrendingHandler{
		trendingSvc: trendingSvc,
	}
}

func (s *TrendingHandler) GetTrending(c *gin.Context) {
	var query dto.TrendingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	items, err := s.trendingSvc.GetTrending(c.Request.Context(), query.Platform, query.Region, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}
