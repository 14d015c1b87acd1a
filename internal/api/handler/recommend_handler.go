package handler

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type RecommendHandler struct {
	recommendSvc service.RecommendService
}

func NewRecommendHandler(recommendSvc service.RecommendService) *RecommendHandler {
	return &RecommendHandler{
		recommendSvc: recommendSvc,
	}
}

func (s *RecommendHandler) GetRecommendations(c *gin.Context) {
	var query dto.MetricsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.recommendSvc.GetRecommendations(c.Request.Context(), query.Platform, query.Identifier)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
