package handler

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportSvc: exportSvc,
	}
}

func (s *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	record, err := s.exportSvc.Export(c.Request.Context(), userID, req.Platform, req.ExternalID, req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, record)
}

func (s *ExportHandler) ListExports(c *gin.Context) {
	userID := c.GetUint64("user_id")
	records, err := s.exportSvc.ListExports(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, records)
}
