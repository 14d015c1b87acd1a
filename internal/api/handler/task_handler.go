package handler

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskSvc service.TaskService
}

func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskSvc: taskSvc,
	}
}

func (s *TaskHandler) Submit(c *gin.Context) {
	var req dto.SubmitTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	taskID, err := s.taskSvc.SubmitFetchTask(c.Request.Context(), userID, req.Platform, req.Identifier)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.SubmitTaskResp{TaskID: taskID})
}

// Backfill 把当前用户的全部绑定账号排队回填
func (s *TaskHandler) Backfill(c *gin.Context) {
	userID := c.GetUint64("user_id")
	taskIDs, err := s.taskSvc.SubmitBackfill(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.BackfillResp{TaskIDs: taskIDs})
}

func (s *TaskHandler) GetStatus(c *gin.Context) {
	taskID := c.Param("task_id")
	if taskID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	status, err := s.taskSvc.GetTaskStatus(c.Request.Context(), taskID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.TaskStatusResp{TaskID: taskID, Status: status})
}
