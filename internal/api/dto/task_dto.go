package dto

type SubmitTaskReq struct {
	Platform   string `json:"platform" binding:"required"`
	Identifier string `json:"identifier" binding:"required"`
}

type SubmitTaskResp struct {
	TaskID string `json:"task_id"`
}

type BackfillResp struct {
	TaskIDs []string `json:"task_ids"`
}

type TaskStatusResp struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}
