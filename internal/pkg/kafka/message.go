package kafka

// FetchTaskMessage 异步抓取任务消息
type FetchTaskMessage struct {
	TaskID     string `json:"task_id"`
	Platform   string `json:"platform"`
	Identifier string `json:"identifier"`
	UserID     uint64 `json:"user_id"`
}

// NotifyMessage 通知消息，投递即忘
type NotifyMessage struct {
	UserID uint64 `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}
