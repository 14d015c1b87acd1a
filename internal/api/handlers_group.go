package api

import "Fanscope/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler      *handler.UserHandler
	AccountHandler   *handler.AccountHandler
	MetricsHandler   *handler.MetricsHandler
	TrendingHandler  *handler.TrendingHandler
	RecommendHandler *handler.RecommendHandler
	ExportHandler    *handler.ExportHandler
	TaskHandler      *handler.TaskHandler
}
