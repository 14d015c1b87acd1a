package cron

import (
	"Fanscope/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine             *cron.Cron
	metricsSnapshotJob *job.MetricsSnapshotJob
	trendingRefreshJob *job.TrendingRefreshJob
}

func NewCronManager(metricsSnapshotJob *job.MetricsSnapshotJob, trendingRefreshJob *job.TrendingRefreshJob) *Manager {
	return &Manager{
		engine:             cron.New(cron.WithSeconds()),
		metricsSnapshotJob: metricsSnapshotJob,
		trendingRefreshJob: trendingRefreshJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.metricsSnapshotJob); err != nil {
		return err
	}
	// 趋势缓存半小时刷一轮
	if _, err := s.engine.AddJob("0 */30 * * * *", s.trendingRefreshJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
