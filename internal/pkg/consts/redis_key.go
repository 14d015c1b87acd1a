package consts

const (
	MetricsHistoryKey  = "metrics:history:"
	InsightKey         = "insight:"
	FetchTaskStatusKey = "task:fetch:status:"
	APIRateKey         = "api:rate:"
)

const (
	SnapshotJobLock = "lock:job:snapshot"
	TrendingJobLock = "lock:job:trending:"
)
