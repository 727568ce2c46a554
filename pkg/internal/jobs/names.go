package jobs

// 任务名称常量.
const (
	JobSessionSweep   = "session.sweep"
	JobBlobOrphanScan = "blob.orphan_scan"
	JobMetricsRefresh = "metrics.refresh"
)

// 任务 cron 表达式常量.
const (
	CronSessionSweep   = "*/30 * * * *" // 每 30 分钟
	CronBlobOrphanScan = "20 3 * * *"   // 每天 03:20
	CronMetricsRefresh = "*/5 * * * *"  // 每 5 分钟
)
