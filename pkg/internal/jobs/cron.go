// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	"github.com/yeisme/dandelion/pkg/configs"
	ctxPkg "github.com/yeisme/dandelion/pkg/context"
	"github.com/yeisme/dandelion/pkg/internal/model"
	"github.com/yeisme/dandelion/pkg/internal/service"
	"github.com/yeisme/dandelion/pkg/internal/session"
	"github.com/yeisme/dandelion/pkg/internal/storage"
	"github.com/yeisme/dandelion/pkg/log"
	"github.com/yeisme/dandelion/pkg/metrics"
	"github.com/yeisme/dandelion/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 每 30 分钟清理过期会话（内存等惰性过期的 KV 后端需要主动清扫）
//   - 每天 03:20 扫描上传目录里没有登记行的孤儿文件
//   - 每 5 分钟刷新文件总数指标
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	_ = sched.AddCron(JobSessionSweep, CronSessionSweep, func(ctx context.Context) {
		runSessionSweep(ctx, mgr)
	}, baseCtx)

	_ = sched.AddCron(JobBlobOrphanScan, CronBlobOrphanScan, func(ctx context.Context) {
		runBlobOrphanScan(ctx, mgr)
	}, baseCtx)

	_ = sched.AddCron(JobMetricsRefresh, CronMetricsRefresh, func(ctx context.Context) {
		runMetricsRefresh(ctx)
	}, baseCtx)

	return nil
}

// runSessionSweep 清理 KV 后端中已过期的会话键。
func runSessionSweep(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", JobSessionSweep).Logger()

	kvClient := mgr.GetKVClient()
	if kvClient == nil {
		l.Error().Msg("kv not initialized")
		return
	}

	store := session.NewStore(kvClient, configs.GetConfig().Session.TTL())

	removed, err := store.Sweep(ctx)
	if err != nil {
		l.Error().Err(err).Msg("session sweep failed")
		return
	}

	if removed > 0 {
		l.Info().Int("removed", removed).Msg("swept expired sessions")
	}
}

// runBlobOrphanScan 对比上传目录与登记表，上报没有登记行的磁盘文件。
// 只上报不删除：孤儿可能来自手工放置或尚未提交的并发上传。
func runBlobOrphanScan(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", JobBlobOrphanScan).Logger()

	blobClient := mgr.GetBlobClient()
	dbClient := mgr.GetDBClient()

	if blobClient == nil || dbClient == nil {
		l.Error().Msg("storage not initialized")
		return
	}

	names, err := blobClient.Names(ctx)
	if err != nil {
		l.Error().Err(err).Msg("list blobs failed")
		return
	}

	var registered []string
	if err := dbClient.WithContext(ctx).Model(&model.File{}).Pluck("file_name", &registered).Error; err != nil {
		l.Error().Err(err).Msg("list registered files failed")
		return
	}

	known := make(map[string]struct{}, len(registered))
	for _, n := range registered {
		known[n] = struct{}{}
	}

	orphans := 0

	for _, n := range names {
		if _, ok := known[n]; ok {
			continue
		}

		orphans++

		l.Warn().Str("name", n).Msg("orphan blob on disk")
	}

	if orphans > 0 {
		l.Info().Int("orphans", orphans).Int("on_disk", len(names)).Msg("orphan scan done")
	}
}

// runMetricsRefresh 把登记表中的文件总数刷到 Prometheus 指标上。
func runMetricsRefresh(ctx context.Context) {
	l := log.Logger().With().Str("job", JobMetricsRefresh).Logger()

	fs := service.NewFileService(ctx)

	count, err := fs.Count(ctx)
	if err != nil {
		l.Error().Err(err).Msg("count files failed")
		return
	}

	metrics.FilesStored.Set(float64(count))
}
