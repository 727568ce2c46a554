// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/dandelion/pkg/configs"
	"github.com/yeisme/dandelion/pkg/internal/jobs"
	"github.com/yeisme/dandelion/pkg/internal/model"
	"github.com/yeisme/dandelion/pkg/internal/router"
	"github.com/yeisme/dandelion/pkg/internal/session"
	"github.com/yeisme/dandelion/pkg/internal/storage"
	"github.com/yeisme/dandelion/pkg/log"
	"github.com/yeisme/dandelion/pkg/metrics"
	"github.com/yeisme/dandelion/pkg/middleware"
	"github.com/yeisme/dandelion/pkg/scheduler"
)

type App struct {
	Engine  *gin.Engine
	config  *configs.AppConfig
	manager *storage.Manager
	sched   *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// 建表放在存储就绪之后、接收请求之前
	if err := manager.GetDBClient().AutoMigrate(&model.User{}, &model.File{}, &model.FileMeta{}); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		cors.Default(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.GinLoggerMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.StorageMiddleware(manager),
		middleware.NoCacheMiddleware(),
	)

	// 服务端渲染的页面模板
	engine.LoadHTMLGlob(config.Server.Templates)

	store := session.NewStore(manager.GetKVClient(), config.Session.TTL())

	router.Register(engine, store, config)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	sched.Start()

	return &App{
		Engine:  engine,
		config:  config,
		manager: manager,
		sched:   sched,
	}
}

func (a *App) Run() error {
	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}

// Close 停止调度器并释放存储资源.
func (a *App) Close() {
	if a.sched != nil {
		if err := a.sched.Stop(); err != nil {
			log.Logger().Warn().Err(err).Msg("stop scheduler failed")
		}
	}

	if a.manager != nil {
		if err := a.manager.Close(); err != nil {
			log.Logger().Warn().Err(err).Msg("close storage failed")
		}
	}
}
