// Package router 管理路由配置，将路径绑定到 handle 包的处理器.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/dandelion/pkg/configs"
	"github.com/yeisme/dandelion/pkg/internal/handle"
	"github.com/yeisme/dandelion/pkg/internal/session"
)

// Register 注册全部路由.
// 会话存储与配置由应用层注入，router 只做绑定.
func Register(engine *gin.Engine, store *session.Store, cfg *configs.AppConfig) {
	engine.GET("/", handle.Home(store, cfg.Session))
	engine.GET("/healthz", handle.Healthz)

	RegisterAuthRoutes(engine, store, cfg)
	RegisterFilesRoutes(engine, store, cfg)
}
