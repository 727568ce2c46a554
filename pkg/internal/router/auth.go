package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/dandelion/pkg/configs"
	"github.com/yeisme/dandelion/pkg/internal/handle"
	"github.com/yeisme/dandelion/pkg/internal/session"
	"github.com/yeisme/dandelion/pkg/middleware"
)

// RegisterAuthRoutes 注册登录、注册、登出路由.
// 登录提交按客户端 IP 限流，挡住凭据猜测.
func RegisterAuthRoutes(engine *gin.Engine, store *session.Store, cfg *configs.AppConfig) {
	engine.GET("/login", handle.LoginForm(cfg.Session))
	engine.POST("/login",
		middleware.RateLimitMiddleware(cfg.RateLimit),
		handle.LoginSubmit(store, cfg.Session),
	)

	engine.GET("/register", handle.RegisterForm())
	engine.POST("/register", handle.RegisterSubmit())

	engine.GET("/logout", handle.Logout(store, cfg.Session))
}
