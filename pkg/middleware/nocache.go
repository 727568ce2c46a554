package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoCacheMiddleware 给动态页面加禁止缓存的响应头.
// 登录后的文件列表不能被浏览器或中间代理缓存，登出后回退键不该看到旧数据.
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		c.Header("Pragma", "no-cache")

		c.Next()
	}
}
