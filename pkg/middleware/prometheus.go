package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/dandelion/pkg/metrics"
)

// PrometheusMiddleware Prometheus监控中间件.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		// 执行下一个中间件/处理器
		c.Next()

		// 路由模板而不是原始路径，避免 /files/123/download 撑爆标签基数
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		// 记录请求计数
		metrics.RequestCounter.WithLabelValues(method, endpoint).Inc()

		// 记录请求持续时间
		duration := time.Since(start).Seconds()
		metrics.RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}
