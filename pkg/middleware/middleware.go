// Package middleware 提供 Gin 中间件：请求日志、指标、限流、会话校验、
// 存储注入和缓存控制.
package middleware

// gin 上下文键，由会话中间件写入，handler 读取.
const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"
	CtxSessionKey  = "session"
)
