package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/dandelion/pkg/configs"
	"github.com/yeisme/dandelion/pkg/internal/session"
)

// SessionRequired 校验会话 Cookie，把登录用户写入 gin 上下文.
// 没有有效会话时重定向到 /login，浏览器表单流程友好.
func SessionRequired(store *session.Store, cfg configs.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || id == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()

			return
		}

		sess, err := store.Get(c.Request.Context(), id)
		if err != nil {
			// 过期或被清理的会话，顺手清掉 Cookie
			c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.CookieSecure, true)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()

			return
		}

		c.Set(CtxUserIDKey, sess.UserID)
		c.Set(CtxUsernameKey, sess.Username)
		c.Set(CtxSessionKey, sess)

		c.Next()
	}
}

// CurrentUsername 返回会话中间件写入的登录用户名，未登录返回空串.
func CurrentUsername(c *gin.Context) string {
	if v, ok := c.Get(CtxUsernameKey); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}

	return ""
}
