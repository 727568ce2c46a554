package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/dandelion/pkg/configs"
	"github.com/yeisme/dandelion/pkg/internal/session"
)

// Home 落地页.已登录用户直接进文件列表，其余人看到入口页.
func Home(store *session.Store, cfg configs.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(cfg.CookieName); err == nil && id != "" {
			if _, err := store.Get(c.Request.Context(), id); err == nil {
				c.Redirect(http.StatusSeeOther, "/files/")
				return
			}
		}

		c.HTML(http.StatusOK, tplHome, gin.H{})
	}
}
