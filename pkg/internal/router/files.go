package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/dandelion/pkg/configs"
	"github.com/yeisme/dandelion/pkg/internal/handle"
	"github.com/yeisme/dandelion/pkg/internal/session"
	"github.com/yeisme/dandelion/pkg/middleware"
)

// RegisterFilesRoutes 注册文件操作相关路由，整组都要求登录会话.
func RegisterFilesRoutes(engine *gin.Engine, store *session.Store, cfg *configs.AppConfig) {
	filesRoutes := engine.Group("/files", middleware.SessionRequired(store, cfg.Session))
	{
		// 列表，?q= 过滤
		filesRoutes.GET("/", handle.FilesIndex)
		// 表单搜索
		filesRoutes.POST("/search", handle.FilesSearch)
		// multipart 上传
		filesRoutes.POST("/upload", handle.FilesUpload)

		// 单个文件操作
		singleGroup := filesRoutes.Group("/:id")
		{
			// 附件下载
			singleGroup.GET("/download", handle.FilesDownload)
			// 删除登记与磁盘内容；浏览器表单没有 DELETE，用 POST
			singleGroup.POST("/delete", handle.FilesDelete)
		}
	}
}
