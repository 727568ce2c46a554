package handle

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/dandelion/pkg/configs"
	"github.com/yeisme/dandelion/pkg/internal/model"
	"github.com/yeisme/dandelion/pkg/internal/service"
	"github.com/yeisme/dandelion/pkg/middleware"
	nlog "github.com/yeisme/dandelion/pkg/log"
)

// renderFiles 渲染文件列表页，列表和搜索共用.
func renderFiles(c *gin.Context, status int, files []model.File, query, errMsg string) {
	c.HTML(status, tplFiles, gin.H{
		"Files":    files,
		"Query":    query,
		"Username": middleware.CurrentUsername(c),
		"Error":    errMsg,
	})
}

// FilesIndex 文件列表，?q= 做过滤.
func FilesIndex(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	fs := service.NewFileService(c.Request.Context())

	files, err := fs.Search(c.Request.Context(), query)
	if err != nil {
		nlog.Logger().Error().Err(err).Msg("查询文件列表失败")
		renderError(c, http.StatusInternalServerError, "Could not load files.")

		return
	}

	renderFiles(c, http.StatusOK, files, query, "")
}

// FilesSearch POST 表单搜索，渲染与列表相同的页面.
func FilesSearch(c *gin.Context) {
	query := strings.TrimSpace(c.PostForm("q"))

	fs := service.NewFileService(c.Request.Context())

	files, err := fs.Search(c.Request.Context(), query)
	if err != nil {
		nlog.Logger().Error().Err(err).Msg("搜索文件失败")
		renderError(c, http.StatusInternalServerError, "Search failed.")

		return
	}

	renderFiles(c, http.StatusOK, files, query, "")
}

// FilesUpload 接收 multipart 上传，file 字段 + 可选 comment.
func FilesUpload(c *gin.Context) {
	fs := service.NewFileService(c.Request.Context())
	comment := strings.TrimSpace(c.PostForm("comment"))

	header, err := c.FormFile("file")
	if err != nil {
		uploadFormError(c, fs, "Choose a file to upload.")
		return
	}

	if maxBytes := configs.GetConfig().Storage.MaxUploadBytes(); header.Size > maxBytes {
		uploadFormError(c, fs, fmt.Sprintf("File is too large (limit %d MB).", maxBytes>>20))
		return
	}

	src, err := header.Open()
	if err != nil {
		nlog.Logger().Error().Err(err).Msg("打开上传内容失败")
		renderError(c, http.StatusInternalServerError, "Upload failed.")

		return
	}
	defer src.Close()

	if _, err := fs.Upload(c.Request.Context(), header.Filename, src, comment); err != nil {
		if errors.Is(err, service.ErrEmptyUpload) {
			uploadFormError(c, fs, "Choose a file to upload.")
			return
		}

		nlog.Logger().Error().Err(err).Str("filename", header.Filename).Msg("上传失败")
		renderError(c, http.StatusInternalServerError, "Upload failed.")

		return
	}

	c.Redirect(http.StatusSeeOther, "/files/")
}

// uploadFormError 带行内错误重渲染文件列表.
func uploadFormError(c *gin.Context, fs *service.FileService, msg string) {
	files, err := fs.List(c.Request.Context())
	if err != nil {
		nlog.Logger().Error().Err(err).Msg("查询文件列表失败")
		renderError(c, http.StatusInternalServerError, "Could not load files.")

		return
	}

	renderFiles(c, http.StatusBadRequest, files, "", msg)
}

// FilesDownload 以附件方式下发文件内容.
func FilesDownload(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		renderError(c, http.StatusNotFound, "File not found.")
		return
	}

	fs := service.NewFileService(c.Request.Context())

	file, path, err := fs.Open(c.Request.Context(), id, middleware.CurrentUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderError(c, http.StatusNotFound, "File not found.")
			return
		}

		nlog.Logger().Error().Err(err).Uint("id", id).Msg("下载失败")
		renderError(c, http.StatusInternalServerError, "Download failed.")

		return
	}

	c.FileAttachment(path, file.FileName)
}

// FilesDelete 删除登记与磁盘内容，ID 不存在也回到列表.
func FilesDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		renderError(c, http.StatusNotFound, "File not found.")
		return
	}

	fs := service.NewFileService(c.Request.Context())

	if err := fs.Delete(c.Request.Context(), id); err != nil {
		nlog.Logger().Error().Err(err).Uint("id", id).Msg("删除失败")
		renderError(c, http.StatusInternalServerError, "Delete failed.")

		return
	}

	c.Redirect(http.StatusSeeOther, "/files/")
}
