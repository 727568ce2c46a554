// Package handle 提供HTTP请求处理器的实现，渲染服务端 HTML 页面.
package handle

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// 模板文件名.
const (
	tplHome     = "home.html"
	tplLogin    = "login.html"
	tplRegister = "register.html"
	tplFiles    = "files.html"
	tplError    = "error.html"
)

// renderError 渲染通用错误页.
func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, tplError, gin.H{
		"Status":  status,
		"Message": message,
	})
}

// parseID 解析路径里的数字 ID，非法输入返回 0,false.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}
