package handle

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/dandelion/pkg/configs"
	"github.com/yeisme/dandelion/pkg/internal/service"
	"github.com/yeisme/dandelion/pkg/internal/session"
	"github.com/yeisme/dandelion/pkg/rule"
	nlog "github.com/yeisme/dandelion/pkg/log"
)

// loginForm 登录表单.
type loginForm struct {
	Username string `rule:"required,max=255"`
	Password string `rule:"required"`
	Remember bool
}

// registerForm 注册表单.
type registerForm struct {
	Username string `rule:"required,min=1,max=255"`
	Password string `rule:"required,min=1"`
}

// genericLoginError 对外统一的登录失败提示，不区分用户不存在和密码错误.
const genericLoginError = "Invalid username or password."

// LoginForm 渲染登录页，记住的用户名用于预填.
func LoginForm(cfg configs.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		remembered, _ := c.Cookie(cfg.RememberCookie)

		c.HTML(http.StatusOK, tplLogin, gin.H{
			"Username": remembered,
		})
	}
}

// LoginSubmit 处理登录.成功建立会话并按需更新记住的用户名；
// 失败重渲染表单，带通用错误和已输入的用户名.
func LoginSubmit(store *session.Store, cfg configs.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := loginForm{
			Username: strings.TrimSpace(c.PostForm("username")),
			Password: c.PostForm("password"),
			Remember: c.PostForm("remember") != "",
		}

		if err := rule.ValidateStruct(&form); err != nil {
			c.HTML(http.StatusBadRequest, tplLogin, gin.H{
				"Username": form.Username,
				"Error":    genericLoginError,
			})

			return
		}

		user, err := service.NewUserService(c.Request.Context()).
			Authenticate(c.Request.Context(), form.Username, form.Password)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidCredentials) {
				nlog.Logger().Error().Err(err).Msg("登录校验失败")
			}

			c.HTML(http.StatusUnauthorized, tplLogin, gin.H{
				"Username": form.Username,
				"Error":    genericLoginError,
			})

			return
		}

		sess, err := store.Create(c.Request.Context(), user.ID, user.Username)
		if err != nil {
			nlog.Logger().Error().Err(err).Msg("创建会话失败")
			renderError(c, http.StatusInternalServerError, "Could not establish session.")

			return
		}

		c.SetCookie(cfg.CookieName, sess.ID, int(cfg.TTL().Seconds()), "/", "", cfg.CookieSecure, true)

		// 只记住用户名，绝不记密码
		if form.Remember {
			c.SetCookie(cfg.RememberCookie, user.Username, cfg.RememberMaxAge(), "/", "", cfg.CookieSecure, false)
		} else {
			c.SetCookie(cfg.RememberCookie, "", -1, "/", "", cfg.CookieSecure, false)
		}

		c.Redirect(http.StatusSeeOther, "/files/")
	}
}

// RegisterForm 渲染注册页.
func RegisterForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, tplRegister, gin.H{})
	}
}

// RegisterSubmit 处理注册，成功后跳转登录页.
func RegisterSubmit() gin.HandlerFunc {
	return func(c *gin.Context) {
		form := registerForm{
			Username: strings.TrimSpace(c.PostForm("username")),
			Password: c.PostForm("password"),
		}

		if err := rule.ValidateStruct(&form); err != nil {
			c.HTML(http.StatusBadRequest, tplRegister, gin.H{
				"Username": form.Username,
				"Error":    "Username and password are required.",
			})

			return
		}

		_, err := service.NewUserService(c.Request.Context()).
			Register(c.Request.Context(), form.Username, form.Password)
		if err != nil {
			if errors.Is(err, service.ErrDuplicateUsername) {
				c.HTML(http.StatusConflict, tplRegister, gin.H{
					"Username": form.Username,
					"Error":    "That username is already taken.",
				})

				return
			}

			nlog.Logger().Error().Err(err).Msg("注册失败")
			renderError(c, http.StatusInternalServerError, "Registration failed.")

			return
		}

		c.Redirect(http.StatusSeeOther, "/login")
	}
}

// Logout 销毁会话并清理 Cookie，无论会话是否有效都成功.
func Logout(store *session.Store, cfg configs.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(cfg.CookieName); err == nil && id != "" {
			if err := store.Destroy(c.Request.Context(), id); err != nil {
				nlog.Logger().Warn().Err(err).Msg("销毁会话失败")
			}
		}

		c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.CookieSecure, true)
		c.SetCookie(cfg.RememberCookie, "", -1, "/", "", cfg.CookieSecure, false)

		c.Redirect(http.StatusSeeOther, "/login")
	}
}
