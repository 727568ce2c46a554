package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/dandelion/pkg/configs"
	"github.com/yeisme/dandelion/pkg/internal/session"
	"github.com/yeisme/dandelion/pkg/internal/storage/kv"
	"github.com/yeisme/dandelion/pkg/middleware"
)

// sessionCfg 测试用的会话配置.
func sessionCfg() configs.SessionConfig {
	return configs.SessionConfig{
		Store:          "memory",
		CookieName:     "dandelion_session",
		RememberCookie: "remembered_username",
		TTLMinutes:     60,
		RememberDays:   30,
	}
}

// newSessionStore 在内存 KV 上建立会话存储.
func newSessionStore(t *testing.T) *session.Store {
	t.Helper()

	kvStore, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	t.Cleanup(func() { _ = kvStore.Close() })

	return session.NewStore(&kv.Client{KVStore: kvStore}, time.Hour)
}

// newProtectedEngine 挂一个受 SessionRequired 保护的探针路由.
func newProtectedEngine(t *testing.T, store *session.Store) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/files/", middleware.SessionRequired(store, sessionCfg()), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.CurrentUsername(c))
	})

	return engine
}

// TestSessionRequiredNoCookie 测试无 Cookie 的请求被重定向到登录页.
func TestSessionRequiredNoCookie(t *testing.T) {
	engine := newProtectedEngine(t, newSessionStore(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/files/", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

// TestSessionRequiredInvalidCookie 测试无效会话被拒并清理 Cookie.
func TestSessionRequiredInvalidCookie(t *testing.T) {
	engine := newProtectedEngine(t, newSessionStore(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/files/", nil)
	req.AddCookie(&http.Cookie{Name: "dandelion_session", Value: "stale-id"})
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	cleared := false

	for _, c := range w.Result().Cookies() {
		if c.Name == "dandelion_session" && c.MaxAge < 0 {
			cleared = true
		}
	}

	if !cleared {
		t.Error("stale session cookie was not cleared")
	}
}

// TestSessionRequiredValidCookie 测试有效会话放行并注入用户名.
func TestSessionRequiredValidCookie(t *testing.T) {
	store := newSessionStore(t)
	engine := newProtectedEngine(t, store)

	sess, err := store.Create(context.Background(), 5, "alice")
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/files/", nil)
	req.AddCookie(&http.Cookie{Name: "dandelion_session", Value: sess.ID})
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	if w.Body.String() != "alice" {
		t.Errorf("body = %q, want %q", w.Body.String(), "alice")
	}
}

// TestNoCacheMiddleware 测试禁止缓存的响应头.
func TestNoCacheMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.NoCacheMiddleware())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := w.Header().Get("Cache-Control"); got != "no-store, no-cache, must-revalidate, max-age=0" {
		t.Errorf("Cache-Control = %q", got)
	}

	if got := w.Header().Get("Pragma"); got != "no-cache" {
		t.Errorf("Pragma = %q", got)
	}
}

// TestRateLimitMiddleware 测试超过突发额度后返回 429.
func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RateLimitMiddleware(configs.RateLimitConfig{
		Enabled: true,
		RPS:     1,
		Burst:   2,
		Key:     "ip",
	}))
	engine.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		engine.ServeHTTP(w, req)

		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want 200s", codes[:2])
	}

	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want %d", codes[2], http.StatusTooManyRequests)
	}
}

// TestRateLimitDisabled 测试关闭限流时全部放行.
func TestRateLimitDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RateLimitMiddleware(configs.RateLimitConfig{Enabled: false}))
	engine.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, w.Code)
		}
	}
}
