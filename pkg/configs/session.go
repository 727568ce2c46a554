package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSessionStore      = "memory"             // 默认会话存储类型
	DefaultSessionCookie     = "dandelion_session"  // 会话 Cookie 名
	DefaultRememberCookie    = "remembered_username" // 记住用户名的 Cookie 名
	DefaultSessionTTLMinutes = 720                  // 会话有效期（分钟）
	DefaultRememberDays      = 30                   // 记住用户名 Cookie 有效期（天）
)

// SessionConfig 会话与 Cookie 配置.
// Store 决定会话放在哪个 KV 后端：memory（单实例默认）、redis、nats、groupcache（多实例部署）.
type SessionConfig struct {
	Store          string             `mapstructure:"store"           rule:"oneof=memory redis nats groupcache"`
	CookieName     string             `mapstructure:"cookie_name"     rule:"required"`
	RememberCookie string             `mapstructure:"remember_cookie" rule:"required"`
	TTLMinutes     int                `mapstructure:"ttl_minutes"     rule:"min=1"`
	RememberDays   int                `mapstructure:"remember_days"   rule:"min=1"`
	CookieSecure   bool               `mapstructure:"cookie_secure"`
	Redis          RedisKVConfig      `mapstructure:"redis"`
	NATS           NATSKVConfig       `mapstructure:"nats"`
	Groupcache     GroupcacheKVConfig `mapstructure:"groupcache"`
}

// RedisKVConfig Redis KV 配置.
type RedisKVConfig struct {
	Addr     string `mapstructure:"addr"     rule:"hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       rule:"min=0,max=15"`
}

// NATSKVConfig NATS KV 配置.
type NATSKVConfig struct {
	URL      string `mapstructure:"url"      rule:"hostname_port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Bucket   string `mapstructure:"bucket"   rule:"required"`
}

// GroupcacheKVConfig Groupcache KV 配置.
type GroupcacheKVConfig struct {
	Name       string   `mapstructure:"name"        rule:"required"`
	CacheBytes int64    `mapstructure:"cache_bytes" rule:"min=1048576"` // 最小1MB
	Peers      []string `mapstructure:"peers"`
	Self       string   `mapstructure:"self"`
}

// TTL 返回会话有效期.
func (c *SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// RememberMaxAge 返回记住用户名 Cookie 的 Max-Age（秒）.
func (c *SessionConfig) RememberMaxAge() int {
	return c.RememberDays * 24 * 60 * 60
}

// setDefaults 设置会话配置的默认值.
func (c *SessionConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("session.store", DefaultSessionStore)
	v.SetDefault("session.cookie_name", DefaultSessionCookie)
	v.SetDefault("session.remember_cookie", DefaultRememberCookie)
	v.SetDefault("session.ttl_minutes", DefaultSessionTTLMinutes)
	v.SetDefault("session.remember_days", DefaultRememberDays)
	v.SetDefault("session.cookie_secure", false)

	// Redis 默认值
	v.SetDefault("session.redis.addr", "localhost:6379")
	v.SetDefault("session.redis.password", "")
	v.SetDefault("session.redis.db", 0)

	// NATS 默认值
	v.SetDefault("session.nats.url", "localhost:4222")
	v.SetDefault("session.nats.user", "")
	v.SetDefault("session.nats.password", "")
	v.SetDefault("session.nats.bucket", "dandelion-sessions")

	const defaultGroupcacheBytes = 64 * 1024 * 1024 // 64MB
	// Groupcache 默认值
	v.SetDefault("session.groupcache.name", "dandelion-sessions")
	v.SetDefault("session.groupcache.cache_bytes", defaultGroupcacheBytes)
	v.SetDefault("session.groupcache.peers", []string{})
	v.SetDefault("session.groupcache.self", "http://localhost:8080")
}
