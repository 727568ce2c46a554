// Package session 提供请求级会话管理，数据存放在可插拔的 KV 后端里.
// 会话以 sess:<uuid> 为键，sonic 序列化，由 KV 层负责过期.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/yeisme/dandelion/pkg/internal/storage/kv"
)

// keyPrefix 会话键前缀，后台清理按它扫描.
const keyPrefix = "sess:"

// ErrNotFound 会话不存在或已过期.
var ErrNotFound = errors.New("session not found")

// Session 登录会话.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired 判断会话是否已过期.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store 会话存储.
type Store struct {
	kv  *kv.Client
	ttl time.Duration
}

// NewStore 创建会话存储.
func NewStore(kvClient *kv.Client, ttl time.Duration) *Store {
	return &Store{kv: kvClient, ttl: ttl}
}

// Key 返回会话 ID 对应的 KV 键.
func Key(id string) string {
	return keyPrefix + id
}

// Create 为用户建立新会话，返回会话（ID 用于下发 Cookie）.
func (s *Store) Create(ctx context.Context, userID uint, username string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := sonic.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	if err := s.kv.Set(ctx, Key(sess.ID), data, s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return sess, nil
}

// Get 查询会话，不存在或已过期返回 ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	data, err := s.kv.Get(ctx, Key(id))
	if err != nil {
		return nil, ErrNotFound
	}

	var sess Session
	if err := sonic.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// 不支持原生 TTL 的后端靠这里兜底
	if sess.Expired(time.Now()) {
		_ = s.kv.Delete(ctx, Key(id))
		return nil, ErrNotFound
	}

	return &sess, nil
}

// Destroy 删除会话，会话不存在不算错误.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	return s.kv.Delete(ctx, Key(id))
}

// Sweep 清理已过期的会话，返回清理数量.内存等惰性过期的后端由定时任务调用.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	keys, err := s.kv.Keys(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("list session keys: %w", err)
	}

	removed := 0

	for _, key := range keys {
		if len(key) <= len(keyPrefix) || key[:len(keyPrefix)] != keyPrefix {
			continue
		}

		// Exists 触发各后端的惰性过期删除；Get 里也有过期兜底
		if _, err := s.Get(ctx, key[len(keyPrefix):]); errors.Is(err, ErrNotFound) {
			removed++
		}
	}

	return removed, nil
}
