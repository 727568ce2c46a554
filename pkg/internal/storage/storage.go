// Package storage 聚合存储资源：数据库、会话 KV、消息队列和本地 blob 存储.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	blobClient := mgr.GetBlobClient()
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"sync"

	blobc "github.com/yeisme/dandelion/pkg/internal/storage/blob"
	dbc "github.com/yeisme/dandelion/pkg/internal/storage/db"
	kvc "github.com/yeisme/dandelion/pkg/internal/storage/kv"
	mqc "github.com/yeisme/dandelion/pkg/internal/storage/mq"
	nlog "github.com/yeisme/dandelion/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB   *dbc.Client
	KV   *kvc.Client
	MQ   *mqc.Client
	Blob *blobc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		if dbi, e := dbc.New(ctx); e != nil {
			err = e
			return
		} else {
			m.DB = dbi
		}

		// KV（会话存储）
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			err = e
			return
		} else {
			m.KV = kvi
		}

		// MQ（文件事件）
		if mqi, e := mqc.New(ctx); e != nil {
			err = e
			return
		} else {
			m.MQ = mqi
		}

		// Blob（上传目录）
		if bi, e := blobc.New(ctx); e != nil {
			err = e
			return
		} else {
			m.Blob = bi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// GetBlobClient 获取 Blob 客户端.
func (m *Manager) GetBlobClient() *blobc.Client {
	return m.Blob
}

// Close 释放所有存储资源.
func (m *Manager) Close() error {
	var err error

	if m.KV != nil {
		if e := m.KV.Close(); e != nil {
			err = e
		}
	}

	if m.MQ != nil {
		if e := m.MQ.Close(); e != nil {
			err = e
		}
	}

	if m.Blob != nil {
		if e := m.Blob.Close(); e != nil {
			err = e
		}
	}

	if m.DB != nil {
		if sqlDB, e := m.DB.DB.DB(); e == nil {
			if e := sqlDB.Close(); e != nil {
				err = e
			}
		}
	}

	return err
}
