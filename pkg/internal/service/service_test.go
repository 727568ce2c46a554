package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	ctxPkg "github.com/yeisme/dandelion/pkg/context"
	"github.com/yeisme/dandelion/pkg/internal/model"
	"github.com/yeisme/dandelion/pkg/internal/storage"
	"github.com/yeisme/dandelion/pkg/internal/storage/blob"
	"github.com/yeisme/dandelion/pkg/internal/storage/db"
	"github.com/yeisme/dandelion/pkg/internal/storage/kv"
	"github.com/yeisme/dandelion/pkg/internal/storage/mq"
)

// newTestContext 组装一套测试用存储：临时 SQLite、内存 KV、
// 进程内 MQ 和临时上传目录，打包进 context 供 service 使用.
func newTestContext(t *testing.T) context.Context {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(&model.User{}, &model.File{}, &model.FileMeta{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	kvStore, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})

	blobClient, err := blob.NewWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("create blob dir: %v", err)
	}

	mgr := &storage.Manager{
		DB:   &db.Client{DB: gdb},
		KV:   &kv.Client{KVStore: kvStore},
		MQ:   mq.NewClient(pubSub, pubSub),
		Blob: blobClient,
	}

	t.Cleanup(func() { _ = mgr.Close() })

	return ctxPkg.WithStorageManager(context.Background(), mgr)
}
