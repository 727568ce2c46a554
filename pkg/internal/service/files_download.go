package service

import (
	"context"
	"os"

	"github.com/yeisme/dandelion/pkg/queue"
	nlog "github.com/yeisme/dandelion/pkg/log"

	"github.com/yeisme/dandelion/pkg/internal/model"
)

// Open 解析下载请求，返回登记行和磁盘路径.
// 登记行不存在或磁盘内容已丢失都返回 ErrNotFound.
func (fs *FileService) Open(ctx context.Context, id uint, username string) (*model.File, string, error) {
	file, err := fs.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	path := fs.blobClient.Path(file.FileName)
	if _, err := os.Stat(path); err != nil {
		nlog.Logger().Warn().Uint("id", id).Str("path", path).Msg("登记存在但磁盘内容缺失")
		return nil, "", ErrNotFound
	}

	if err := queue.PublishFileAccessed(mqPublisher(fs.mqClient), queue.FileAccessedPayload{
		File: queue.FileRef{
			ID:       file.ID,
			FileName: file.FileName,
			Size:     file.Size,
			MimeType: file.MimeType,
		},
		Username: username,
	}, queue.WithProducer(producerName)); err != nil {
		nlog.Logger().Warn().Err(err).Str("file", file.FileName).Msg("发布下载事件失败")
	}

	return file, path, nil
}
