package service

import (
	"context"
	"fmt"
	"io"

	"github.com/yeisme/dandelion/pkg/internal/meta"
	"github.com/yeisme/dandelion/pkg/internal/model"
	"github.com/yeisme/dandelion/pkg/metrics"
	"github.com/yeisme/dandelion/pkg/queue"
	nlog "github.com/yeisme/dandelion/pkg/log"
)

// Upload 接收上传内容并登记.
// 流程：落盘（冲突时自动改名）→ 元数据提取 → 事务内写 File + FileMeta → 发布事件.
// 落盘失败会清理半成品且不留登记行；元数据提取失败只产生 error 键，不中断上传.
func (fs *FileService) Upload(ctx context.Context, filename string, r io.Reader, comment string) (*model.File, error) {
	if r == nil {
		return nil, ErrEmptyUpload
	}

	saved, err := fs.blobClient.Save(ctx, filename, r)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	if saved.Size == 0 {
		// 空文件视为无效上传，不保留空 blob
		if rmErr := fs.blobClient.Remove(saved.StoredName); rmErr != nil {
			nlog.Logger().Warn().Err(rmErr).Str("name", saved.StoredName).Msg("清理空上传失败")
		}

		return nil, ErrEmptyUpload
	}

	path := fs.blobClient.Path(saved.StoredName)
	extracted := meta.Extract(path)

	file := model.File{
		FileName:    saved.StoredName,
		MimeType:    extracted[meta.KeyMimeType],
		Size:        saved.Size,
		StoragePath: path,
		Checksum:    saved.Checksum,
		Comment:     comment,
	}

	for key, value := range extracted {
		file.Meta = append(file.Meta, model.FileMeta{MetaKey: key, MetaValue: value})
	}

	// File 和 FileMeta 一起提交，登记行不会出现缺元数据的中间状态
	if err := fs.dbClient.WithContext(ctx).Create(&file).Error; err != nil {
		if rmErr := fs.blobClient.Remove(saved.StoredName); rmErr != nil {
			nlog.Logger().Warn().Err(rmErr).Str("name", saved.StoredName).Msg("回滚 blob 失败")
		}

		return nil, fmt.Errorf("register file: %w", err)
	}

	metrics.UploadBytes.Add(float64(saved.Size))

	if err := queue.PublishFileStored(mqPublisher(fs.mqClient), queue.FileStoredPayload{
		File: queue.FileRef{
			ID:       file.ID,
			FileName: file.FileName,
			Size:     file.Size,
			MimeType: file.MimeType,
			Checksum: file.Checksum,
		},
		Comment: comment,
		Meta:    extracted,
	}, queue.WithProducer(producerName)); err != nil {
		nlog.Logger().Warn().Err(err).Str("file", file.FileName).Msg("发布上传事件失败")
	}

	nlog.Logger().Info().
		Str("file", file.FileName).
		Int64("size", file.Size).
		Str("mime_type", file.MimeType).
		Msg("文件上传完成")

	return &file, nil
}
