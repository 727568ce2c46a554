package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/dandelion/pkg/internal/model"
	"github.com/yeisme/dandelion/pkg/queue"
	nlog "github.com/yeisme/dandelion/pkg/log"
)

// Delete 删除登记行、元数据和磁盘内容.
// 登记行不存在时静默返回 nil.先在事务里删行，再尽力删 blob——
// unlink 失败只记警告，登记不会指向已删内容.
func (fs *FileService) Delete(ctx context.Context, id uint) error {
	var file model.File

	err := fs.dbClient.WithContext(ctx).First(&file, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("lookup file %d: %w", id, err)
	}

	err = fs.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", file.ID).Delete(&model.FileMeta{}).Error; err != nil {
			return fmt.Errorf("delete file meta: %w", err)
		}

		if err := tx.Delete(&model.File{}, file.ID).Error; err != nil {
			return fmt.Errorf("delete file row: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	blobRemoved := true
	if err := fs.blobClient.Remove(file.FileName); err != nil {
		blobRemoved = false

		nlog.Logger().Warn().Err(err).Str("file", file.FileName).Msg("删除磁盘内容失败")
	}

	if err := queue.PublishFileDeleted(mqPublisher(fs.mqClient), queue.FileDeletedPayload{
		File: queue.FileRef{
			ID:       file.ID,
			FileName: file.FileName,
			Size:     file.Size,
			MimeType: file.MimeType,
		},
		BlobRemoved: blobRemoved,
	}, queue.WithProducer(producerName)); err != nil {
		nlog.Logger().Warn().Err(err).Str("file", file.FileName).Msg("发布删除事件失败")
	}

	nlog.Logger().Info().Str("file", file.FileName).Uint("id", file.ID).Msg("文件删除完成")

	return nil
}
