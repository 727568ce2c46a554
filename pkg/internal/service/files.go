package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	ctxPkg "github.com/yeisme/dandelion/pkg/context"
	"github.com/yeisme/dandelion/pkg/internal/model"
	"github.com/yeisme/dandelion/pkg/internal/storage/blob"
	"github.com/yeisme/dandelion/pkg/internal/storage/db"
	"github.com/yeisme/dandelion/pkg/internal/storage/mq"
	nlog "github.com/yeisme/dandelion/pkg/log"
)

// listOrder 列表与搜索的统一排序，保证分页和刷新结果稳定.
const listOrder = "created_at DESC, id DESC"

// FileService 负责文件登记相关业务逻辑（落盘、元数据、查询），不处理 HTTP 细节.
type FileService struct {
	blobClient *blob.Client
	dbClient   *db.Client
	mqClient   *mq.Client
}

// NewFileService 从 context 获取依赖实例.
func NewFileService(c context.Context) *FileService {
	blobc := ctxPkg.GetBlobClient(c)
	dbc := ctxPkg.GetDBClient(c)
	mqc := ctxPkg.GetMQClient(c)

	// 为了安全起见，应该直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if blobc == nil || dbc == nil || dbc.DB == nil || mqc == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &FileService{
		blobClient: blobc,
		dbClient:   dbc,
		mqClient:   mqc,
	}
}

// List 返回全部文件登记，带元数据，新文件在前.
func (fs *FileService) List(ctx context.Context) ([]model.File, error) {
	var files []model.File

	err := fs.dbClient.WithContext(ctx).
		Preload("Meta").
		Order(listOrder).
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return files, nil
}

// Search 在文件名和备注上做大小写不敏感的子串匹配，排序与 List 一致.
// 空查询等价于 List.
func (fs *FileService) Search(ctx context.Context, query string) ([]model.File, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return fs.List(ctx)
	}

	pattern := "%" + strings.ToLower(query) + "%"

	var files []model.File

	err := fs.dbClient.WithContext(ctx).
		Preload("Meta").
		Where("LOWER(file_name) LIKE ? OR LOWER(comment) LIKE ?", pattern, pattern).
		Order(listOrder).
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("search files: %w", err)
	}

	return files, nil
}

// Get 按 ID 查询登记行，不存在返回 ErrNotFound.
func (fs *FileService) Get(ctx context.Context, id uint) (*model.File, error) {
	var file model.File

	err := fs.dbClient.WithContext(ctx).Preload("Meta").First(&file, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get file %d: %w", id, err)
	}

	return &file, nil
}

// Count 返回登记的文件总数，指标用.
func (fs *FileService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := fs.dbClient.WithContext(ctx).Model(&model.File{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}

	return n, nil
}
