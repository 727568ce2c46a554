package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	ctxPkg "github.com/yeisme/dandelion/pkg/context"
	"github.com/yeisme/dandelion/pkg/internal/model"
	"github.com/yeisme/dandelion/pkg/internal/storage/db"
	"github.com/yeisme/dandelion/pkg/internal/storage/mq"
	"github.com/yeisme/dandelion/pkg/queue"
	nlog "github.com/yeisme/dandelion/pkg/log"
)

// UserService 负责账号注册与认证，不处理 HTTP 细节.
type UserService struct {
	dbClient *db.Client
	mqClient *mq.Client
}

// NewUserService 从 context 获取依赖实例.
func NewUserService(c context.Context) *UserService {
	dbc := ctxPkg.GetDBClient(c)
	mqc := ctxPkg.GetMQClient(c)

	// 为了安全起见，应该直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if dbc == nil || dbc.DB == nil || mqc == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &UserService{
		dbClient: dbc,
		mqClient: mqc,
	}
}

// Register 创建新账号，用户名已存在返回 ErrDuplicateUsername.
// 密码只保存 bcrypt 摘要.
func (us *UserService) Register(ctx context.Context, username, password string) (uint, error) {
	if username == "" || password == "" {
		return 0, fmt.Errorf("username and password are required")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username:       username,
		PasswordDigest: string(digest),
	}

	tx := us.dbClient.WithContext(ctx)

	// 预检查给出友好错误；唯一索引兜底并发注册
	var count int64
	if err := tx.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("check username: %w", err)
	}

	if count > 0 {
		return 0, ErrDuplicateUsername
	}

	if err := tx.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateUsername
		}

		return 0, fmt.Errorf("create user: %w", err)
	}

	if err := queue.PublishUserRegistered(mqPublisher(us.mqClient), queue.UserRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
	}, queue.WithProducer(producerName)); err != nil {
		nlog.Logger().Warn().Err(err).Str("username", username).Msg("发布注册事件失败")
	}

	nlog.Logger().Info().Str("username", username).Uint("user_id", user.ID).Msg("用户注册成功")

	return user.ID, nil
}

// Authenticate 校验用户名和密码.
// 用户不存在与密码错误都返回 ErrInvalidCredentials，不向调用方区分.
func (us *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	var user model.User

	err := us.dbClient.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
