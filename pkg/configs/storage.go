package configs

import "github.com/spf13/viper"

const (
	DefaultUploadDir   = "data/uploads" // 默认上传目录
	DefaultMaxUploadMB = 100            // 单文件上传上限（MB）
)

// StorageConfig 本地文件存储配置.
// 上传目录可通过 DANDELION_STORAGE_UPLOAD_DIR 覆盖，避免把机器相关的绝对路径写死在代码里.
type StorageConfig struct {
	UploadDir   string `mapstructure:"upload_dir"    rule:"required"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb" rule:"min=1"`
}

// MaxUploadBytes 返回单文件上传上限（字节）.
func (c *StorageConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// setDefaults 设置本地存储配置的默认值.
func (c *StorageConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("storage.upload_dir", DefaultUploadDir)
	v.SetDefault("storage.max_upload_mb", DefaultMaxUploadMB)
}
