package model

import (
	"time"
)

// File 文件登记模型.
type File struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// FileName 展示名，同时也是上传目录里的磁盘文件名（冲突时带 _N 后缀）
	FileName string `gorm:"size:512;index" json:"file_name"`
	MimeType string `gorm:"size:255;index" json:"mime_type"`
	Size     int64  `gorm:"index"          json:"size"`
	// StoragePath 落盘的绝对路径
	StoragePath string `gorm:"size:1024" json:"storage_path"`
	// Checksum 内容的 xxhash64 校验和（十六进制）
	Checksum string `gorm:"size:64"   json:"checksum"`
	Comment  string `gorm:"type:text" json:"comment"`
	// 列表与搜索按 created_at DESC, id DESC 排序
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Meta []FileMeta `gorm:"foreignKey:FileID" json:"meta,omitempty"`
}

// FileMeta 文件元数据条目，每个文件若干个键值对，无序.
type FileMeta struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	FileID uint `gorm:"index;not null" json:"file_id"`
	// MetaKey 如 resolution、format、page_count、title、author、error
	MetaKey   string `gorm:"size:128;not null" json:"meta_key"`
	MetaValue string `gorm:"type:text"         json:"meta_value"`
}
