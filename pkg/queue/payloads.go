package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// FileRef 标识登记表中的一个文件.
type FileRef struct {
	ID       uint   `json:"id"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Checksum string `json:"checksum,omitempty"`
}

// FileStoredPayload 文件已落盘并登记.
type FileStoredPayload struct {
	File    FileRef           `json:"file"`
	Comment string            `json:"comment,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// FileDeletedPayload 登记行已删除.
type FileDeletedPayload struct {
	File FileRef `json:"file"`
	// BlobRemoved 磁盘内容是否也成功删除（失败只记警告）
	BlobRemoved bool `json:"blob_removed"`
}

// FileAccessedPayload 文件被下载.
type FileAccessedPayload struct {
	File FileRef `json:"file"`
	// Username 触发下载的登录用户
	Username string `json:"username,omitempty"`
}

// UserRegisteredPayload 新用户注册完成.
type UserRegisteredPayload struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}
