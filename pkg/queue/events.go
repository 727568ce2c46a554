package queue

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// -------------------------- 基于业务封装 events --------------------------

// publish 统一的发布入口，Publisher 未配置时返回错误而不是 panic.
func publish(pub message.Publisher, topic string, msg *message.Message) error {
	if pub == nil {
		return fmt.Errorf("mq publisher not configured")
	}

	return pub.Publish(topic, msg)
}

// PublishFileStored 发布 dd.file.stored 事件。
// 文件落盘并写入登记表后调用，通知下游流程（审计、索引等）。
func PublishFileStored(pub message.Publisher, payload FileStoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileStored, payload, opts...)
	if err != nil {
		return err
	}

	return publish(pub, TopicFileStored, msg)
}

// PublishFileDeleted 发布 dd.file.deleted 事件。
func PublishFileDeleted(pub message.Publisher, payload FileDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return publish(pub, TopicFileDeleted, msg)
}

// PublishFileAccessed 发布 dd.file.accessed 事件。
func PublishFileAccessed(pub message.Publisher, payload FileAccessedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileAccessed, payload, opts...)
	if err != nil {
		return err
	}

	return publish(pub, TopicFileAccessed, msg)
}

// PublishUserRegistered 发布 dd.user.registered 事件。
func PublishUserRegistered(pub message.Publisher, payload UserRegisteredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicUserRegistered, payload, opts...)
	if err != nil {
		return err
	}

	return publish(pub, TopicUserRegistered, msg)
}

// ParseFileStored 将 Watermill 消息解析为强类型 Envelope（FileStoredPayload）。
func ParseFileStored(msg *message.Message) (Message[FileStoredPayload], error) {
	return ParseWatermillMessage[FileStoredPayload](msg)
}
