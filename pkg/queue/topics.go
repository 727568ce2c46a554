// Package queue 定义消息主题常量，供发布/订阅使用.
package queue

// 主题命名规范：dd.<域>.<动作>，尽量稳定且向后兼容.
// 域：file(文件登记)、user(账号)
// 动作：stored/deleted/accessed/registered

const (
	// 文件领域.
	TopicFileStored   = "dd.file.stored"   // 文件已落盘并写入登记表
	TopicFileDeleted  = "dd.file.deleted"  // 登记行已删除（blob 尽力删除）
	TopicFileAccessed = "dd.file.accessed" // 文件被下载

	// 账号领域.
	TopicUserRegistered = "dd.user.registered" // 新用户注册完成
)

// 主题分组，用于批量订阅.
var (
	// 文件相关主题集合.
	FileTopics = []string{
		TopicFileStored, TopicFileDeleted, TopicFileAccessed,
	}

	// 账号相关主题集合.
	UserTopics = []string{
		TopicUserRegistered,
	}
)
