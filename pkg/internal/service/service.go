// Package service 承载业务逻辑：账号、文件登记、上传下载与删除.
// service 实例是请求级的，从 context 取出存储客户端即可使用.
package service

import (
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/dandelion/pkg/internal/storage/mq"
)

// producerName 事件头里的生产者标识.
const producerName = "dandelion"

// mqPublisher 取出底层 Publisher，给 queue 的事件封装用.
func mqPublisher(c *mq.Client) message.Publisher {
	return c.Publisher()
}
