package mq

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/dandelion/pkg/configs"
)

// init 注册 GoChannel 工厂.
func init() {
	RegisterFactory(configs.MQTypeGoChannel, goChannelFactory)
}

// goChannelFactory 创建进程内 Publisher & Subscriber.
// 单实例部署的默认选择，不依赖外部 Broker，订阅者在同一进程内消费.
func goChannelFactory(
	ctx context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			// 发布时没有订阅者也不阻塞
			OutputChannelBuffer: 64,
		},
		logger,
	)

	return pubSub, pubSub, nil
}
