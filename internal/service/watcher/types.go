package watcher

import (
	"context"

	"github.com/anatoliyserebry/cryptowatchlive/internal/service/notification"
)

// Service 订阅轮询服务接口
type Service interface {
	Scan(ctx context.Context) error
}

// EventSink 接收命中事件, 不得阻塞轮询
type EventSink interface {
	Enqueue(event notification.Event)
}
