package notification

import (
	"context"
	"log/slog"
	"sync"
)

// Dispatcher 异步投递队列, 慢投递不拖慢轮询节奏.
// 投递失败只记日志, 不重试 (at-most-once).
type Dispatcher struct {
	notifier Notifier
	events   chan Event
	wg       sync.WaitGroup
}

func NewDispatcher(notifier Notifier, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 128
	}
	return &Dispatcher{
		notifier: notifier,
		events:   make(chan Event, buffer),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-ctx.Done():
				// 停机前把缓冲里积压的事件投完
				d.drain(context.WithoutCancel(ctx))
				return
			case event := <-d.events:
				d.deliver(ctx, event)
			}
		}
	}()
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case event := <-d.events:
			d.deliver(ctx, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event Event) {
	if err := d.notifier.Notify(ctx, event); err != nil {
		slog.Error("failed to deliver notification",
			"subscription", event.SubscriptionId, "owner", event.OwnerId, "error", err)
	}
}

// Enqueue 队列满时丢弃事件而不是阻塞轮询
func (d *Dispatcher) Enqueue(event Event) {
	select {
	case d.events <- event:
	default:
		slog.Warn("notification queue full, dropping event",
			"subscription", event.SubscriptionId, "owner", event.OwnerId)
	}
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
