package watcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/anatoliyserebry/cryptowatchlive/internal/entity"
	"github.com/anatoliyserebry/cryptowatchlive/internal/repo"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/notification"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
)

type Watcher struct {
	subRepo  repo.SubscriptionRepo
	userRepo repo.UserRepo
	resolver rate.Service

	sink EventSink
}

// syncSink 默认直接同步投递到控制台
type syncSink struct {
	notifier notification.Notifier
}

func (s syncSink) Enqueue(event notification.Event) {
	if err := s.notifier.Notify(context.Background(), event); err != nil {
		slog.Error("failed to deliver notification", "subscription", event.SubscriptionId, "error", err)
	}
}

type Option func(w *Watcher)

func WithSink(sink EventSink) Option {
	return func(w *Watcher) {
		w.sink = sink
	}
}

func NewWatcher(subRepo repo.SubscriptionRepo, userRepo repo.UserRepo, resolver rate.Service, opts ...Option) *Watcher {
	w := &Watcher{
		subRepo:  subRepo,
		userRepo: userRepo,
		resolver: resolver,
		sink:     syncSink{notifier: notification.NewConsoleNotifier()},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Scan 单轮评估: 取活跃订阅, 逐个解析价格并做边沿检测.
// 单个订阅失败只跳过本轮, last_eval 保持不变.
func (w *Watcher) Scan(ctx context.Context) error {
	subs, err := w.subRepo.FindActive(ctx)
	if err != nil {
		return err
	}

	for _, sub := range subs {
		w.evaluate(ctx, sub)
	}
	return nil
}

func (w *Watcher) evaluate(ctx context.Context, sub entity.Subscription) {
	if !ValidOperator(sub.Operator) {
		slog.Error("corrupt operator on subscription, skipping",
			"id", sub.Id, "operator", sub.Operator)
		return
	}

	quote, err := w.resolver.Resolve(ctx, sub.Base, sub.Quote)
	if err != nil {
		slog.Warn("skipping subscription this cycle",
			"id", sub.Id, "base", sub.Base, "quote", sub.Quote, "error", err)
		return
	}

	ok := Evaluate(sub.Operator, quote.Price, sub.Threshold)

	muted, err := w.userRepo.IsMuted(ctx, sub.OwnerId)
	if err != nil {
		slog.Error("failed to read mute flag, assuming unmuted", "owner", sub.OwnerId, "error", err)
		muted = false
	}

	// 边沿触发: 仅在 false/unknown -> true 时通知.
	// mute 只压制投递, 不影响边沿状态推进.
	shouldNotify := !muted && ok && (sub.LastEval == nil || !*sub.LastEval)

	// 先落盘再投递: 状态没写成功就通知, 下一轮会重复触发
	if err := w.subRepo.UpdateLastEval(ctx, sub.Id, ok); err != nil {
		slog.Error("failed to persist last_eval, withholding notification", "id", sub.Id, "error", err)
		return
	}

	if shouldNotify {
		w.sink.Enqueue(notification.Event{
			SubscriptionId: sub.Id,
			OwnerId:        sub.OwnerId,
			Base:           sub.Base,
			Quote:          sub.Quote,
			Operator:       sub.Operator,
			Threshold:      sub.Threshold,
			Price:          quote.Price,
			Change:         quote.Change,
			Timestamp:      time.Now(),
		})
	}
}
