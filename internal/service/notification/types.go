package notification

import (
	"context"
	"time"
)

// Event 阈值命中事件, 投递语义为 fire-and-forget
type Event struct {
	SubscriptionId int64     `json:"subscription_id"`
	OwnerId        int64     `json:"owner_id"`
	Base           string    `json:"base"`
	Quote          string    `json:"quote"`
	Operator       string    `json:"operator"`
	Threshold      float64   `json:"threshold"`
	Price          float64   `json:"price"`
	Change         *float64  `json:"change_pct,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
