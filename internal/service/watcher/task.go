package watcher

import (
	"context"

	"github.com/anatoliyserebry/cryptowatchlive/internal/schedule"
)

type WatchTask struct {
	svc Service
}

func NewWatchTask(svc Service) schedule.Task {
	return &WatchTask{
		svc: svc,
	}
}

func (t *WatchTask) Run(ctx context.Context) error {
	return t.svc.Scan(ctx)
}

func (t *WatchTask) Name() string {
	return "subscription watch task"
}
