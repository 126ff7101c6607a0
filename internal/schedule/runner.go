package schedule

import (
	"context"
	"log/slog"
	"time"
)

// RunEvery 按固定间隔运行任务直到 ctx 取消.
// 间隔从每轮开始时刻起算; 单轮超时不做漂移补偿, 下一轮紧随其后.
// 任务报错只记日志, 进程不因瞬时失败退出.
// 收到取消信号后让进行中的一轮自然跑完再返回.
func RunEvery(ctx context.Context, task Task, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		// 取消信号只在两轮之间生效, 进行中的读写不被中途打断
		if err := task.Run(context.WithoutCancel(ctx)); err != nil {
			slog.Error("scheduled task failed, will retry next cycle",
				"task", task.Name(), "error", err)
		}
		select {
		case <-ctx.Done():
			slog.Info("scheduled task stopped", "task", task.Name())
			return
		case <-ticker.C:
		}
	}
}
