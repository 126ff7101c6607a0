package schedule

import "context"

// Task 可被周期调度的单轮任务
type Task interface {
	Run(ctx context.Context) error
	Name() string
}
