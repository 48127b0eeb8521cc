package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cantoapp/canto/internal/api"
)

const defaultPollInterval = 2 * time.Second

// TaskFetch retrieves the current state of an asynchronous task.
type TaskFetch func(ctx context.Context, id string) (*api.Task, error)

// PollTask fetches the task at a fixed cadence until it reaches a
// terminal status or the context ends. Transient fetch errors are
// retried; the last state is returned alongside any terminal failure.
func PollTask(ctx context.Context, fetch TaskFetch, id string, interval time.Duration) (*api.Task, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		task, err := fetch(ctx, id)
		if err != nil {
			lastErr = err
		} else if task != nil && task.Done() {
			if task.Failed() {
				message := task.Message
				if message == "" {
					message = "任务执行失败"
				}
				return task, fmt.Errorf("%s", message)
			}
			return task, nil
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
