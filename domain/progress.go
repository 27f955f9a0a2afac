package domain

import (
	"context"
	"time"
)

// ProgressManager creates progress tasks for long-running work
type ProgressManager interface {
	// StartTask creates a new task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether progress is rendered to a terminal
	IsInteractive() bool

	// Close finishes all tasks
	Close()
}

// TaskProgress tracks a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is a unit of work run by a ParallelExecutor
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

// TaskResults maps task names to the values their Execute returned
type TaskResults map[string]interface{}

// ParallelExecutor runs independent tasks concurrently
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) (TaskResults, error)
	SetMaxConcurrency(max int)
	SetTimeout(timeout time.Duration)
}
