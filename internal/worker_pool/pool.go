package worker_pool

import (
	"context"
	"runtime"
	"sync"
)

// Task represents a unit of work producing a T
type Task[T any] func(ctx context.Context) (T, error)

// Result represents the result of a task execution
type Result[T any] struct {
	Value T
	Error error
}

// WorkerPool bounds how many tasks run at once
type WorkerPool struct {
	maxWorkers int
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	return &WorkerPool{maxWorkers: maxWorkers}
}

// GetMaxWorkers returns the maximum number of workers
func (wp *WorkerPool) GetMaxWorkers() int {
	return wp.maxWorkers
}

// Run executes all tasks on wp and returns results in task order. Tasks not
// yet started when ctx is cancelled report ctx.Err().
func Run[T any](ctx context.Context, wp *WorkerPool, tasks []Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))
	if len(tasks) == 0 {
		return results
	}

	semaphore := make(chan struct{}, wp.maxWorkers)
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(index int, t Task[T]) {
			defer wg.Done()

			// Acquire semaphore (blocks if max workers already running)
			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				results[index] = Result[T]{Error: ctx.Err()}
				return
			}

			if err := ctx.Err(); err != nil {
				results[index] = Result[T]{Error: err}
				return
			}

			value, err := t(ctx)
			results[index] = Result[T]{Value: value, Error: err}
		}(i, task)
	}

	wg.Wait()
	return results
}
