package tasks

import (
	"context"
	"log/slog"
	"sync"
)

type Task = func()

// BackgroudTasks runs tasks on a fixed number of workers fed from a bounded
// queue. A panicking task is logged and does not take its worker down.
type BackgroudTasks struct {
	log        *slog.Logger
	tasks      chan Task
	maxWorkers int
	wg         *sync.WaitGroup
}

func New(log *slog.Logger, maxWorkers int, maxTasksQueueSize int) *BackgroudTasks {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	wg := &sync.WaitGroup{}
	wg.Add(maxWorkers)
	tasks := make(chan Task, maxTasksQueueSize)
	return &BackgroudTasks{
		log:        log,
		maxWorkers: maxWorkers,
		wg:         wg,
		tasks:      tasks,
	}
}

func (t *BackgroudTasks) Run() {
	for i := 0; i < t.maxWorkers; i++ {
		go func() {
			defer t.wg.Done()
			log := t.log.With("worker", i)
			for task := range t.tasks {
				t.run(log, task)
			}
		}()
	}
}

func (t *BackgroudTasks) run(log *slog.Logger, task Task) {
	defer func() {
		if err := recover(); err != nil {
			log.Error("panic", "err", err)
		}
	}()
	task()
}

// Add queues task, blocking while the queue is full.
func (t *BackgroudTasks) Add(task Task) {
	t.tasks <- task
}

// TryAdd queues task unless the queue is full, in which case the task is
// dropped and false returned.
func (t *BackgroudTasks) TryAdd(task Task) bool {
	select {
	case t.tasks <- task:
		return true
	default:
		t.log.Warn("background queue full, dropping task", "op", "tasks.BackgroudTasks.TryAdd")
		return false
	}
}

func (t *BackgroudTasks) IsEmpty() bool {
	return len(t.tasks) == 0
}

// Shutdown stops accepting tasks and waits for the queued ones to finish.
func (t *BackgroudTasks) Shutdown(ctx context.Context) error {
	const op = "tasks.BackgroudTasks.Shutdown"
	log := t.log.With("op", op)
	log.Info("shutting down background tasks")
	close(t.tasks)
	shutdownCh := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(shutdownCh)
	}()
	select {
	case <-ctx.Done():
		log.Warn("graceful shutdown timed out.. forcing exit", "timeout", ctx.Err())
		return ctx.Err()
	case <-shutdownCh:
		log.Info("Background tasks succesfully stopped")
		return nil
	}
}
