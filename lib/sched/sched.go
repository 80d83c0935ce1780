// Package sched provides the cooperative one-shot task queue used to
// defer engine restarts past the event that triggered them.
package sched

import (
	"sync"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// Queue is a FIFO of one-shot tasks. The contract: a deferred task
// runs after the current handler completes, before any other queued
// work. The owning loop calls RunPending between handlers; tasks are
// not cancellable once deferred.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Defer schedules a one-shot task.
func (q *Queue) Defer(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
	log.Debug("one-shot task deferred")
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// RunPending runs queued tasks in FIFO order until the queue is
// empty, including tasks deferred by the tasks themselves. Returns
// the number of tasks run.
func (q *Queue) RunPending() int {
	ran := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return ran
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
		ran++
	}
}
