// SPDX-License-Identifier: GPL-3.0-or-later
package scheduler

import (
	"sync"

	"github.com/mvelho/go-mail-triage/log"

	"github.com/sirupsen/logrus"
)

// WorkerPool runs submitted tasks on a fixed number of goroutines. Mailbox
// runs are long and sequential inside, so bounding the workers bounds the
// number of mailboxes synced at once.
type WorkerPool struct {
	tasks chan func()
	wg    sync.WaitGroup

	l *logrus.Logger
}

func NewWorkerPool(workers int) *WorkerPool {
	pool := &WorkerPool{
		tasks: make(chan func(), workers),
		l:     log.Logger(log.LOG_SCHEDULER),
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.work()
	}

	return pool
}

func (p *WorkerPool) work() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit enqueues a task, blocking once all workers are busy and the
// backlog is full.
func (p *WorkerPool) Submit(task func()) {
	p.tasks <- task
}

// Stop waits for all submitted tasks to finish. Submit must not be called
// after Stop.
func (p *WorkerPool) Stop() {
	close(p.tasks)
	p.wg.Wait()
	p.l.Info("Worker pool stopped")
}
