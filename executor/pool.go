package executor

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/intel/forGoRange/internal"
)

// A Pool runs submitted tasks on a fixed number of worker goroutines, which
// take tasks in submission order from a bounded queue.
//
// Submit blocks while the queue is full. A task that submits work to its own
// pool and then waits for that work can therefore deadlock once all workers
// do the same; use System for nested dispatches.
//
// A task that panics is recovered by its worker, which logs the panic and
// keeps running.
type Pool struct {
	tasks   chan func()
	workers int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool starts a Pool with the given number of workers and queue capacity.
// If workers is 0, runtime.NumCPU() workers are started.
//
// NewPool panics if workers < 0 or queue < 0.
func NewPool(workers, queue int) *Pool {
	if queue < 0 {
		panic(fmt.Sprintf("invalid queue capacity: %v", queue))
	}
	p := &Pool{
		tasks:   make(chan func(), queue),
		workers: internal.WorkerCount(workers),
	}
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work(i)
	}
	jww.DEBUG.Printf("executor pool started with %v workers, queue capacity %v", p.workers, queue)
	return p
}

// Workers returns the number of worker goroutines of p.
func (p *Pool) Workers() int {
	return p.workers
}

// Submit queues task for execution by one of the workers.
func (p *Pool) Submit(task func()) error {
	if task == nil {
		return errors.WithStack(ErrNilTask)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errors.WithStack(ErrPoolClosed)
	}
	tasksSubmitted.WithLabelValues(kindPool).Inc()
	poolQueued.Inc()
	p.tasks <- task
	return nil
}

// Close stops accepting tasks, runs all tasks that are already queued, and
// waits for the workers to terminate. Calling Close more than once is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for task := range p.tasks {
		poolQueued.Dec()
		p.run(id, task)
	}
}

func (p *Pool) run(id int, task func()) {
	poolBusy.Inc()
	defer func() {
		if r := recover(); r != nil {
			taskPanics.Inc()
			jww.ERROR.Printf("executor pool worker %v recovered task panic: %v", id, internal.WrapPanic(r))
		}
		poolBusy.Dec()
		tasksCompleted.WithLabelValues(kindPool).Inc()
	}()
	task()
}
