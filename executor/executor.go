// Package executor provides implementations of the capability to run a unit
// of work asynchronously.
//
// The parallel package only depends on the Executor interface. System starts
// one goroutine per task, Pool runs tasks on a fixed set of worker
// goroutines, and Inline runs tasks synchronously, which is mostly useful for
// testing and debugging.
package executor

import (
	"github.com/pkg/errors"
)

var (
	// ErrPoolClosed is returned by Pool.Submit after Close has been called.
	ErrPoolClosed = errors.New("executor pool closed")

	// ErrNilTask is returned when a nil task is submitted.
	ErrNilTask = errors.New("nil task submitted")
)

// An Executor runs submitted tasks asynchronously.
//
// Submit either returns an error, in which case the task is never run, or it
// returns nil and the task is eventually run exactly once, possibly on
// another goroutine. Submit does not wait for the task to finish.
type Executor interface {
	Submit(task func()) error
}

// System runs each submitted task in its own goroutine.
type System struct{}

func (System) Submit(task func()) error {
	if task == nil {
		return errors.WithStack(ErrNilTask)
	}
	tasksSubmitted.WithLabelValues(kindSystem).Inc()
	go func() {
		defer tasksCompleted.WithLabelValues(kindSystem).Inc()
		task()
	}()
	return nil
}

// Inline runs each submitted task synchronously, before Submit returns.
type Inline struct{}

func (Inline) Submit(task func()) error {
	if task == nil {
		return errors.WithStack(ErrNilTask)
	}
	tasksSubmitted.WithLabelValues(kindInline).Inc()
	defer tasksCompleted.WithLabelValues(kindInline).Inc()
	task()
	return nil
}
