// Package gsync provides the synchronization abstractions used to join
// parallel slices: a countdown latch and a slot for the first failure.
package gsync

import (
	"context"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

// AtomicPointer enables type-safe atomic operations on pointer values.
type AtomicPointer[T any] struct{ ptr unsafe.Pointer }

func (ptr *AtomicPointer[T]) CompareAndSwap(old, new *T) (swapped bool) {
	return atomic.CompareAndSwapPointer(&ptr.ptr, unsafe.Pointer(old), unsafe.Pointer(new))
}

func (ptr *AtomicPointer[T]) Load() *T {
	return (*T)(atomic.LoadPointer(&ptr.ptr))
}

// A Latch lets one goroutine wait until a fixed number of participants have
// counted down.
//
// The participant count is known up front. Each participant calls CountDown
// exactly once; every write a participant makes before CountDown happens
// before Wait returns.
type Latch struct {
	count atomic.Int64
	done  chan struct{}
}

// NewLatch returns a Latch for n participants. A Latch for 0 participants is
// already released.
//
// NewLatch panics if n < 0.
func NewLatch(n int) *Latch {
	if n < 0 {
		panic(fmt.Sprintf("invalid number of participants: %v", n))
	}
	l := &Latch{done: make(chan struct{})}
	l.count.Store(int64(n))
	if n == 0 {
		close(l.done)
	}
	return l
}

// CountDown records that one participant has finished.
//
// CountDown panics if it is called more often than the number of
// participants.
func (l *Latch) CountDown() {
	switch c := l.count.Add(-1); {
	case c == 0:
		close(l.done)
	case c < 0:
		panic("latch counted down below zero")
	}
}

// Count returns the number of participants that have not yet counted down.
func (l *Latch) Count() int {
	if c := l.count.Load(); c > 0 {
		return int(c)
	}
	return 0
}

// Done returns a channel that is closed when all participants have counted
// down.
func (l *Latch) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until all participants have counted down.
func (l *Latch) Wait() {
	<-l.done
}

// WaitContext is like Wait, but returns early with the context's error if ctx
// is done first. The participants keep running in that case.
func (l *Latch) WaitContext(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "waiting for %v participants", l.Count())
	}
}

type failure struct{ value interface{} }

// A Failure keeps the first non-nil value recorded into it, typically a
// recovered panic or an error. Later values are dropped.
//
// The zero Failure is empty and ready to use.
type Failure struct {
	first AtomicPointer[failure]
}

// Record stores p if p is non-nil and no value has been recorded yet. It
// reports whether p was stored.
func (f *Failure) Record(p interface{}) bool {
	if p == nil {
		return false
	}
	return f.first.CompareAndSwap(nil, &failure{p})
}

// Load returns the recorded value, or nil.
func (f *Failure) Load() interface{} {
	if first := f.first.Load(); first != nil {
		return first.value
	}
	return nil
}

// Err returns the recorded value if it is an error, and nil otherwise.
func (f *Failure) Err() error {
	err, _ := f.Load().(error)
	return err
}

// Rethrow panics with the recorded value, if any.
func (f *Failure) Rethrow() {
	if p := f.Load(); p != nil {
		panic(p)
	}
}
