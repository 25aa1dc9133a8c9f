package parallel

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/intel/forGoRange/executor"
	"github.com/intel/forGoRange/gsync"
	"github.com/intel/forGoRange/internal"
	"github.com/intel/forGoRange/ranges"
)

// A Dispatcher executes functions over ranges according to an execution
// Policy.
//
// For a parallel policy, the range is divided into one balanced slice per
// worker. Slices 1 to n-1 are submitted to the executor, slice 0 runs on the
// calling goroutine, and the dispatch returns only when all slices have
// terminated. The number of workers is fixed when the Dispatcher is created.
//
// A Dispatcher is safe for concurrent use.
type Dispatcher struct {
	exec    executor.Executor
	workers int
	name    string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithExecutor sets the executor that runs all slices except the first one.
//
// Parameters:
//   - exec: Executor implementation, executor.System{} by default
//
// Returns:
//   - Option: Functional option for NewDispatcher
//
// Example:
//
//	pool := executor.NewPool(0, 64)
//	defer pool.Close()
//	d := parallel.NewDispatcher(parallel.WithExecutor(pool))
func WithExecutor(exec executor.Executor) Option {
	return func(d *Dispatcher) {
		d.exec = exec
	}
}

// WithWorkers sets the number of slices a parallel dispatch is divided into.
//
// Parameters:
//   - n: number of workers; 0 selects runtime.NumCPU()
//
// Returns:
//   - Option: Functional option for NewDispatcher
func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		d.workers = n
	}
}

// WithName sets the name used to label the metrics and log lines of the
// Dispatcher.
func WithName(name string) Option {
	return func(d *Dispatcher) {
		d.name = name
	}
}

// NewDispatcher returns a Dispatcher configured by the given options.
//
// NewDispatcher panics if the number of workers is negative.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		exec: executor.System{},
		name: "default",
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.exec == nil {
		d.exec = executor.System{}
	}
	d.workers = internal.WorkerCount(d.workers)
	return d
}

var defaultDispatcher = NewDispatcher()

// Default returns the Dispatcher used by the package-level functions. It runs
// runtime.NumCPU() workers, one goroutine per submitted slice.
func Default() *Dispatcher {
	return defaultDispatcher
}

// Workers returns the number of slices a parallel dispatch is divided into.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// Name returns the name of the Dispatcher.
func (d *Dispatcher) Name() string {
	return d.name
}

// Slices returns the number of slices a dispatch with the given policy is
// divided into.
func (d *Dispatcher) Slices(policy Policy) int {
	if policy.IsParallel() {
		return d.workers
	}
	return 1
}

// ForEach applies f to every index in r, and returns f.
//
// With the Sequential policy, indices are visited in increasing order on the
// calling goroutine. With a parallel policy, every index is visited exactly
// once; indices within one slice are visited in increasing order, but there
// is no order between slices. If f has side effects on shared state, f must
// synchronize them itself; prefer MapReduce for accumulations.
//
// If one or more invocations of f panic, the panics are recovered, ForEach
// waits for the remaining slices, and eventually panics with the first
// recovered panic value.
func (d *Dispatcher) ForEach(policy Policy, r ranges.Range, f func(i int)) func(int) {
	d.ForEachRange(policy, r, func(_ int, s ranges.Range) {
		for i := s.Begin(); i < s.End(); i++ {
			f(i)
		}
	})
	return f
}

// ForEachErr applies f to every index in r, and returns the first error any
// invocation of f returned, or nil.
//
// A slice stops at its first error, but the other slices run to completion.
// The error is annotated with the index of the slice it occurred in.
func (d *Dispatcher) ForEachErr(policy Policy, r ranges.Range, f func(i int) error) error {
	var first gsync.Failure
	d.ForEachRange(policy, r, func(id int, s ranges.Range) {
		for i := s.Begin(); i < s.End(); i++ {
			if err := f(i); err != nil {
				sliceFailures.WithLabelValues(d.name).Inc()
				first.Record(errors.Wrapf(err, "slice %v at index %v", id, i))
				return
			}
		}
	})
	return first.Err()
}

// ForEachRange invokes f once per slice of r, passing the slice index and the
// slice itself. With the Sequential policy, f is invoked once with slice index
// 0 and the whole range.
//
// Panics are handled as described for ForEach.
func (d *Dispatcher) ForEachRange(policy Policy, r ranges.Range, f func(id int, s ranges.Range)) {
	start := time.Now()
	labels := []string{d.name, policy.String()}
	dispatchesTotal.WithLabelValues(labels...).Inc()
	defer func() {
		dispatchDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	}()

	if !policy.IsParallel() {
		defer func() {
			if p := recover(); p != nil {
				sliceFailures.WithLabelValues(d.name).Inc()
				panic(p)
			}
		}()
		f(0, r)
		return
	}

	n := d.workers
	var id dispatchID
	if debugEnabled() {
		jww.DEBUG.Printf("dispatch %v (%v): %v over %v with %v slices", &id, d.name, policy, r, n)
	}
	slicesTotal.WithLabelValues(d.name).Add(float64(n))

	var failure gsync.Failure
	fail := func(i int, s ranges.Range, p interface{}) {
		if p == nil {
			return
		}
		sliceFailures.WithLabelValues(d.name).Inc()
		if failure.Record(internal.WrapPanic(p)) && debugEnabled() {
			jww.DEBUG.Printf("dispatch %v: slice %v %v panicked", &id, i, s)
		}
	}

	latch := gsync.NewLatch(n - 1)
	for i := 1; i < n; i++ {
		s := ranges.TakeSplice(r, i, n)
		task := func() {
			defer func() {
				fail(i, s, recover())
				latch.CountDown()
			}()
			f(i, s)
		}
		if err := d.exec.Submit(task); err != nil {
			jww.WARN.Printf("dispatch %v: running slice %v %v inline: %+v", &id, i, s, err)
			inlineFallbacks.WithLabelValues(d.name).Inc()
			task()
		}
	}

	first := ranges.TakeSplice(r, 0, n)
	func() {
		defer func() {
			fail(0, first, recover())
		}()
		f(0, first)
	}()

	latch.Wait()
	failure.Rethrow()
}

// dispatchID correlates the log lines of one parallel dispatch. The id is
// generated the first time it is printed.
type dispatchID struct {
	once sync.Once
	id   uuid.UUID
}

func (d *dispatchID) String() string {
	d.once.Do(func() {
		d.id = uuid.New()
	})
	return d.id.String()
}

func debugEnabled() bool {
	return jww.LogThreshold() <= jww.LevelDebug || jww.StdoutThreshold() <= jww.LevelDebug
}
