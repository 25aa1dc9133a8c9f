// Package parallel provides functions for applying operations to the elements
// of a range, either sequentially or in parallel.
//
// A parallel dispatch divides its range into one balanced, contiguous slice
// per worker (see ranges.Split), runs the first slice on the calling
// goroutine and all other slices through an executor, and returns only when
// all slices have terminated. The package-level functions use the Default
// dispatcher; use NewDispatcher to choose the number of workers or the
// executor explicitly.
package parallel

import (
	"github.com/intel/forGoRange/ranges"
)

type Addable interface {
	~uint | ~int | ~uintptr |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64 |
		~complex64 | ~complex128 |
		~string
}

// ForEach applies f to every element of s according to policy, using the
// Default dispatcher, and returns f.
//
// See Dispatcher.ForEach for the ordering and panic guarantees.
func ForEach[T any](policy Policy, s []T, f func(T)) func(T) {
	return ForEachOn(defaultDispatcher, policy, s, f)
}

// ForEachOn is like ForEach, but uses the given dispatcher.
func ForEachOn[T any](d *Dispatcher, policy Policy, s []T, f func(T)) func(T) {
	d.ForEachRange(policy, ranges.Of(s), func(_ int, r ranges.Range) {
		for _, x := range ranges.Slice(r, s) {
			f(x)
		}
	})
	return f
}

// ForEachIndex applies f to every index in the half-open interval from low to
// high according to policy, using the Default dispatcher, and returns f.
//
// ForEachIndex panics if high < low or low < 0.
func ForEachIndex(policy Policy, low, high int, f func(i int)) func(int) {
	return defaultDispatcher.ForEach(policy, ranges.New(low, high), f)
}

// ForEachErr applies f to every index in the half-open interval from low to
// high according to policy, using the Default dispatcher, and returns the
// first error returned by f.
func ForEachErr(policy Policy, low, high int, f func(i int) error) error {
	return defaultDispatcher.ForEachErr(policy, ranges.New(low, high), f)
}

// MapReduce invokes mapper once per slice of r, and combines the per-slice
// results with join, in slice order, on the calling goroutine.
//
// Each mapper invocation produces its own result, so mapper needs no shared
// mutable state. join must be associative; with the Sequential policy it is
// never called.
func MapReduce[R any](
	d *Dispatcher,
	policy Policy,
	r ranges.Range,
	mapper func(s ranges.Range) R,
	join func(x, y R) R,
) R {
	results := make([]R, d.Slices(policy))
	d.ForEachRange(policy, r, func(id int, s ranges.Range) {
		results[id] = mapper(s)
	})
	result := results[0]
	for _, x := range results[1:] {
		result = join(result, x)
	}
	return result
}

// ReduceSum invokes mapper once per slice of r using the Default dispatcher,
// and adds up the per-slice results.
func ReduceSum[T Addable](policy Policy, r ranges.Range, mapper func(s ranges.Range) T) T {
	return MapReduce(defaultDispatcher, policy, r, mapper, func(x, y T) T {
		return x + y
	})
}

// Do receives zero or more thunks and executes them in parallel, using the
// Default dispatcher.
//
// The thunks are grouped into one slice per worker; thunks within a slice run
// one after another in argument order. Do returns only when all thunks have
// terminated.
//
// If one or more thunks panic, Do eventually panics with the first recovered
// panic value.
func Do(thunks ...func()) {
	switch len(thunks) {
	case 0:
		return
	case 1:
		thunks[0]()
		return
	}
	defaultDispatcher.ForEach(Parallel, ranges.Of(thunks), func(i int) {
		thunks[i]()
	})
}
