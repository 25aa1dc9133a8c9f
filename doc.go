// This package provides functions and data structures for executing
// operations over ranges of elements in parallel.
//
// It provides the following subpackages:
//
// forGoRange/ranges provides a value type for half-open index ranges, and
// functions that partition ranges into balanced, contiguous slices.
//
// forGoRange/parallel provides execution policies and a dispatcher that
// applies functions to every element of a range, either sequentially or by
// running one slice per worker concurrently, as well as map-then-reduce
// functions over ranges.
//
// forGoRange/executor provides the executors that run parallel slices: one
// goroutine per slice, a fixed worker pool, or inline execution.
//
// forGoRange/gsync provides synchronization abstractions for joining slices.
package forGoRange
