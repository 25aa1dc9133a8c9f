package internal

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// WorkerCount resolves a requested number of workers. A value of 0 selects
// runtime.NumCPU(); the result is always at least 1.
func WorkerCount(requested int) (workers int) {
	switch {
	case requested > 0:
		workers = requested
	case requested == 0:
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	default:
		panic(fmt.Sprintf("invalid number of workers: %v", requested))
	}
	return
}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		if err, isError := p.(error); isError {
			return fmt.Errorf("%w\n%s\nrethrown at", err, debug.Stack())
		}
		return fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
	}
	return nil
}
