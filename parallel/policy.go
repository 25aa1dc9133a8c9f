package parallel

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// A Policy selects how a dispatch executes its range.
type Policy int

const (
	// Sequential applies the function to each element in order on the
	// calling goroutine.
	Sequential Policy = iota

	// Parallel partitions the range into one balanced slice per worker and
	// executes the slices concurrently.
	Parallel

	// ParallelVector permits vectorized execution within a slice as well.
	// Go offers no portable way to exploit that, so it executes exactly like
	// Parallel.
	ParallelVector
)

var policyNames = [...]string{
	Sequential:     "sequential",
	Parallel:       "parallel",
	ParallelVector: "parallel-vector",
}

func (p Policy) String() string {
	if p >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// IsParallel reports whether p executes slices concurrently.
func (p Policy) IsParallel() bool {
	return p == Parallel || p == ParallelVector
}

// ParsePolicy returns the Policy with the given name, as returned by String.
// Matching is case-insensitive.
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range policyNames {
		if n == name {
			return Policy(p), nil
		}
	}
	return Sequential, errors.Errorf("unknown execution policy %q", name)
}
