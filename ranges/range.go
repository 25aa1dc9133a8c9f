// Package ranges provides a value type for half-open index ranges, and
// functions for partitioning such ranges into balanced, contiguous slices.
//
// A Range never owns the elements it refers to. It is a pair of positions into
// some sequence, usually a Go slice, and the sequence must outlive every Range
// derived from it.
package ranges

import "fmt"

// A Range represents the half-open interval from first to last, including
// first but excluding last.
//
// Ranges are values. They can be copied and compared with ==, and they are
// never modified in place: partitioning a Range always yields new Ranges.
type Range struct {
	first, last int
}

// New returns the Range from first to last.
//
// New panics if first < 0 or last < first.
func New(first, last int) Range {
	if first < 0 || last < first {
		panic(fmt.Sprintf("invalid range: %v:%v", first, last))
	}
	return Range{first, last}
}

// Of returns the Range covering all elements of s.
func Of[T any](s []T) Range {
	return Range{0, len(s)}
}

// Begin returns the first position of r.
func (r Range) Begin() int {
	return r.first
}

// End returns the position one past the last element of r.
func (r Range) End() int {
	return r.last
}

// Size returns the number of elements in r.
func (r Range) Size() int {
	return r.last - r.first
}

// Empty reports whether r has no elements.
func (r Range) Empty() bool {
	return r.first == r.last
}

// Equal reports whether r and other start and end at the same positions.
func (r Range) Equal(other Range) bool {
	return r.first == other.first && r.last == other.last
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.first, r.last)
}

// Slice returns the elements of s that r covers. The result shares its
// backing array with s.
//
// Slice panics if r extends beyond len(s).
func Slice[T any](r Range, s []T) []T {
	return s[r.first:r.last:r.last]
}
