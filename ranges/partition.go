package ranges

import "fmt"

// Split divides r into parts contiguous Ranges of balanced size.
//
// If the size of r is not a multiple of parts, the first size % parts Ranges
// receive one element more than the others, so no two Ranges differ in size
// by more than one element. The result always has exactly parts entries, and
// concatenating them in order yields r.
//
// When parts exceeds the size of r, the trailing Ranges are empty and
// positioned at r.End().
//
// Split panics if parts <= 0.
func Split(r Range, parts int) []Range {
	if parts <= 0 {
		panic(fmt.Sprintf("invalid number of parts: %v", parts))
	}
	size := r.Size()
	avg, remainder := size/parts, size%parts
	result := make([]Range, 0, parts)
	first := r.first
	for i := 0; i < parts; i++ {
		segment := avg
		if i < remainder {
			segment++
		}
		if rest := r.last - first; segment > rest {
			segment = rest
		}
		result = append(result, Range{first, first + segment})
		first += segment
	}
	return result
}

// TakeSplice returns the slice with index id among total balanced slices of r,
// without computing the other slices.
//
// The result is identical to Split(r, total)[id].
//
// TakeSplice panics if total <= 0, or if id is not in [0, total).
func TakeSplice(r Range, id, total int) Range {
	if total <= 0 {
		panic(fmt.Sprintf("invalid number of slices: %v", total))
	}
	if id < 0 || id >= total {
		panic(fmt.Sprintf("invalid slice id: %v of %v", id, total))
	}
	size := r.Size()
	base, modulo := size/total, size%total
	offset := base*id + min(modulo, id)
	length := base
	if id < modulo {
		length++
	}
	first := r.first + offset
	return Range{first, first + length}
}
