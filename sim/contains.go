package sim

import "iter"

// Contains reports whether needle occurs in seq, scanning linearly and
// stopping at the first match. Taking an iterator rather than a concrete
// container lets every policy share one membership predicate: FIFO and
// LRU keep ordered slice resident sets (slices.Values), OPT keeps an
// unordered map resident set (maps.Keys).
func Contains[T comparable](needle T, seq iter.Seq[T]) bool {
	for v := range seq {
		if v == needle {
			return true
		}
	}
	return false
}
