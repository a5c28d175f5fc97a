package sim

import (
	"math/rand"
)

// Normalize removes every element of the reference string that equals
// its immediate predecessor, so a run of consecutive duplicates collapses
// to its earliest occurrence. A repeated access to an already resident
// page is not a new request for fault counting purposes.
// The input is never mutated; a fresh slice is returned. Output invariant:
// no two adjacent elements are equal. Normalize is idempotent.
func Normalize(ref []int) []int {
	out := make([]int, 0, len(ref))
	for _, page := range ref {
		if len(out) > 0 && out[len(out)-1] == page {
			continue
		}
		out = append(out, page)
	}
	return out
}

// Generate produces a reference string of size uniformly random page
// identifiers in [0, upperBound) with no two adjacent elements equal:
// each draw that matches the previous element is redrawn until it differs.
// The result satisfies the Normalize invariant by construction.
//
// upperBound must be positive, and greater than 1 whenever size > 1
// (a single page value cannot satisfy adjacent distinctness, and the
// redraw loop would never terminate).
func Generate(size, upperBound int) ([]int, error) {
	if size < 0 {
		return nil, ErrInvalidLength("Generate", size)
	}
	if upperBound <= 0 || (upperBound == 1 && size > 1) {
		return nil, ErrInvalidUpperBound("Generate", upperBound)
	}

	ref := make([]int, size)
	if size == 0 {
		return ref, nil
	}

	ref[0] = rand.Intn(upperBound)
	for i := 1; i < size; i++ {
		ref[i] = rand.Intn(upperBound)
		for ref[i] == ref[i-1] {
			ref[i] = rand.Intn(upperBound)
		}
	}

	return ref, nil
}
