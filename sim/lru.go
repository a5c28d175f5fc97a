package sim

import (
	"slices"
)

// LRUPolicy implements LRU (Least Recently Used) page replacement.
// Recency is tracked purely by position in the resident set: head is
// the least recently used page, tail the most recent. A hit relocates
// the page to the tail, which is the only behavioral difference from
// FIFO — eviction picks oldest-since-last-use, not oldest-since-insert.
type LRUPolicy struct {
	numPages  int
	numFrames int
}

// NewLRUPolicy creates a new LRU policy
func NewLRUPolicy(numPages, numFrames int) (*LRUPolicy, error) {
	if err := validateLimits("NewLRUPolicy", numPages, numFrames); err != nil {
		return nil, err
	}
	return &LRUPolicy{
		numPages:  numPages,
		numFrames: numFrames,
	}, nil
}

// Name returns the algorithm tag
func (p *LRUPolicy) Name() string {
	return PolicyLRU
}

// ComputeFaults counts page faults over the reference string
func (p *LRUPolicy) ComputeFaults(ref []int) int {
	resident := make([]int, 0, p.numFrames)
	faults := 0

	for _, page := range Normalize(ref) {
		if Contains(page, slices.Values(resident)) {
			// Hit: relocate to the most-recently-used position
			i := slices.Index(resident, page)
			resident = append(slices.Delete(resident, i, i+1), page)
			continue
		}

		if len(resident) == p.numFrames {
			// Evict the least recently used page
			resident = resident[1:]
		}

		resident = append(resident, page)
		faults++
	}

	return faults
}
