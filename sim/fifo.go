package sim

import (
	"slices"
)

// FIFOPolicy implements FIFO (First In First Out) page replacement.
// On a fault at capacity the longest-resident page is evicted regardless
// of how recently it was used.
type FIFOPolicy struct {
	numPages  int
	numFrames int
}

// NewFIFOPolicy creates a new FIFO policy
func NewFIFOPolicy(numPages, numFrames int) (*FIFOPolicy, error) {
	if err := validateLimits("NewFIFOPolicy", numPages, numFrames); err != nil {
		return nil, err
	}
	return &FIFOPolicy{
		numPages:  numPages,
		numFrames: numFrames,
	}, nil
}

// Name returns the algorithm tag
func (p *FIFOPolicy) Name() string {
	return PolicyFIFO
}

// ComputeFaults counts page faults over the reference string.
// The resident set is an insertion-ordered queue: head is the
// oldest-inserted page and is the eviction victim at capacity.
func (p *FIFOPolicy) ComputeFaults(ref []int) int {
	resident := make([]int, 0, p.numFrames)
	faults := 0

	for _, page := range Normalize(ref) {
		if Contains(page, slices.Values(resident)) {
			// Hit, FIFO order is unaffected by use
			continue
		}

		if len(resident) == p.numFrames {
			// Evict the oldest-inserted page
			resident = resident[1:]
		}

		resident = append(resident, page)
		faults++
	}

	return faults
}
