package sim

import (
	"maps"
	"slices"
)

// OPTPolicy implements OPT (Belady's optimal) page replacement: on a
// fault the eviction victim is the resident page whose next use lies
// furthest in the future, or one that is never used again.
//
// The policy carries two limits. numPages bounds the process address
// space and is the threshold at which eviction engages: the resident
// set fills fault-free (faulting, but never evicting) until it holds
// numPages distinct pages. numFrames is accepted for contract symmetry
// with the other policies but does not bound the resident set here.
// Callers wanting the single-limit textbook behavior pass
// numPages == numFrames.
type OPTPolicy struct {
	numPages  int
	numFrames int
}

// NewOPTPolicy creates a new OPT policy
func NewOPTPolicy(numPages, numFrames int) (*OPTPolicy, error) {
	if err := validateLimits("NewOPTPolicy", numPages, numFrames); err != nil {
		return nil, err
	}
	return &OPTPolicy{
		numPages:  numPages,
		numFrames: numFrames,
	}, nil
}

// Name returns the algorithm tag
func (p *OPTPolicy) Name() string {
	return PolicyOPT
}

// ComputeFaults counts page faults over the reference string.
// Worst case O(n^2): every eviction-triggering fault scans the
// remainder of the sequence.
func (p *OPTPolicy) ComputeFaults(ref []int) int {
	norm := Normalize(ref)

	if p.numPages == 0 {
		// No page may become resident, every request faults
		return len(norm)
	}

	resident := make(map[int]struct{}, p.numPages)
	faults := 0

	for i, page := range norm {
		if Contains(page, maps.Keys(resident)) {
			continue
		}
		faults++

		if len(resident) < p.numPages {
			// Filling phase: the address space still has room,
			// no eviction is needed
			resident[page] = struct{}{}
			continue
		}

		// Collect, in order of first occurrence, every future request
		// that is currently resident. The first element is the resident
		// page reused soonest, the last the one reused furthest away.
		future := make([]int, 0, len(resident))
		for _, upcoming := range norm[i:] {
			if !Contains(upcoming, maps.Keys(resident)) {
				continue
			}
			if !Contains(upcoming, slices.Values(future)) {
				future = append(future, upcoming)
			}
		}

		if len(future) == len(resident) {
			// Every resident page is reused, evict the one whose
			// next use is furthest in the future
			delete(resident, future[len(future)-1])
		} else {
			// Some resident page is never referenced again, any such
			// page is a safe optimal victim. Map iteration order makes
			// the tie-break arbitrary, which does not affect the count.
			for victim := range resident {
				if !Contains(victim, slices.Values(future)) {
					delete(resident, victim)
					break
				}
			}
		}

		resident[page] = struct{}{}
	}

	return faults
}
