package sim

// Policy is the contract shared by all page replacement policies.
// A policy consumes an ordered reference string and reports how many
// page faults occur for a fixed page/frame configuration.
// Implementations normalize the reference string before simulating and
// hold no state between calls, so a single Policy value is safe to use
// from multiple goroutines.
type Policy interface {
	// Name returns the algorithm tag (fifo, lru, opt)
	Name() string

	// ComputeFaults runs the policy over the reference string and
	// returns the total page fault count
	ComputeFaults(ref []int) int
}

// Supported policy algorithm tags
const (
	PolicyFIFO = "fifo"
	PolicyLRU  = "lru"
	PolicyOPT  = "opt"
)

// NewPolicy creates a policy based on the specified algorithm.
// numPages bounds the process address space, numFrames the number of
// physical frames. numFrames must be at least 1 and numPages at least 0;
// violating either is a caller contract error, not a computable input.
func NewPolicy(algorithm string, numPages, numFrames int) (Policy, error) {
	switch algorithm {
	case PolicyFIFO:
		return NewFIFOPolicy(numPages, numFrames)
	case PolicyLRU:
		return NewLRUPolicy(numPages, numFrames)
	case PolicyOPT:
		return NewOPTPolicy(numPages, numFrames)
	default:
		return nil, ErrUnknownPolicy("NewPolicy", algorithm)
	}
}

// validateLimits checks the page/frame preconditions shared by all
// policy constructors
func validateLimits(op string, numPages, numFrames int) error {
	if numFrames < 1 {
		return ErrInvalidFrameCount(op, numFrames)
	}
	if numPages < 0 {
		return ErrInvalidPageCount(op, numPages)
	}
	return nil
}
