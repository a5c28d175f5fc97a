package sim

import (
	"math/rand"
	"testing"
)

// TestFIFOTextbookSequence pins the classic three-frame baseline
func TestFIFOTextbookSequence(t *testing.T) {
	policy, err := NewFIFOPolicy(3, 3)
	if err != nil {
		t.Fatalf("NewFIFOPolicy failed: %v", err)
	}

	if faults := policy.ComputeFaults(textbookRefString); faults != 15 {
		t.Errorf("Expected 15 faults, got %d", faults)
	}
}

// TestFIFOEvictsOldestInserted tests that a hit does not refresh FIFO
// order: 1 is still the oldest insert when 4 arrives
func TestFIFOEvictsOldestInserted(t *testing.T) {
	policy, err := NewFIFOPolicy(9, 3)
	if err != nil {
		t.Fatalf("NewFIFOPolicy failed: %v", err)
	}

	// 1,2,3 fault and fill; the hit on 1 changes nothing; 4 faults and
	// evicts 1; the final 1 faults again
	faults := policy.ComputeFaults([]int{1, 2, 3, 1, 4, 1})
	if faults != 5 {
		t.Errorf("Expected 5 faults, got %d", faults)
	}
}

// TestFIFODistinctFitsInFrames tests that with enough frames each
// distinct page faults exactly once
func TestFIFODistinctFitsInFrames(t *testing.T) {
	rand.Seed(42)

	for trial := 0; trial < 20; trial++ {
		ref, err := Generate(200, 8)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		distinct := make(map[int]struct{})
		for _, page := range ref {
			distinct[page] = struct{}{}
		}

		policy, err := NewFIFOPolicy(8, len(distinct))
		if err != nil {
			t.Fatalf("NewFIFOPolicy failed: %v", err)
		}

		if faults := policy.ComputeFaults(ref); faults != len(distinct) {
			t.Errorf("Expected %d faults (one per distinct page), got %d", len(distinct), faults)
		}
	}
}

// TestFIFOBeladyAnomaly pins the classic sequence where adding a frame
// makes FIFO worse, which is why monotonicity is not asserted for FIFO
func TestFIFOBeladyAnomaly(t *testing.T) {
	ref := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

	three, err := NewFIFOPolicy(5, 3)
	if err != nil {
		t.Fatalf("NewFIFOPolicy failed: %v", err)
	}
	four, err := NewFIFOPolicy(5, 4)
	if err != nil {
		t.Fatalf("NewFIFOPolicy failed: %v", err)
	}

	if faults := three.ComputeFaults(ref); faults != 9 {
		t.Errorf("Expected 9 faults with 3 frames, got %d", faults)
	}
	if faults := four.ComputeFaults(ref); faults != 10 {
		t.Errorf("Expected 10 faults with 4 frames, got %d", faults)
	}
}

// TestFIFOSingleFrame tests the minimal configuration: every
// normalized request faults
func TestFIFOSingleFrame(t *testing.T) {
	policy, err := NewFIFOPolicy(9, 1)
	if err != nil {
		t.Fatalf("NewFIFOPolicy failed: %v", err)
	}

	ref := []int{1, 2, 1, 2, 3}
	if faults := policy.ComputeFaults(ref); faults != 5 {
		t.Errorf("Expected 5 faults, got %d", faults)
	}
}
