//go:build !unix

package sim

// MmapTraceReader is unavailable without unix mmap support; callers on
// other platforms fall back to ReadTraceFile.
type MmapTraceReader struct{}

// OpenMmapTrace reports that memory mapping is unsupported here
func OpenMmapTrace(path string) (*MmapTraceReader, error) {
	return nil, NewSimError(ErrCodeTraceReadFailed, "OpenMmapTrace",
		"memory-mapped traces are not supported on this platform", nil)
}

func (r *MmapTraceReader) RefString() ([]int, error) {
	return nil, NewSimError(ErrCodeTraceReadFailed, "RefString",
		"memory-mapped traces are not supported on this platform", nil)
}

func (r *MmapTraceReader) Size() int { return 0 }

func (r *MmapTraceReader) Close() error { return nil }
