//go:build unix

package sim

import (
	"os"

	"golang.org/x/sys/unix"
)

// MmapTraceReader provides zero-copy access to a binary trace file
// using a read-only memory mapping. Useful for large traces where a
// buffered read would duplicate the whole file in memory.
type MmapTraceReader struct {
	file     *os.File
	mmapData []byte
}

// OpenMmapTrace memory-maps a binary trace file for reading
func OpenMmapTrace(path string) (*MmapTraceReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrTraceRead("OpenMmapTrace", path, err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, ErrTraceRead("OpenMmapTrace", path, err)
	}

	if fileInfo.Size() < TraceHeaderSize {
		file.Close()
		return nil, ErrTraceCorrupted("OpenMmapTrace", "truncated header")
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(fileInfo.Size()),
		unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, ErrTraceRead("OpenMmapTrace", path, err)
	}

	return &MmapTraceReader{
		file:     file,
		mmapData: data,
	}, nil
}

// RefString decodes the mapped trace into a reference string.
// The returned slice is an independent copy; it remains valid after
// Close.
func (r *MmapTraceReader) RefString() ([]int, error) {
	return DecodeTrace(r.mmapData)
}

// Size returns the mapped file size in bytes
func (r *MmapTraceReader) Size() int {
	return len(r.mmapData)
}

// Close unmaps the trace and closes the underlying file
func (r *MmapTraceReader) Close() error {
	if r.mmapData != nil {
		if err := unix.Munmap(r.mmapData); err != nil {
			r.file.Close()
			return ErrTraceRead("Close", r.file.Name(), err)
		}
		r.mmapData = nil
	}
	return r.file.Close()
}
