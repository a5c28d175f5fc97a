package sim

import (
	"path/filepath"
	"slices"
	"testing"
)

func repetitiveTrace(n int) []int {
	ref := make([]int, n)
	for i := range ref {
		ref[i] = i % 4
	}
	return ref
}

// TestTraceRoundTrip tests encode/decode for every compression type
func TestTraceRoundTrip(t *testing.T) {
	ref := repetitiveTrace(400)

	for _, compression := range []TraceCompression{
		TraceCompressionNone,
		TraceCompressionLZ4,
		TraceCompressionSnappy,
	} {
		data, err := EncodeTrace(ref, compression)
		if err != nil {
			t.Fatalf("EncodeTrace(%d) failed: %v", compression, err)
		}

		decoded, err := DecodeTrace(data)
		if err != nil {
			t.Fatalf("DecodeTrace(%d) failed: %v", compression, err)
		}

		if !slices.Equal(decoded, ref) {
			t.Errorf("Round trip mismatch for compression %d", compression)
		}
	}
}

// TestTraceCompressionShrinksPayload tests that a repetitive trace
// actually compresses
func TestTraceCompressionShrinksPayload(t *testing.T) {
	ref := repetitiveTrace(1000)

	raw, err := EncodeTrace(ref, TraceCompressionNone)
	if err != nil {
		t.Fatalf("EncodeTrace failed: %v", err)
	}

	compressed, err := EncodeTrace(ref, TraceCompressionSnappy)
	if err != nil {
		t.Fatalf("EncodeTrace failed: %v", err)
	}

	if len(compressed) >= len(raw) {
		t.Errorf("Expected snappy to shrink %d bytes, got %d", len(raw), len(compressed))
	}
}

// TestTraceEmptyRoundTrip tests the zero-element trace
func TestTraceEmptyRoundTrip(t *testing.T) {
	data, err := EncodeTrace([]int{}, TraceCompressionLZ4)
	if err != nil {
		t.Fatalf("EncodeTrace failed: %v", err)
	}

	decoded, err := DecodeTrace(data)
	if err != nil {
		t.Fatalf("DecodeTrace failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("Expected empty trace, got %v", decoded)
	}
}

// TestTraceRejectsNegativePages tests page ID validation on encode
func TestTraceRejectsNegativePages(t *testing.T) {
	_, err := EncodeTrace([]int{1, -2, 3}, TraceCompressionNone)
	if !IsErrorCode(err, ErrCodeInvalidPageID) {
		t.Errorf("Expected invalid page ID error, got %v", err)
	}
}

// TestTraceCorruptionDetection tests header and checksum validation
func TestTraceCorruptionDetection(t *testing.T) {
	ref := repetitiveTrace(100)
	data, err := EncodeTrace(ref, TraceCompressionNone)
	if err != nil {
		t.Fatalf("EncodeTrace failed: %v", err)
	}

	// Truncated header
	if _, err := DecodeTrace(data[:4]); !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Errorf("Expected corruption error for truncated header, got %v", err)
	}

	// Bad magic
	bad := slices.Clone(data)
	bad[0] ^= 0xFF
	if _, err := DecodeTrace(bad); !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Errorf("Expected corruption error for bad magic, got %v", err)
	}

	// Bad version
	bad = slices.Clone(data)
	bad[2] = 99
	if _, err := DecodeTrace(bad); !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Errorf("Expected corruption error for bad version, got %v", err)
	}

	// Checksum mismatch
	bad = slices.Clone(data)
	bad[8] ^= 0xFF
	if _, err := DecodeTrace(bad); !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Errorf("Expected corruption error for bad checksum, got %v", err)
	}

	// Payload flip
	bad = slices.Clone(data)
	bad[TraceHeaderSize] ^= 0xFF
	if _, err := DecodeTrace(bad); !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Errorf("Expected corruption error for payload flip, got %v", err)
	}
}

// TestTraceFileRoundTrip tests the file-level helpers
func TestTraceFileRoundTrip(t *testing.T) {
	ref := repetitiveTrace(256)
	path := filepath.Join(t.TempDir(), "ref.trace")

	if err := WriteTraceFile(path, ref, TraceCompressionLZ4); err != nil {
		t.Fatalf("WriteTraceFile failed: %v", err)
	}

	loaded, err := ReadTraceFile(path)
	if err != nil {
		t.Fatalf("ReadTraceFile failed: %v", err)
	}

	if !slices.Equal(loaded, ref) {
		t.Error("File round trip mismatch")
	}
}

// TestReadTraceFileMissing tests the read error path
func TestReadTraceFileMissing(t *testing.T) {
	_, err := ReadTraceFile(filepath.Join(t.TempDir(), "nope.trace"))
	if !IsErrorCode(err, ErrCodeTraceReadFailed) {
		t.Errorf("Expected read failure, got %v", err)
	}
}

// TestParseRefString tests textual trace parsing
func TestParseRefString(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"1, 2, 3, 4", []int{1, 2, 3, 4}},
		{"1 2 3", []int{1, 2, 3}},
		{"7,0,1,2", []int{7, 0, 1, 2}},
		{"  5 \n 6 \t7 ", []int{5, 6, 7}},
		{"", []int{}},
	}

	for _, tt := range tests {
		got, err := ParseRefString(tt.input)
		if err != nil {
			t.Fatalf("ParseRefString(%q) failed: %v", tt.input, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseRefString(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// TestParseRefStringRejectsGarbage tests malformed input handling
func TestParseRefStringRejectsGarbage(t *testing.T) {
	if _, err := ParseRefString("1, two, 3"); !IsErrorCode(err, ErrCodeTraceParseFailed) {
		t.Errorf("Expected parse error, got %v", err)
	}

	if _, err := ParseRefString("1, -2"); !IsErrorCode(err, ErrCodeInvalidPageID) {
		t.Errorf("Expected invalid page ID error, got %v", err)
	}
}

// TestFormatRefString tests rendering
func TestFormatRefString(t *testing.T) {
	if got := FormatRefString([]int{1, 2, 3}); got != "1, 2, 3" {
		t.Errorf("Expected \"1, 2, 3\", got %q", got)
	}

	if got := FormatRefString(nil); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

// TestTextTraceRoundTrip tests the textual file helpers
func TestTextTraceRoundTrip(t *testing.T) {
	ref := []int{1, 2, 3, 4, 2, 1, 5}
	path := filepath.Join(t.TempDir(), "ref.txt")

	if err := SaveTextTrace(path, ref); err != nil {
		t.Fatalf("SaveTextTrace failed: %v", err)
	}

	loaded, err := LoadTextTrace(path)
	if err != nil {
		t.Fatalf("LoadTextTrace failed: %v", err)
	}

	if !slices.Equal(loaded, ref) {
		t.Errorf("Text round trip mismatch: %v != %v", loaded, ref)
	}
}

// TestParseTraceCompression tests tag mapping
func TestParseTraceCompression(t *testing.T) {
	if c, err := ParseTraceCompression("lz4"); err != nil || c != TraceCompressionLZ4 {
		t.Errorf("Expected LZ4, got %d (%v)", c, err)
	}
	if c, err := ParseTraceCompression(""); err != nil || c != TraceCompressionNone {
		t.Errorf("Expected none for empty tag, got %d (%v)", c, err)
	}
	if _, err := ParseTraceCompression("zstd"); !IsErrorCode(err, ErrCodeTraceParseFailed) {
		t.Errorf("Expected parse error for zstd, got %v", err)
	}
}
