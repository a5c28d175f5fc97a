package sim

import (
	"encoding/binary"
	"hash/crc32"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// TraceCompression represents the compression algorithm used for
// binary trace files
type TraceCompression uint8

const (
	TraceCompressionNone   TraceCompression = 0
	TraceCompressionLZ4    TraceCompression = 1
	TraceCompressionSnappy TraceCompression = 2
)

// ParseTraceCompression maps a config tag to a compression type
func ParseTraceCompression(name string) (TraceCompression, error) {
	switch name {
	case "", "none":
		return TraceCompressionNone, nil
	case "lz4":
		return TraceCompressionLZ4, nil
	case "snappy":
		return TraceCompressionSnappy, nil
	default:
		return TraceCompressionNone, ErrTraceParse("ParseTraceCompression",
			"unsupported compression "+strconv.Quote(name), nil)
	}
}

// Binary trace header layout:
// [0-1]: Magic number (0xBE1A for trace files)
// [2]: Format version
// [3]: Compression type (0=none, 1=LZ4, 2=Snappy)
// [4-7]: Element count
// [8-11]: Checksum (CRC32) of the uncompressed payload
// [12+]: Payload: count little-endian uint32 page IDs, compressed

const (
	TraceFileMagic   = 0xBE1A
	TraceFileVersion = 1
	TraceHeaderSize  = 12
)

// EncodeTrace serializes a reference string into the binary trace
// format. Page identifiers must be non-negative 32-bit values.
// If the requested compression does not shrink the payload the trace
// is stored uncompressed.
func EncodeTrace(ref []int, compression TraceCompression) ([]byte, error) {
	payload := make([]byte, 4*len(ref))
	for i, page := range ref {
		if page < 0 || page > math.MaxInt32 {
			return nil, ErrInvalidPageID("EncodeTrace", page)
		}
		binary.LittleEndian.PutUint32(payload[4*i:], uint32(page))
	}

	checksum := crc32.ChecksumIEEE(payload)

	var compressed []byte

	switch compression {
	case TraceCompressionNone:
		compressed = payload

	case TraceCompressionLZ4:
		compressed = make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, compressed, nil)
		if err != nil {
			return nil, ErrTraceWrite("EncodeTrace", "", err)
		}
		compressed = compressed[:n]

	case TraceCompressionSnappy:
		compressed = snappy.Encode(nil, payload)

	default:
		return nil, ErrTraceParse("EncodeTrace",
			"unsupported compression type "+strconv.Itoa(int(compression)), nil)
	}

	// Fall back to the raw payload when compression does not help.
	// CompressBlock signals incompressible input with n == 0.
	if compression != TraceCompressionNone && (len(compressed) == 0 || len(compressed) >= len(payload)) {
		compression = TraceCompressionNone
		compressed = payload
	}

	data := make([]byte, TraceHeaderSize+len(compressed))
	binary.LittleEndian.PutUint16(data[0:2], TraceFileMagic)
	data[2] = TraceFileVersion
	data[3] = byte(compression)
	binary.LittleEndian.PutUint32(data[4:8], uint32(len(ref)))
	binary.LittleEndian.PutUint32(data[8:12], checksum)
	copy(data[TraceHeaderSize:], compressed)

	return data, nil
}

// DecodeTrace deserializes a binary trace produced by EncodeTrace,
// verifying the magic, version, element count and payload checksum
func DecodeTrace(data []byte) ([]int, error) {
	if len(data) < TraceHeaderSize {
		return nil, ErrTraceCorrupted("DecodeTrace", "truncated header")
	}

	if binary.LittleEndian.Uint16(data[0:2]) != TraceFileMagic {
		return nil, ErrTraceCorrupted("DecodeTrace", "bad magic number")
	}

	if data[2] != TraceFileVersion {
		return nil, ErrTraceCorrupted("DecodeTrace",
			"unsupported format version "+strconv.Itoa(int(data[2])))
	}

	compression := TraceCompression(data[3])
	count := binary.LittleEndian.Uint32(data[4:8])
	checksum := binary.LittleEndian.Uint32(data[8:12])
	body := data[TraceHeaderSize:]

	var payload []byte

	switch compression {
	case TraceCompressionNone:
		payload = body

	case TraceCompressionLZ4:
		payload = make([]byte, 4*count)
		n, err := lz4.UncompressBlock(body, payload)
		if err != nil {
			return nil, ErrTraceCorrupted("DecodeTrace", "LZ4 decompression failed")
		}
		payload = payload[:n]

	case TraceCompressionSnappy:
		decoded, err := snappy.Decode(nil, body)
		if err != nil {
			return nil, ErrTraceCorrupted("DecodeTrace", "snappy decompression failed")
		}
		payload = decoded

	default:
		return nil, ErrTraceCorrupted("DecodeTrace",
			"unknown compression type "+strconv.Itoa(int(compression)))
	}

	if len(payload) != int(count)*4 {
		return nil, ErrTraceCorrupted("DecodeTrace", "payload length mismatch")
	}

	if crc32.ChecksumIEEE(payload) != checksum {
		return nil, ErrTraceCorrupted("DecodeTrace", "checksum mismatch")
	}

	ref := make([]int, count)
	for i := range ref {
		ref[i] = int(binary.LittleEndian.Uint32(payload[4*i:]))
	}

	return ref, nil
}

// WriteTraceFile writes a reference string to a binary trace file
func WriteTraceFile(path string, ref []int, compression TraceCompression) error {
	data, err := EncodeTrace(ref, compression)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return ErrTraceWrite("WriteTraceFile", path, err)
	}

	return nil
}

// ReadTraceFile reads a reference string from a binary trace file
func ReadTraceFile(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrTraceRead("ReadTraceFile", path, err)
	}

	return DecodeTrace(data)
}

// ParseRefString parses a textual reference string of comma- or
// whitespace-separated non-negative integers, the form the original
// front ends feed the engine (e.g. "1, 2, 3, 4")
func ParseRefString(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	ref := make([]int, 0, len(fields))
	for _, field := range fields {
		page, err := strconv.Atoi(field)
		if err != nil {
			return nil, ErrTraceParse("ParseRefString",
				"invalid page identifier "+strconv.Quote(field), err)
		}
		if page < 0 {
			return nil, ErrInvalidPageID("ParseRefString", page)
		}
		ref = append(ref, page)
	}

	return ref, nil
}

// FormatRefString renders a reference string with ", " separators
func FormatRefString(ref []int) string {
	var sb strings.Builder
	for i, page := range ref {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(page))
	}
	return sb.String()
}

// LoadTextTrace reads a textual reference string trace from a file
func LoadTextTrace(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrTraceRead("LoadTextTrace", path, err)
	}

	return ParseRefString(string(data))
}

// SaveTextTrace writes a reference string to a textual trace file
func SaveTextTrace(path string, ref []int) error {
	if err := os.WriteFile(path, []byte(FormatRefString(ref)+"\n"), 0644); err != nil {
		return ErrTraceWrite("SaveTextTrace", path, err)
	}
	return nil
}
