package txcodec

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	compactSizeMarker16 = 0xFD
	compactSizeMarker32 = 0xFE
	compactSizeMarker64 = 0xFF
)

// CompactSize is the Bitcoin variable-length unsigned integer.
type CompactSize struct {
	Value uint64 `json:"value"`
}

// NewCompactSize wraps value.
func NewCompactSize(value uint64) CompactSize {
	return CompactSize{Value: value}
}

// EncodedLen returns the width of the minimal encoding of n: 1, 3, 5 or 9.
func EncodedLen(n uint64) int {
	switch {
	case n < compactSizeMarker16:
		return 1
	case n <= math.MaxUint16:
		return 3
	case n <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// Len returns the number of bytes Bytes produces.
func (c CompactSize) Len() int {
	return EncodedLen(c.Value)
}

// Bytes returns the minimal encoding of the value.
func (c CompactSize) Bytes() []byte {
	return appendCompactSize(make([]byte, 0, c.Len()), c.Value)
}

func appendCompactSize(dst []byte, n uint64) []byte {
	switch {
	case n < compactSizeMarker16:
		return append(dst, byte(n))
	case n <= math.MaxUint16:
		dst = append(dst, compactSizeMarker16)
		return binary.LittleEndian.AppendUint16(dst, uint16(n))
	case n <= math.MaxUint32:
		dst = append(dst, compactSizeMarker32)
		return binary.LittleEndian.AppendUint32(dst, uint32(n))
	default:
		dst = append(dst, compactSizeMarker64)
		return binary.LittleEndian.AppendUint64(dst, n)
	}
}

// DecodeCompactSize reads one CompactSize from the front of b and returns it with
// the number of bytes consumed. Non-minimal encodings are accepted.
func DecodeCompactSize(b []byte) (CompactSize, int, error) {
	if len(b) == 0 {
		return CompactSize{}, 0, fmt.Errorf("compact size: %w", ErrInsufficientBytes)
	}

	var width int
	switch b[0] {
	case compactSizeMarker16:
		width = 3
	case compactSizeMarker32:
		width = 5
	case compactSizeMarker64:
		width = 9
	default:
		return NewCompactSize(uint64(b[0])), 1, nil
	}
	if len(b) < width {
		return CompactSize{}, 0, fmt.Errorf("compact size: need %d bytes, have %d: %w", width, len(b), ErrInsufficientBytes)
	}

	var value uint64
	switch width {
	case 3:
		value = uint64(binary.LittleEndian.Uint16(b[1:3]))
	case 5:
		value = uint64(binary.LittleEndian.Uint32(b[1:5]))
	default:
		value = binary.LittleEndian.Uint64(b[1:9])
	}
	return NewCompactSize(value), width, nil
}
