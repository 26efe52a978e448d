package txcodec

import (
	"bytes"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcodec/pkg/safe"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// scriptRecord is the interchange form of a Script: the payload as a list of byte values.
type scriptRecord struct {
	Bytes []int `json:"bytes"`
}

// Script is an opaque length-prefixed byte payload. Opcodes are not interpreted.
type Script struct {
	bytes []byte
}

// NewScript copies payload into a new Script.
func NewScript(payload []byte) Script {
	if len(payload) == 0 {
		return Script{}
	}
	return Script{bytes: bytes.Clone(payload)}
}

// Len returns the payload length.
func (s Script) Len() int {
	return len(s.bytes)
}

// Payload returns a copy of the script bytes.
func (s Script) Payload() []byte {
	return bytes.Clone(s.bytes)
}

// EncodedLen returns the width of the wire form.
func (s Script) EncodedLen() int {
	return EncodedLen(safe.Len(len(s.bytes))) + len(s.bytes)
}

// Bytes returns CompactSize(len) || payload.
func (s Script) Bytes() []byte {
	return s.appendTo(make([]byte, 0, s.EncodedLen()))
}

func (s Script) appendTo(dst []byte) []byte {
	dst = appendCompactSize(dst, safe.Len(len(s.bytes)))
	return append(dst, s.bytes...)
}

// DecodeScript reads a length-prefixed Script from the front of b.
func DecodeScript(b []byte) (Script, int, error) {
	prefix, n, err := DecodeCompactSize(b)
	if err != nil {
		return Script{}, 0, fmt.Errorf("script length: %w", err)
	}
	size, err := safe.Int(prefix.Value)
	if err != nil || size > len(b)-n {
		return Script{}, 0, fmt.Errorf("script: need %d payload bytes, have %d: %w", prefix.Value, len(b)-n, ErrInsufficientBytes)
	}
	return NewScript(b[n : n+size]), n + size, nil
}

// MarshalJSON renders the payload as {"bytes": [..]} with decimal byte values.
func (s Script) MarshalJSON() ([]byte, error) {
	rec := scriptRecord{Bytes: make([]int, len(s.bytes))}
	for i, c := range s.bytes {
		rec.Bytes[i] = int(c)
	}
	return json.Marshal(rec)
}

// UnmarshalJSON parses the form produced by MarshalJSON.
func (s *Script) UnmarshalJSON(data []byte) error {
	var rec scriptRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("script: %v: %w", err, ErrInvalidFormat)
	}
	payload := make([]byte, len(rec.Bytes))
	for i, v := range rec.Bytes {
		if v < 0 || v > 0xFF {
			return fmt.Errorf("script byte %d has value %d: %w", i, v, ErrInvalidFormat)
		}
		payload[i] = byte(v)
	}
	*s = NewScript(payload)
	return nil
}
