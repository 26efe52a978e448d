package interchange

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/goodnatureofminers/blockinsight7000-txcodec/internal/txcodec"
)

// ErrVectorMismatch reports a vector whose record and wire hex disagree.
var ErrVectorMismatch = errors.New("vector mismatch")

// Vector pairs a transaction record with its expected wire encoding.
type Vector struct {
	Name        string                     `json:"name"`
	Transaction txcodec.BitcoinTransaction `json:"transaction"`
	Hex         string                     `json:"hex"`
}

// LoadVectors reads a JSON array of vectors from path.
func LoadVectors(path string) ([]Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	return ParseVectors(data)
}

// ParseVectors parses a JSON array of vectors.
func ParseVectors(data []byte) ([]Vector, error) {
	var vectors []Vector
	if err := json.Unmarshal(data, &vectors); err != nil {
		return nil, fmt.Errorf("parse vectors: %v: %w", err, txcodec.ErrInvalidFormat)
	}
	return vectors, nil
}

// Check encodes the record and decodes the hex, and reports the first disagreement.
func (v Vector) Check() error {
	want, err := hex.DecodeString(v.Hex)
	if err != nil {
		return fmt.Errorf("vector %q hex: %v: %w", v.Name, err, txcodec.ErrInvalidFormat)
	}

	if got := v.Transaction.Bytes(); !bytes.Equal(got, want) {
		return fmt.Errorf("vector %q encodes to %x, want %x: %w", v.Name, got, want, ErrVectorMismatch)
	}

	tx, n, err := txcodec.DecodeTransaction(want)
	if err != nil {
		return fmt.Errorf("vector %q decode: %w", v.Name, err)
	}
	if n != len(want) {
		return fmt.Errorf("vector %q decode consumed %d of %d bytes: %w", v.Name, n, len(want), ErrVectorMismatch)
	}
	if !reflect.DeepEqual(tx, v.Transaction) {
		return fmt.Errorf("vector %q decodes to a different transaction: %w", v.Name, ErrVectorMismatch)
	}
	return nil
}
