// Package interchange converts codec values to and from JSON records for configuration and fixtures.
package interchange

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcodec/internal/txcodec"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record lists the values that have a record form.
type Record interface {
	txcodec.CompactSize | txcodec.Txid | txcodec.OutPoint | txcodec.Script | txcodec.TransactionInput | txcodec.BitcoinTransaction
}

// Marshal renders v as a compact JSON record.
func Marshal[T Record](v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal parses a JSON record. Every failure wraps txcodec.ErrInvalidFormat.
func Unmarshal[T Record](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("unmarshal %T: %v: %w", v, err, txcodec.ErrInvalidFormat)
	}
	return v, nil
}
