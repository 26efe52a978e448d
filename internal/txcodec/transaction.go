package txcodec

import (
	"encoding/binary"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcodec/pkg/safe"
)

// BitcoinTransaction is the inputs-only transaction envelope.
type BitcoinTransaction struct {
	Version  uint32             `json:"version"`
	Inputs   []TransactionInput `json:"inputs"`
	LockTime uint32             `json:"lock_time"`
}

// NewTransaction builds a BitcoinTransaction. The inputs slice is copied.
func NewTransaction(version uint32, inputs []TransactionInput, lockTime uint32) BitcoinTransaction {
	tx := BitcoinTransaction{Version: version, LockTime: lockTime}
	if len(inputs) > 0 {
		tx.Inputs = append(make([]TransactionInput, 0, len(inputs)), inputs...)
	}
	return tx
}

// EncodedLen returns the width of the wire form.
func (tx BitcoinTransaction) EncodedLen() int {
	n := 4 + EncodedLen(safe.Len(len(tx.Inputs))) + 4
	for _, in := range tx.Inputs {
		n += in.EncodedLen()
	}
	return n
}

// Bytes returns version || CompactSize(count) || inputs || lock_time.
func (tx BitcoinTransaction) Bytes() []byte {
	dst := make([]byte, 0, tx.EncodedLen())
	dst = binary.LittleEndian.AppendUint32(dst, tx.Version)
	dst = appendCompactSize(dst, safe.Len(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		dst = in.appendTo(dst)
	}
	return binary.LittleEndian.AppendUint32(dst, tx.LockTime)
}

// DecodeTransaction reads a BitcoinTransaction from the front of b and reports the bytes consumed.
// Any failure aborts the whole decode.
func DecodeTransaction(b []byte) (BitcoinTransaction, int, error) {
	if len(b) < 4 {
		return BitcoinTransaction{}, 0, fmt.Errorf("version: need 4 bytes, have %d: %w", len(b), ErrInsufficientBytes)
	}
	version := binary.LittleEndian.Uint32(b[:4])
	offset := 4

	count, n, err := DecodeCompactSize(b[offset:])
	if err != nil {
		return BitcoinTransaction{}, 0, fmt.Errorf("input count: %w", err)
	}
	offset += n

	// The declared count is not checked up front; an overlong count fails on
	// the first input that runs out of bytes. Only the allocation is bounded.
	var inputs []TransactionInput
	if count.Value > 0 {
		capacity := uint64((len(b) - offset) / minInputSize)
		if count.Value < capacity {
			capacity = count.Value
		}
		inputs = make([]TransactionInput, 0, capacity)
	}
	for i := uint64(0); i < count.Value; i++ {
		in, consumed, err := DecodeTransactionInput(b[offset:])
		if err != nil {
			return BitcoinTransaction{}, 0, fmt.Errorf("input %d: %w", i, err)
		}
		inputs = append(inputs, in)
		offset += consumed
	}

	if len(b)-offset < 4 {
		return BitcoinTransaction{}, 0, fmt.Errorf("lock time: need 4 bytes, have %d: %w", len(b)-offset, ErrInsufficientBytes)
	}
	lockTime := binary.LittleEndian.Uint32(b[offset : offset+4])
	offset += 4

	return BitcoinTransaction{Version: version, Inputs: inputs, LockTime: lockTime}, offset, nil
}

type transactionRecord BitcoinTransaction

// MarshalJSON renders an input-less transaction with an empty list rather than null.
func (tx BitcoinTransaction) MarshalJSON() ([]byte, error) {
	rec := transactionRecord(tx)
	if rec.Inputs == nil {
		rec.Inputs = []TransactionInput{}
	}
	return json.Marshal(rec)
}

// UnmarshalJSON parses the record form and normalizes it like NewTransaction.
func (tx *BitcoinTransaction) UnmarshalJSON(data []byte) error {
	var rec transactionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("transaction: %v: %w", err, ErrInvalidFormat)
	}
	*tx = NewTransaction(rec.Version, rec.Inputs, rec.LockTime)
	return nil
}
