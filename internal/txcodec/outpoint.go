package txcodec

import (
	"encoding/binary"
	"fmt"
)

// OutPointSize is the fixed wire width of an OutPoint.
const OutPointSize = TxidSize + 4

// OutPoint references an output of a previous transaction.
type OutPoint struct {
	Txid Txid   `json:"txid"`
	Vout uint32 `json:"vout"`
}

// NewOutPoint builds an OutPoint from raw identifier bytes and an output index.
func NewOutPoint(txid [TxidSize]byte, vout uint32) OutPoint {
	return OutPoint{Txid: Txid(txid), Vout: vout}
}

// Bytes returns txid || vout (LE).
func (o OutPoint) Bytes() []byte {
	return o.appendTo(make([]byte, 0, OutPointSize))
}

func (o OutPoint) appendTo(dst []byte) []byte {
	dst = append(dst, o.Txid[:]...)
	return binary.LittleEndian.AppendUint32(dst, o.Vout)
}

// DecodeOutPoint reads an OutPoint from the front of b.
func DecodeOutPoint(b []byte) (OutPoint, int, error) {
	if len(b) < OutPointSize {
		return OutPoint{}, 0, fmt.Errorf("outpoint: need %d bytes, have %d: %w", OutPointSize, len(b), ErrInsufficientBytes)
	}
	var o OutPoint
	copy(o.Txid[:], b[:TxidSize])
	o.Vout = binary.LittleEndian.Uint32(b[TxidSize:OutPointSize])
	return o, OutPointSize, nil
}
