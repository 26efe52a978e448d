package txcodec

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxidSize is the width of a transaction identifier.
const TxidSize = 32

// Txid is an opaque 32-byte transaction identifier.
type Txid [TxidSize]byte

// TxidFromHex parses the 64-character lowercase hexadecimal form of a Txid.
func TxidFromHex(s string) (Txid, error) {
	if len(s) != 2*TxidSize {
		return Txid{}, fmt.Errorf("txid has %d characters, want %d: %w", len(s), 2*TxidSize, ErrInvalidFormat)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return Txid{}, fmt.Errorf("txid character %q at %d is not lowercase hex: %w", c, i, ErrInvalidFormat)
		}
	}
	var id Txid
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return Txid{}, fmt.Errorf("txid: %v: %w", err, ErrInvalidFormat)
	}
	return id, nil
}

// TxidFromHash converts a chainhash.Hash keeping its internal byte order.
func TxidFromHash(h chainhash.Hash) Txid {
	return Txid(h)
}

// Hash returns the identifier as a chainhash.Hash with the same byte order.
// Note that chainhash renders its String form byte-reversed.
func (t Txid) Hash() chainhash.Hash {
	return chainhash.Hash(t)
}

// String returns the lowercase hexadecimal form.
func (t Txid) String() string {
	return hex.EncodeToString(t[:])
}

// MarshalText implements encoding.TextMarshaler.
func (t Txid) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Txid) UnmarshalText(text []byte) error {
	id, err := TxidFromHex(string(text))
	if err != nil {
		return err
	}
	*t = id
	return nil
}
