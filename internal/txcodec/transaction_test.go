package txcodec

import (
	"bytes"
	"encoding/hex"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestBitcoinTransaction_EmptyExample(t *testing.T) {
	tx := NewTransaction(1, nil, 0)
	enc := tx.Bytes()
	if got := hex.EncodeToString(enc); got != "010000000000000000" {
		t.Fatalf("Bytes() = %s, want 010000000000000000", got)
	}

	got, n, err := DecodeTransaction(enc)
	if err != nil {
		t.Fatalf("DecodeTransaction() error = %v", err)
	}
	if n != 9 || !reflect.DeepEqual(got, tx) {
		t.Fatalf("DecodeTransaction() = (%+v, %d), want (%+v, 9)", got, n, tx)
	}
}

func TestBitcoinTransaction_SingleInputExample(t *testing.T) {
	tx := NewTransaction(2, []TransactionInput{
		NewTransactionInput(NewOutPoint([32]byte{}, 0), NewScript(nil), 0xFFFFFFFF),
	}, 500000)
	want := "02000000" + "01" + strings.Repeat("00", 32) + "00000000" + "00" + "ffffffff" + "20a10700"

	enc := tx.Bytes()
	if got := hex.EncodeToString(enc); got != want {
		t.Fatalf("Bytes() = %s, want %s", got, want)
	}

	got, n, err := DecodeTransaction(mustHex(t, want))
	if err != nil {
		t.Fatalf("DecodeTransaction() error = %v", err)
	}
	if n != 50 {
		t.Fatalf("DecodeTransaction() consumed %d, want 50", n)
	}
	if !reflect.DeepEqual(got, tx) {
		t.Fatalf("DecodeTransaction() = %+v, want %+v", got, tx)
	}
}

func multiInputTransaction() BitcoinTransaction {
	inputs := make([]TransactionInput, 0, 3)
	for i := 0; i < 3; i++ {
		var id [32]byte
		id[0] = byte(i + 1)
		inputs = append(inputs, NewTransactionInput(
			NewOutPoint(id, uint32(i)),
			NewScript(bytes.Repeat([]byte{byte(i)}, i*120)),
			0xFFFFFFFF-uint32(i),
		))
	}
	return NewTransaction(0x20000000, inputs, 0xDEADBEEF)
}

func TestBitcoinTransaction_RoundTripAndTruncation(t *testing.T) {
	tx := multiInputTransaction()
	enc := tx.Bytes()
	if len(enc) != tx.EncodedLen() {
		t.Fatalf("Bytes() length = %d, EncodedLen() = %d", len(enc), tx.EncodedLen())
	}

	got, n, err := DecodeTransaction(append(bytes.Clone(enc), 0x00, 0x01))
	if err != nil {
		t.Fatalf("DecodeTransaction() error = %v", err)
	}
	if n != len(enc) {
		t.Fatalf("DecodeTransaction() consumed %d, want %d", n, len(enc))
	}
	if !reflect.DeepEqual(got, tx) {
		t.Fatalf("DecodeTransaction() = %+v, want %+v", got, tx)
	}

	for i := 0; i < len(enc); i++ {
		if _, _, err := DecodeTransaction(enc[:i]); !errors.Is(err, ErrInsufficientBytes) {
			t.Fatalf("DecodeTransaction(%d bytes) error = %v, want insufficient bytes", i, err)
		}
	}
}

func TestDecodeTransaction_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "short version", in: "010000"},
		{name: "missing count", in: "01000000"},
		{name: "truncated count", in: "01000000fd01"},
		{name: "missing lock time", in: "0100000000"},
		{name: "partial lock time", in: "0100000000000000"},
		{name: "count exceeds inputs", in: "0100000002" + strings.Repeat("00", 36) + "00" + "ffffffff" + "00000000"},
		{name: "huge declared count", in: "01000000ffffffffffffffffff" + strings.Repeat("00", 41)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, n, err := DecodeTransaction(mustHex(t, tt.in))
			if !errors.Is(err, ErrInsufficientBytes) {
				t.Fatalf("DecodeTransaction() error = %v, want insufficient bytes", err)
			}
			if n != 0 {
				t.Fatalf("DecodeTransaction() consumed %d on failure", n)
			}
		})
	}
}

func TestNewTransaction_CopiesInputs(t *testing.T) {
	inputs := []TransactionInput{NewTransactionInput(NewOutPoint([32]byte{}, 1), NewScript(nil), 0)}
	tx := NewTransaction(1, inputs, 0)
	inputs[0].Sequence = 99
	if tx.Inputs[0].Sequence != 0 {
		t.Fatalf("NewTransaction() aliases the caller's slice")
	}
}

func TestEmptyBufferFailsEveryDecoder(t *testing.T) {
	decoders := map[string]func([]byte) error{
		"compact size": func(b []byte) error { _, _, err := DecodeCompactSize(b); return err },
		"outpoint":     func(b []byte) error { _, _, err := DecodeOutPoint(b); return err },
		"script":       func(b []byte) error { _, _, err := DecodeScript(b); return err },
		"input":        func(b []byte) error { _, _, err := DecodeTransactionInput(b); return err },
		"transaction":  func(b []byte) error { _, _, err := DecodeTransaction(b); return err },
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			if err := decode(nil); !errors.Is(err, ErrInsufficientBytes) {
				t.Fatalf("decode(empty) error = %v, want insufficient bytes", err)
			}
		})
	}
}

func TestBitcoinTransaction_JSON(t *testing.T) {
	data, err := json.Marshal(NewTransaction(1, nil, 0))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"version":1,"inputs":[],"lock_time":0}` {
		t.Fatalf("Marshal() = %s", data)
	}

	tx := multiInputTransaction()
	data, err = json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back BitcoinTransaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(back, tx) {
		t.Fatalf("Unmarshal() = %+v, want %+v", back, tx)
	}

	if err := back.UnmarshalJSON([]byte(`{"version":1,"inputs":[],"lock_time":0}`)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if back.Inputs != nil {
		t.Fatalf("UnmarshalJSON() kept an empty non-nil input list")
	}
}
