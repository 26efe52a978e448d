package txcodec

import (
	"encoding/binary"
	"fmt"
)

// minInputSize is the wire width of an input with an empty script.
const minInputSize = OutPointSize + 1 + 4

// TransactionInput spends a previous output.
type TransactionInput struct {
	PreviousOutput OutPoint `json:"previous_output"`
	ScriptSig      Script   `json:"script_sig"`
	Sequence       uint32   `json:"sequence"`
}

// NewTransactionInput builds a TransactionInput.
func NewTransactionInput(previousOutput OutPoint, scriptSig Script, sequence uint32) TransactionInput {
	return TransactionInput{
		PreviousOutput: previousOutput,
		ScriptSig:      scriptSig,
		Sequence:       sequence,
	}
}

// EncodedLen returns the width of the wire form.
func (in TransactionInput) EncodedLen() int {
	return OutPointSize + in.ScriptSig.EncodedLen() + 4
}

// Bytes returns outpoint || script_sig || sequence (LE).
func (in TransactionInput) Bytes() []byte {
	return in.appendTo(make([]byte, 0, in.EncodedLen()))
}

func (in TransactionInput) appendTo(dst []byte) []byte {
	dst = in.PreviousOutput.appendTo(dst)
	dst = in.ScriptSig.appendTo(dst)
	return binary.LittleEndian.AppendUint32(dst, in.Sequence)
}

// DecodeTransactionInput reads a TransactionInput from the front of b.
func DecodeTransactionInput(b []byte) (TransactionInput, int, error) {
	prev, offset, err := DecodeOutPoint(b)
	if err != nil {
		return TransactionInput{}, 0, fmt.Errorf("previous output: %w", err)
	}
	script, n, err := DecodeScript(b[offset:])
	if err != nil {
		return TransactionInput{}, 0, fmt.Errorf("script sig: %w", err)
	}
	offset += n
	if len(b)-offset < 4 {
		return TransactionInput{}, 0, fmt.Errorf("sequence: need 4 bytes, have %d: %w", len(b)-offset, ErrInsufficientBytes)
	}
	sequence := binary.LittleEndian.Uint32(b[offset : offset+4])
	return NewTransactionInput(prev, script, sequence), offset + 4, nil
}
