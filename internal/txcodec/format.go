package txcodec

import (
	"fmt"
	"strings"
)

// String renders a multi-line diagnostic dump. The output is not meant to be parsed.
func (tx BitcoinTransaction) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version: %d\n", tx.Version)
	for _, in := range tx.Inputs {
		fmt.Fprintf(&sb, "Previous Output Txid: %s\n", in.PreviousOutput.Txid)
		fmt.Fprintf(&sb, "Previous Output Vout: %d\n", in.PreviousOutput.Vout)
		fmt.Fprintf(&sb, "Script Sig (%d bytes): %s\n", in.ScriptSig.Len(), formatBytes(in.ScriptSig.bytes))
		fmt.Fprintf(&sb, "Sequence: %08X\n", in.Sequence)
	}
	fmt.Fprintf(&sb, "Lock Time: %d\n", tx.LockTime)
	return sb.String()
}

func formatBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
