// Package txcodec encodes and decodes the legacy inputs-only Bitcoin transaction wire format.
package txcodec

import "errors"

var (
	// ErrInsufficientBytes reports a buffer shorter than the field being decoded requires.
	ErrInsufficientBytes = errors.New("insufficient bytes")
	// ErrInvalidFormat reports a structural problem that is not a length shortfall.
	ErrInvalidFormat = errors.New("invalid format")
)
