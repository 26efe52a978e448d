// Package service wires the transaction codec to hex input, logging and metrics.
package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txcodec/internal/txcodec"
	"github.com/goodnatureofminers/blockinsight7000-txcodec/pkg/workerpool"
	"go.uber.org/zap"
)

const defaultWorkerCount = 4

// Result is the outcome of decoding one buffer of a batch.
type Result struct {
	Index       int
	Transaction txcodec.BitcoinTransaction
	Consumed    int
	Trailing    int
	Err         error
}

// Codec decodes and encodes hex-encoded transactions.
type Codec struct {
	logger      *zap.Logger
	metrics     Metrics
	workerCount int
}

// NewCodec constructs a Codec. A non-positive workerCount selects the default.
func NewCodec(metrics Metrics, workerCount int, logger *zap.Logger) (*Codec, error) {
	if metrics == nil {
		return nil, errors.New("codec metrics is required")
	}
	if logger == nil {
		return nil, errors.New("codec logger is required")
	}
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	return &Codec{
		logger:      logger.Named("codec"),
		metrics:     metrics,
		workerCount: workerCount,
	}, nil
}

// DecodeHex decodes a hex-encoded transaction. Surrounding whitespace is ignored.
// It returns the transaction, the bytes consumed and the number of trailing bytes left unread.
func (c *Codec) DecodeHex(raw string) (txcodec.BitcoinTransaction, int, int, error) {
	started := time.Now()

	buf, err := hex.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		err = fmt.Errorf("decode hex: %v: %w", err, txcodec.ErrInvalidFormat)
		c.metrics.Observe("decode", err, 0, started)
		c.logger.Warn("transaction hex rejected", zap.Int("hex_length", len(raw)), zap.Error(err))
		return txcodec.BitcoinTransaction{}, 0, 0, err
	}

	tx, n, err := txcodec.DecodeTransaction(buf)
	if err != nil {
		err = fmt.Errorf("decode transaction: %w", err)
		c.metrics.Observe("decode", err, len(buf), started)
		c.logger.Warn("transaction decode failed", zap.Int("size", len(buf)), zap.Error(err))
		return txcodec.BitcoinTransaction{}, 0, 0, err
	}
	c.metrics.Observe("decode", nil, n, started)

	trailing := len(buf) - n
	if trailing > 0 {
		c.logger.Warn("trailing bytes after transaction", zap.Int("consumed", n), zap.Int("trailing", trailing))
	}
	c.logger.Debug("transaction decoded", zap.Int("consumed", n), zap.Int("inputs", len(tx.Inputs)))
	return tx, n, trailing, nil
}

// DecodeHexBatch decodes independent buffers concurrently. Per-item failures are reported
// in the matching Result; only context cancellation fails the batch.
func (c *Codec) DecodeHexBatch(ctx context.Context, raws []string) ([]Result, error) {
	type item struct {
		index int
		raw   string
	}
	items := make([]item, len(raws))
	for i, raw := range raws {
		items[i] = item{index: i, raw: raw}
	}

	results, err := workerpool.Map(ctx, c.workerCount, items, func(_ context.Context, it item) (Result, error) {
		tx, n, trailing, err := c.DecodeHex(it.raw)
		return Result{Index: it.index, Transaction: tx, Consumed: n, Trailing: trailing, Err: err}, nil
	})
	if err != nil {
		c.logger.Error("batch decode aborted", zap.Int("count", len(raws)), zap.Error(err))
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return results, nil
}

// EncodeHex returns the lowercase hex wire form of tx.
func (c *Codec) EncodeHex(tx txcodec.BitcoinTransaction) string {
	started := time.Now()
	enc := tx.Bytes()
	c.metrics.Observe("encode", nil, len(enc), started)
	c.logger.Debug("transaction encoded", zap.Int("size", len(enc)), zap.Int("inputs", len(tx.Inputs)))
	return hex.EncodeToString(enc)
}
