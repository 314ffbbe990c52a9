package settletest

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/iov-one/settle"
)

var txCounter uint64

// Context returns a context prepared for running a single transaction at
// given block time. Every call uses a distinct transaction hash so that
// object ids never collide between calls.
func Context(blockTime time.Time) settle.Context {
	ctx := context.Background()
	ctx = settle.WithHeight(ctx, 1)
	ctx = settle.WithChainID(ctx, "settle-test")
	ctx = settle.WithBlockTime(ctx, blockTime)
	return settle.WithTxHash(ctx, NewTxHash())
}

// NewTxHash returns a unique transaction hash.
func NewTxHash() []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], atomic.AddUint64(&txCounter, 1))
	h := sha256.Sum256(raw[:])
	return h[:]
}
