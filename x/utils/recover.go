package utils

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ settle.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Checker) (_ *settle.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Deliverer) (_ *settle.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
