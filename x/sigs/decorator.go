/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.
*/
package sigs

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const (
	signatureVerifyCost = 500
)

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ settle.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Checker) (*settle.CheckResult, error) {
	ctx, signers, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	// Only the valid signatures are charged.
	res.GasAllocated += int64(len(signers) * signatureVerifyCost)
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Deliverer) (*settle.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authenticate(ctx settle.Context, store settle.KVStore, tx settle.Tx) (settle.Context, []settle.Condition, error) {
	var signers []settle.Condition
	if stx, ok := tx.(SignedTx); ok {
		var err error
		signers, err = VerifyTxSignatures(store, stx, settle.GetChainID(ctx))
		if err != nil {
			return ctx, nil, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return ctx, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), signers, nil
}
