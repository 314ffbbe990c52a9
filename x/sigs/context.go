package sigs

import (
	"context"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx settle.Context, signers []settle.Condition) settle.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate gives access to the conditions of all valid signatures of
// the current transaction.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx settle.Context) []settle.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]settle.Condition)
	return val
}

// HasAddress returns true if the given address signed the transaction.
func (a Authenticate) HasAddress(ctx settle.Context, addr settle.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
