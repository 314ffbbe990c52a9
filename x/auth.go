/*
Package x contains the helpers shared by all extensions.
*/
package x

import (
	"github.com/iov-one/settle"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. It is passed into the constructor of handlers, so that
// tests can plug in a mock instead of verifying real signatures.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled, main signer first
	GetConditions(settle.Context) []settle.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(settle.Context, settle.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx settle.Context) []settle.Condition {
	var res []settle.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx settle.Context, addr settle.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition if any, otherwise nil. The main
// signer is the acting party of a transaction, for example the creator of an
// escrow.
func MainSigner(ctx settle.Context, auth Authenticator) settle.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
