package app

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Config holds the runtime settings of a ledger.
type Config struct {
	// ChainID must match the chain id of the genesis the ledger is
	// initialized with.
	ChainID string `json:"chain_id"`
	// Debug returns full error details, including stack traces, in
	// transaction responses.
	Debug bool `json:"debug"`
}

func (c Config) Validate() error {
	if !settle.IsValidChainID(c.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", c.ChainID)
	}
	return nil
}
