package cash

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
// Every listed coin becomes a separate coin object owned by the address.
type GenesisAccount struct {
	Address settle.Address `json:"address"`
	Coins   []coin.Coin    `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ settle.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(ctx settle.Context, opts settle.Options, db settle.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, c := range acct.Coins {
			if _, err := ctrl.Mint(ctx, db, acct.Address, c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
