package asset

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const optKey = "assets"

// GenesisAsset describes an asset created at genesis.
type GenesisAsset struct {
	Owner settle.Address `json:"owner"`
	Kind  string         `json:"kind"`
	URI   string         `json:"uri"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ settle.Initializer = Initializer{}

// FromGenesis creates every listed asset.
func (Initializer) FromGenesis(ctx settle.Context, opts settle.Options, db settle.KVStore) error {
	var assets []GenesisAsset
	if err := opts.ReadOptions(optKey, &assets); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, a := range assets {
		if _, err := ctrl.Mint(ctx, db, a.Owner, a.Kind, a.URI); err != nil {
			return errors.Wrapf(err, "asset %d", i)
		}
	}
	return nil
}
