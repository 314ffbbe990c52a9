package payout

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/gconf"
)

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ settle.Initializer = Initializer{}

// FromGenesis saves the configuration found under conf.payout. It can be
// done only once.
func (Initializer) FromGenesis(ctx settle.Context, opts settle.Options, db settle.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, packageName, &conf)
}
