package app

import (
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Genesis file format, designed to be overlayed with tendermint genesis
type Genesis struct {
	ChainID  string         `json:"chain_id"`
	Time     time.Time      `json:"genesis_time"`
	AppState settle.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse genesis file: %s", err)
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...settle.Initializer) settle.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []settle.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(ctx settle.Context, opts settle.Options, db settle.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(ctx, opts, db); err != nil {
			return err
		}
	}
	return nil
}
