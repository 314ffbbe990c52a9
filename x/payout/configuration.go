package payout

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
)

const packageName = "payout"

// Configuration is the service configuration of the payout extension.
// It is created once at genesis and never updated.
type Configuration struct {
	Metadata *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner receives the batch fees.
	Owner settle.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Wrap(c.Owner.Validate(), "owner")
}

// ConfigLoader provides the configuration a batch handler works with.
type ConfigLoader interface {
	Load(db settle.ReadOnlyKVStore) (*Configuration, error)
}

// StoreConfig loads the configuration saved at genesis.
type StoreConfig struct{}

var _ ConfigLoader = StoreConfig{}

func (StoreConfig) Load(db settle.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// StaticConfig is a ConfigLoader that always returns the same configuration.
type StaticConfig Configuration

var _ ConfigLoader = (*StaticConfig)(nil)

func (s *StaticConfig) Load(settle.ReadOnlyKVStore) (*Configuration, error) {
	conf := Configuration(*s)
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "static configuration")
	}
	return &conf, nil
}
