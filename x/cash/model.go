package cash

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

// BucketName is where coin objects are stored.
const BucketName = "coin"

// Coin is a uniquely owned fungible balance.
type Coin struct {
	Metadata *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    settle.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Balance  coin.Coin        `protobuf:"bytes,3,opt,name=balance,proto3" json:"balance,omitempty"`
}

var _ orm.Model = (*Coin)(nil)

// Validate ensures the coin object is well formed. Zero balances are valid.
func (c *Coin) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := c.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	return nil
}

func ownerIndexer(m orm.Model) ([]byte, error) {
	c, ok := m.(*Coin)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return c.Owner, nil
}

// NewBucket returns a bucket for coin objects, indexed by owner.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Coin{}).
		WithIndex("owner", ownerIndexer, false)
}
