package escrow

import (
	"fmt"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
	"github.com/iov-one/settle/x/asset"
)

// BucketName is where escrow records are stored.
const BucketName = "escrow"

// Kind tells what an escrow record holds.
type Kind int32

const (
	Fungible Kind = 1
	Unique   Kind = 2
)

func (k Kind) String() string {
	switch k {
	case Fungible:
		return "fungible"
	case Unique:
		return "asset"
	default:
		return fmt.Sprintf("kind(%d)", int32(k))
	}
}

// Escrow is the record of an object held in custody. Once created it is
// never modified, only deleted when claimed.
type Escrow struct {
	Metadata  *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Creator   settle.Address   `protobuf:"bytes,2,opt,name=creator,proto3" json:"creator,omitempty"`
	Recipient settle.Address   `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Kind      Kind             `protobuf:"varint,4,opt,name=kind,proto3" json:"kind,omitempty"`
	// HeldID is the coin object or asset owned by Address while the record
	// exists.
	HeldID settle.ObjectID `protobuf:"bytes,5,opt,name=held_id,proto3" json:"held_id,omitempty"`
	// Amount is the balance of the held coin object. Fungible only.
	Amount coin.Coin `protobuf:"bytes,6,opt,name=amount,proto3" json:"amount,omitempty"`
	// AssetKind is the kind of the held asset. Unique only.
	AssetKind  string          `protobuf:"bytes,7,opt,name=asset_kind,proto3" json:"asset_kind,omitempty"`
	Price      coin.Coin       `protobuf:"bytes,8,opt,name=price,proto3" json:"price,omitempty"`
	UnlockTime settle.UnixTime `protobuf:"varint,9,opt,name=unlock_time,proto3" json:"unlock_time,omitempty"`
	// Address is the custody address derived from the record id.
	Address settle.Address `protobuf:"bytes,10,opt,name=address,proto3" json:"address,omitempty"`
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Validate() error {
	if err := e.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := e.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if err := e.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := e.HeldID.Validate(); err != nil {
		return errors.Wrap(err, "held id")
	}
	switch e.Kind {
	case Fungible:
		if err := e.Amount.Validate(); err != nil {
			return errors.Wrap(err, "amount")
		}
	case Unique:
		if !asset.IsKind(e.AssetKind) {
			return errors.Wrapf(errors.ErrInput, "invalid asset kind %q", e.AssetKind)
		}
	default:
		return errors.Wrapf(errors.ErrState, "unknown %s", e.Kind)
	}
	if err := validatePrice(e.Price); err != nil {
		return errors.Wrap(err, "price")
	}
	if err := e.UnlockTime.Validate(); err != nil {
		return errors.Wrap(err, "unlock time")
	}
	return errors.Wrap(e.Address.Validate(), "address")
}

// AssetType returns the type of the held value: the ticker of a coin or the
// kind of an asset.
func (e *Escrow) AssetType() string {
	if e.Kind == Unique {
		return e.AssetKind
	}
	return e.Amount.Ticker
}

// validatePrice accepts a zero price without a ticker: such escrow can be
// claimed without any payment.
func validatePrice(price coin.Coin) error {
	if price.IsZero() && price.Ticker == "" {
		return nil
	}
	return price.Validate()
}

// Condition returns the custody condition of the record with given id.
func Condition(id settle.ObjectID) settle.Condition {
	return settle.NewCondition("escrow", "record", id)
}

// NewBucket returns a bucket for escrow records, indexed by creator and
// recipient.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{}).
		WithIndex("creator", idxCreator, false).
		WithIndex("recipient", idxRecipient, false)
}

func toEscrow(m orm.Model) (*Escrow, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return e, nil
}

func idxCreator(m orm.Model) ([]byte, error) {
	e, err := toEscrow(m)
	if err != nil {
		return nil, err
	}
	return e.Creator, nil
}

func idxRecipient(m orm.Model) ([]byte, error) {
	e, err := toEscrow(m)
	if err != nil {
		return nil, err
	}
	return e.Recipient, nil
}
