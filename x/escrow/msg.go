package escrow

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
)

var (
	_ settle.Msg = (*LockFungibleMsg)(nil)
	_ settle.Msg = (*LockAssetMsg)(nil)
	_ settle.Msg = (*ClaimFungibleMsg)(nil)
	_ settle.Msg = (*ClaimAssetMsg)(nil)
)

// terms are the conditions a held object is locked under.
type terms struct {
	HeldID     settle.ObjectID
	Recipient  settle.Address
	Price      coin.Coin
	UnlockTime settle.UnixTime
}

// validate checks the format of the terms only. Recipient equal to the
// creator, an empty held value or an unlock time in the past are accepted.
func (t terms) validate(meta *settle.Metadata) error {
	if err := meta.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := t.HeldID.Validate(); err != nil {
		return errors.Wrap(err, "held id")
	}
	if err := t.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := validatePrice(t.Price); err != nil {
		return errors.Wrap(err, "price")
	}
	return errors.Wrap(t.UnlockTime.Validate(), "unlock time")
}

// LockFungibleMsg moves a coin object into a new escrow.
type LockFungibleMsg struct {
	Metadata   *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	CoinID     settle.ObjectID  `protobuf:"bytes,2,opt,name=coin_id,proto3" json:"coin_id,omitempty"`
	Recipient  settle.Address   `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Price      coin.Coin        `protobuf:"bytes,4,opt,name=price,proto3" json:"price,omitempty"`
	UnlockTime settle.UnixTime  `protobuf:"varint,5,opt,name=unlock_time,proto3" json:"unlock_time,omitempty"`
}

func (LockFungibleMsg) Path() string {
	return "escrow/lock_fungible"
}

func (m *LockFungibleMsg) terms() terms {
	return terms{HeldID: m.CoinID, Recipient: m.Recipient, Price: m.Price, UnlockTime: m.UnlockTime}
}

func (m *LockFungibleMsg) Validate() error {
	return m.terms().validate(m.Metadata)
}

// LockAssetMsg moves an asset into a new escrow.
type LockAssetMsg struct {
	Metadata   *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	AssetID    settle.ObjectID  `protobuf:"bytes,2,opt,name=asset_id,proto3" json:"asset_id,omitempty"`
	Recipient  settle.Address   `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Price      coin.Coin        `protobuf:"bytes,4,opt,name=price,proto3" json:"price,omitempty"`
	UnlockTime settle.UnixTime  `protobuf:"varint,5,opt,name=unlock_time,proto3" json:"unlock_time,omitempty"`
}

func (LockAssetMsg) Path() string {
	return "escrow/lock_asset"
}

func (m *LockAssetMsg) terms() terms {
	return terms{HeldID: m.AssetID, Recipient: m.Recipient, Price: m.Price, UnlockTime: m.UnlockTime}
}

func (m *LockAssetMsg) Validate() error {
	return m.terms().validate(m.Metadata)
}

// claim references the record being claimed and the coin object paying
// for it. PaymentID may be empty when the price is zero.
type claim struct {
	EscrowID  settle.ObjectID
	PaymentID settle.ObjectID
}

func (c claim) validate(meta *settle.Metadata) error {
	if err := meta.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.EscrowID.Validate(); err != nil {
		return errors.Wrap(err, "escrow id")
	}
	if c.PaymentID != nil {
		if err := c.PaymentID.Validate(); err != nil {
			return errors.Wrap(err, "payment id")
		}
	}
	return nil
}

// ClaimFungibleMsg releases the coin object held by an escrow to its
// recipient.
type ClaimFungibleMsg struct {
	Metadata  *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	EscrowID  settle.ObjectID  `protobuf:"bytes,2,opt,name=escrow_id,proto3" json:"escrow_id,omitempty"`
	PaymentID settle.ObjectID  `protobuf:"bytes,3,opt,name=payment_id,proto3" json:"payment_id,omitempty"`
}

func (ClaimFungibleMsg) Path() string {
	return "escrow/claim_fungible"
}

func (m *ClaimFungibleMsg) claim() claim {
	return claim{EscrowID: m.EscrowID, PaymentID: m.PaymentID}
}

func (m *ClaimFungibleMsg) Validate() error {
	return m.claim().validate(m.Metadata)
}

// ClaimAssetMsg releases the asset held by an escrow to its recipient.
type ClaimAssetMsg struct {
	Metadata  *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	EscrowID  settle.ObjectID  `protobuf:"bytes,2,opt,name=escrow_id,proto3" json:"escrow_id,omitempty"`
	PaymentID settle.ObjectID  `protobuf:"bytes,3,opt,name=payment_id,proto3" json:"payment_id,omitempty"`
}

func (ClaimAssetMsg) Path() string {
	return "escrow/claim_asset"
}

func (m *ClaimAssetMsg) claim() claim {
	return claim{EscrowID: m.EscrowID, PaymentID: m.PaymentID}
}

func (m *ClaimAssetMsg) Validate() error {
	return m.claim().validate(m.Metadata)
}
