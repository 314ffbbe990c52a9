package cash

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

var (
	_ settle.Msg = (*SendMsg)(nil)
	_ settle.Msg = (*SplitMsg)(nil)
	_ settle.Msg = (*MergeMsg)(nil)
)

const (
	pathSendMsg  = "cash/send"
	pathSplitMsg = "cash/split"
	pathMergeMsg = "cash/merge"
)

// SendMsg moves a whole coin object to a new owner.
type SendMsg struct {
	Metadata    *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	CoinID      settle.ObjectID  `protobuf:"bytes,2,opt,name=coin_id,proto3" json:"coin_id,omitempty"`
	Destination settle.Address   `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.CoinID.Validate(); err != nil {
		return errors.Wrap(err, "coin id")
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

// SplitMsg moves part of a coin object balance into a new object.
type SplitMsg struct {
	Metadata    *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	CoinID      settle.ObjectID  `protobuf:"bytes,2,opt,name=coin_id,proto3" json:"coin_id,omitempty"`
	Amount      uint64           `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Destination settle.Address   `protobuf:"bytes,4,opt,name=destination,proto3" json:"destination,omitempty"`
}

func (SplitMsg) Path() string {
	return pathSplitMsg
}

func (m *SplitMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.CoinID.Validate(); err != nil {
		return errors.Wrap(err, "coin id")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "split amount must be positive")
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

// MergeMsg joins the balance of the source object into the coin object.
// Both objects must be owned by the signer.
type MergeMsg struct {
	Metadata *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	CoinID   settle.ObjectID  `protobuf:"bytes,2,opt,name=coin_id,proto3" json:"coin_id,omitempty"`
	SourceID settle.ObjectID  `protobuf:"bytes,3,opt,name=source_id,proto3" json:"source_id,omitempty"`
}

func (MergeMsg) Path() string {
	return pathMergeMsg
}

func (m *MergeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.CoinID.Validate(); err != nil {
		return errors.Wrap(err, "coin id")
	}
	if err := m.SourceID.Validate(); err != nil {
		return errors.Wrap(err, "source id")
	}
	if m.CoinID.Equals(m.SourceID) {
		return errors.Wrap(errors.ErrInput, "cannot merge a coin with itself")
	}
	return nil
}
