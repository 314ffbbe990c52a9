package asset

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

var _ settle.Msg = (*TransferMsg)(nil)

// TransferMsg moves an asset to a new owner.
type TransferMsg struct {
	Metadata    *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	AssetID     settle.ObjectID  `protobuf:"bytes,2,opt,name=asset_id,proto3" json:"asset_id,omitempty"`
	Destination settle.Address   `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
}

func (TransferMsg) Path() string {
	return "asset/transfer"
}

func (m *TransferMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.AssetID.Validate(); err != nil {
		return errors.Wrap(err, "asset id")
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}
