package payout

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

var _ settle.Msg = (*BatchPayMsg)(nil)

const pathBatchPayMsg = "payout/batch_pay"

// BatchPayMsg pays Amounts[i] to Recipients[i] out of a single payment coin
// object, in order.
type BatchPayMsg struct {
	Metadata   *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	PaymentID  settle.ObjectID  `protobuf:"bytes,2,opt,name=payment_id,proto3" json:"payment_id,omitempty"`
	Recipients []settle.Address `protobuf:"bytes,3,rep,name=recipients,proto3" json:"recipients,omitempty"`
	Amounts    []uint64         `protobuf:"varint,4,rep,packed,name=amounts,proto3" json:"amounts,omitempty"`
}

// Path returns the routing path for this message
func (BatchPayMsg) Path() string {
	return pathBatchPayMsg
}

// Validate fails with ErrLengthMismatch before anything else is checked if
// recipients and amounts are not paired.
func (m *BatchPayMsg) Validate() error {
	if len(m.Recipients) != len(m.Amounts) {
		return errors.Wrapf(errors.ErrLengthMismatch,
			"%d recipients, %d amounts", len(m.Recipients), len(m.Amounts))
	}
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.PaymentID.Validate(); err != nil {
		return errors.Wrap(err, "payment id")
	}
	for i, r := range m.Recipients {
		if err := r.Validate(); err != nil {
			return errors.Wrapf(err, "recipient %d", i)
		}
	}
	if _, err := Total(m.Amounts); err != nil {
		return err
	}
	return nil
}
