package payout

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
)

const batchPayoutEventName = "payout.BatchPayoutEvent"

// BatchPayoutEvent is emitted once per batch with aggregate values only.
type BatchPayoutEvent struct {
	Sender         settle.Address `protobuf:"bytes,1,opt,name=sender,proto3" json:"sender,omitempty"`
	RecipientCount uint64         `protobuf:"varint,2,opt,name=recipient_count,proto3" json:"recipient_count,omitempty"`
	TotalAmount    coin.Coin      `protobuf:"bytes,3,opt,name=total_amount,proto3" json:"total_amount,omitempty"`
	FeeAmount      coin.Coin      `protobuf:"bytes,4,opt,name=fee_amount,proto3" json:"fee_amount,omitempty"`
}

func newBatchPayoutEvent(sender settle.Address, count int, total, fee coin.Coin) (*settle.Event, error) {
	return settle.NewEvent(settle.EventType(batchPayoutEventName, total.Ticker), &BatchPayoutEvent{
		Sender:         sender,
		RecipientCount: uint64(count),
		TotalAmount:    total,
		FeeAmount:      fee,
	})
}
