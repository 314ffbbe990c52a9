package escrow

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
)

const (
	lockEventName  = "escrow.LockEvent"
	claimEventName = "escrow.ClaimEvent"
)

// LockEvent is emitted when an object is locked in a new escrow. Amount is
// set for a held coin object, AssetID for a held asset.
type LockEvent struct {
	RecordID   settle.ObjectID `protobuf:"bytes,1,opt,name=record_id,proto3" json:"record_id,omitempty"`
	Creator    settle.Address  `protobuf:"bytes,2,opt,name=creator,proto3" json:"creator,omitempty"`
	Recipient  settle.Address  `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Amount     *coin.Coin      `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
	AssetID    settle.ObjectID `protobuf:"bytes,5,opt,name=asset_id,proto3" json:"asset_id,omitempty"`
	Price      coin.Coin       `protobuf:"bytes,6,opt,name=price,proto3" json:"price,omitempty"`
	UnlockTime settle.UnixTime `protobuf:"varint,7,opt,name=unlock_time,proto3" json:"unlock_time,omitempty"`
}

// ClaimEvent is emitted when an escrow is claimed.
type ClaimEvent struct {
	RecordID settle.ObjectID `protobuf:"bytes,1,opt,name=record_id,proto3" json:"record_id,omitempty"`
	Claimer  settle.Address  `protobuf:"bytes,2,opt,name=claimer,proto3" json:"claimer,omitempty"`
	Amount   *coin.Coin      `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	AssetID  settle.ObjectID `protobuf:"bytes,4,opt,name=asset_id,proto3" json:"asset_id,omitempty"`
	Price    coin.Coin       `protobuf:"bytes,5,opt,name=price,proto3" json:"price,omitempty"`
}

// heldValue fills the amount or asset id of an event from the record.
func heldValue(rec *Escrow) (*coin.Coin, settle.ObjectID) {
	if rec.Kind == Fungible {
		amount := rec.Amount
		return &amount, nil
	}
	return nil, rec.HeldID
}

func newLockEvent(id settle.ObjectID, rec *Escrow) (*settle.Event, error) {
	amount, assetID := heldValue(rec)
	return settle.NewEvent(settle.EventType(lockEventName, rec.AssetType()), &LockEvent{
		RecordID:   id,
		Creator:    rec.Creator,
		Recipient:  rec.Recipient,
		Amount:     amount,
		AssetID:    assetID,
		Price:      rec.Price,
		UnlockTime: rec.UnlockTime,
	})
}

func newClaimEvent(id settle.ObjectID, rec *Escrow) (*settle.Event, error) {
	amount, assetID := heldValue(rec)
	return settle.NewEvent(settle.EventType(claimEventName, rec.AssetType()), &ClaimEvent{
		RecordID: id,
		Claimer:  rec.Recipient,
		Amount:   amount,
		AssetID:  assetID,
		Price:    rec.Price,
	})
}
