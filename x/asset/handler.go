package asset

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x"
)

const transferTxCost int64 = 100

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r settle.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&TransferMsg{}, NewTransferHandler(auth, ctrl))
}

// LoadOwned returns the asset with given id, failing with ErrUnauthorized
// unless its owner signed the transaction.
func LoadOwned(ctx settle.Context, db settle.ReadOnlyKVStore, auth x.Authenticator, ctrl Controller, id settle.ObjectID) (*Asset, error) {
	a, err := ctrl.Load(db, id)
	if err != nil {
		return nil, errors.Wrapf(err, "asset %s", id)
	}
	if !auth.HasAddress(ctx, a.Owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "asset %s owner signature missing", id)
	}
	return a, nil
}

// TransferHandler moves assets between owners.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ settle.Handler = TransferHandler{}

func NewTransferHandler(auth x.Authenticator, ctrl Controller) TransferHandler {
	return TransferHandler{auth: auth, ctrl: ctrl}
}

func (h TransferHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{GasAllocated: transferTxCost}, nil
}

func (h TransferHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.AssetID, msg.Destination); err != nil {
		return nil, err
	}
	settle.GetLogger(ctx).Debug("asset transferred", "asset", msg.AssetID, "to", msg.Destination)
	return &settle.DeliverResult{Data: msg.AssetID}, nil
}

func (h TransferHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := LoadOwned(ctx, db, h.auth, h.ctrl, msg.AssetID); err != nil {
		return nil, err
	}
	return &msg, nil
}
