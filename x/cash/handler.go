package cash

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x"
)

const (
	sendTxCost  int64 = 100
	splitTxCost int64 = 200
	mergeTxCost int64 = 200
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r settle.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, ctrl))
	r.Handle(&SplitMsg{}, NewSplitHandler(auth, ctrl))
	r.Handle(&MergeMsg{}, NewMergeHandler(auth, ctrl))
}

// LoadOwned returns the coin object with given id, failing with
// ErrUnauthorized unless its owner signed the transaction.
func LoadOwned(ctx settle.Context, db settle.ReadOnlyKVStore, auth x.Authenticator, ctrl Controller, id settle.ObjectID) (*Coin, error) {
	obj, err := ctrl.Load(db, id)
	if err != nil {
		return nil, errors.Wrapf(err, "coin %s", id)
	}
	if !auth.HasAddress(ctx, obj.Owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "coin %s owner signature missing", id)
	}
	return obj, nil
}

// SendHandler will handle moving coin objects
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ settle.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, ctrl Controller) SendHandler {
	return SendHandler{auth: auth, ctrl: ctrl}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the coin object to the destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.CoinID, msg.Destination); err != nil {
		return nil, err
	}
	settle.GetLogger(ctx).Debug("coin sent", "coin", msg.CoinID, "to", msg.Destination)
	return &settle.DeliverResult{Data: msg.CoinID}, nil
}

func (h SendHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := LoadOwned(ctx, db, h.auth, h.ctrl, msg.CoinID); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SplitHandler will handle splitting coin objects
type SplitHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ settle.Handler = SplitHandler{}

// NewSplitHandler creates a handler for SplitMsg
func NewSplitHandler(auth x.Authenticator, ctrl Controller) SplitHandler {
	return SplitHandler{auth: auth, ctrl: ctrl}
}

func (h SplitHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{GasAllocated: splitTxCost}, nil
}

// Deliver returns the id of the created coin object as data.
func (h SplitHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Split(ctx, db, msg.CoinID, msg.Amount, msg.Destination)
	if err != nil {
		return nil, err
	}
	settle.GetLogger(ctx).Debug("coin split", "coin", msg.CoinID, "new", id, "amount", msg.Amount)
	return &settle.DeliverResult{Data: id}, nil
}

func (h SplitHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*SplitMsg, error) {
	var msg SplitMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	obj, err := LoadOwned(ctx, db, h.auth, h.ctrl, msg.CoinID)
	if err != nil {
		return nil, err
	}
	if obj.Balance.Amount < msg.Amount {
		return nil, errors.Wrapf(errors.ErrAmount, "cannot split %d out of %s", msg.Amount, obj.Balance)
	}
	return &msg, nil
}

// MergeHandler will handle joining coin objects
type MergeHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ settle.Handler = MergeHandler{}

// NewMergeHandler creates a handler for MergeMsg
func NewMergeHandler(auth x.Authenticator, ctrl Controller) MergeHandler {
	return MergeHandler{auth: auth, ctrl: ctrl}
}

func (h MergeHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{GasAllocated: mergeTxCost}, nil
}

func (h MergeHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Merge(db, msg.CoinID, msg.SourceID); err != nil {
		return nil, err
	}
	return &settle.DeliverResult{Data: msg.CoinID}, nil
}

func (h MergeHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*MergeMsg, error) {
	var msg MergeMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	dst, err := LoadOwned(ctx, db, h.auth, h.ctrl, msg.CoinID)
	if err != nil {
		return nil, err
	}
	src, err := LoadOwned(ctx, db, h.auth, h.ctrl, msg.SourceID)
	if err != nil {
		return nil, err
	}
	if !dst.Balance.SameType(src.Balance) {
		return nil, errors.Wrapf(errors.ErrCurrency, "cannot merge %s into %s", src.Balance.Ticker, dst.Balance.Ticker)
	}
	return &msg, nil
}
