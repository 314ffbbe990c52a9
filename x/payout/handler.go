package payout

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x"
	"github.com/iov-one/settle/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	batchPayBaseCost      int64 = 100
	batchPayRecipientCost int64 = 20
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r settle.Registry, auth x.Authenticator, ctrl cash.Controller, conf ConfigLoader) {
	r.Handle(&BatchPayMsg{}, NewBatchPayHandler(auth, ctrl, conf))
}

// BatchPayHandler splits a payment coin object between many recipients and
// collects the protocol fee.
type BatchPayHandler struct {
	auth x.Authenticator
	ctrl cash.Controller
	conf ConfigLoader
}

var _ settle.Handler = BatchPayHandler{}

// NewBatchPayHandler returns a handler that reads the fee owner from conf.
// Use StoreConfig to read the configuration saved at genesis.
func NewBatchPayHandler(auth x.Authenticator, ctrl cash.Controller, conf ConfigLoader) BatchPayHandler {
	return BatchPayHandler{auth: auth, ctrl: ctrl, conf: conf}
}

// batch is a validated BatchPayMsg together with everything needed to
// deliver it.
type batch struct {
	msg     *BatchPayMsg
	payment *cash.Coin
	conf    *Configuration
	total   uint64
	fee     uint64
}

func (h BatchPayHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	b, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	gas := batchPayBaseCost + batchPayRecipientCost*int64(len(b.msg.Recipients))
	return &settle.CheckResult{GasAllocated: gas}, nil
}

// Deliver splits the fee and then every amount out of the payment, in input
// order. The payment object stays with the sender.
func (h BatchPayHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	b, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	paymentID := b.msg.PaymentID

	if b.fee != 0 {
		if _, err := h.ctrl.Split(ctx, db, paymentID, b.fee, b.conf.Owner); err != nil {
			return nil, errors.Wrap(err, "cannot collect fee")
		}
	}
	for i, recipient := range b.msg.Recipients {
		if _, err := h.ctrl.Split(ctx, db, paymentID, b.msg.Amounts[i], recipient); err != nil {
			return nil, errors.Wrapf(err, "cannot pay recipient %d", i)
		}
	}

	ticker := b.payment.Balance.Ticker
	evt, err := newBatchPayoutEvent(b.payment.Owner, len(b.msg.Recipients),
		coin.NewCoin(b.total, ticker), coin.NewCoin(b.fee, ticker))
	if err != nil {
		return nil, err
	}

	settle.GetLogger(ctx).Debug("batch paid",
		"payment", paymentID, "recipients", len(b.msg.Recipients), "total", b.total, "fee", b.fee)
	return &settle.DeliverResult{
		Data:   paymentID,
		Events: []*settle.Event{evt},
		Tags: []common.KVPair{
			settle.Tag("payout.sender", []byte(b.payment.Owner.String())),
			settle.Tag("payout.payment_id", []byte(paymentID.String())),
		},
	}, nil
}

// validate checks the batch in order: pairing of recipients and amounts,
// total, payment balance, payment ownership.
func (h BatchPayHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*batch, error) {
	var msg BatchPayMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	total, err := Total(msg.Amounts)
	if err != nil {
		return nil, err
	}
	fee := Fee(total)
	need, err := required(total)
	if err != nil {
		return nil, err
	}

	payment, err := h.ctrl.Load(db, msg.PaymentID)
	if err != nil {
		return nil, errors.Wrapf(err, "payment %s", msg.PaymentID)
	}
	if payment.Balance.Amount < need {
		return nil, errors.Wrapf(errors.ErrInsufficientPayment,
			"payment %s, need %d for total %d and fee %d", payment.Balance, need, total, fee)
	}
	if !h.auth.HasAddress(ctx, payment.Owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "payment %s owner signature missing", msg.PaymentID)
	}

	conf, err := h.conf.Load(db)
	if err != nil {
		return nil, err
	}
	return &batch{msg: &msg, payment: payment, conf: conf, total: total, fee: fee}, nil
}
