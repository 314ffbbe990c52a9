package escrow

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
	"github.com/iov-one/settle/x"
	"github.com/iov-one/settle/x/asset"
	"github.com/iov-one/settle/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	lockEscrowCost  int64 = 300
	claimEscrowCost int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r settle.Registry, auth x.Authenticator, cashCtrl cash.Controller, assetCtrl asset.Controller) {
	r.Handle(&LockFungibleMsg{}, NewLockFungibleHandler(auth, cashCtrl))
	r.Handle(&LockAssetMsg{}, NewLockAssetHandler(auth, assetCtrl))
	r.Handle(&ClaimFungibleMsg{}, NewClaimFungibleHandler(auth, cashCtrl))
	r.Handle(&ClaimAssetMsg{}, NewClaimAssetHandler(auth, cashCtrl, assetCtrl))
}

// NewLockFungibleHandler returns a handler locking coin objects.
func NewLockFungibleHandler(auth x.Authenticator, cashCtrl cash.Controller) settle.Handler {
	return lockHandler[*cash.Coin, LockFungibleMsg, *LockFungibleMsg]{
		auth:   auth,
		bucket: NewBucket(),
		vault:  cashVault{ctrl: cashCtrl},
	}
}

// NewLockAssetHandler returns a handler locking assets.
func NewLockAssetHandler(auth x.Authenticator, assetCtrl asset.Controller) settle.Handler {
	return lockHandler[*asset.Asset, LockAssetMsg, *LockAssetMsg]{
		auth:   auth,
		bucket: NewBucket(),
		vault:  assetVault{ctrl: assetCtrl},
	}
}

// NewClaimFungibleHandler returns a handler claiming escrows that hold coin
// objects.
func NewClaimFungibleHandler(auth x.Authenticator, cashCtrl cash.Controller) settle.Handler {
	return claimHandler[*cash.Coin, ClaimFungibleMsg, *ClaimFungibleMsg]{
		auth:   auth,
		bucket: NewBucket(),
		vault:  cashVault{ctrl: cashCtrl},
		cash:   cashCtrl,
	}
}

// NewClaimAssetHandler returns a handler claiming escrows that hold assets.
func NewClaimAssetHandler(auth x.Authenticator, cashCtrl cash.Controller, assetCtrl asset.Controller) settle.Handler {
	return claimHandler[*asset.Asset, ClaimAssetMsg, *ClaimAssetMsg]{
		auth:   auth,
		bucket: NewBucket(),
		vault:  assetVault{ctrl: assetCtrl},
		cash:   cashCtrl,
	}
}

type lockMsg interface {
	settle.Msg
	terms() terms
}

// lockHandler moves an object of type H owned by the main signer into a new
// escrow record. The main signer becomes the creator.
type lockHandler[H any, T any, M interface {
	*T
	lockMsg
}] struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	vault  vault[H]
}

func (h lockHandler[H, T, M]) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{GasAllocated: lockEscrowCost}, nil
}

// Deliver returns the id of the created record as data.
func (h lockHandler[H, T, M]) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	msg, held, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	t := msg.terms()

	id, err := settle.NewObjectID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "escrow id")
	}
	rec := &Escrow{
		Metadata:   &settle.Metadata{Schema: 1},
		Creator:    h.vault.owner(held),
		Recipient:  t.Recipient,
		Kind:       h.vault.kind(),
		HeldID:     t.HeldID,
		Price:      t.Price,
		UnlockTime: t.UnlockTime,
		Address:    Condition(id).Address(),
	}
	h.vault.describe(held, rec)

	if err := h.vault.transfer(db, t.HeldID, rec.Address); err != nil {
		return nil, errors.Wrap(err, "cannot take custody")
	}
	if err := h.bucket.Put(db, id, rec); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	evt, err := newLockEvent(id, rec)
	if err != nil {
		return nil, err
	}

	settle.GetLogger(ctx).Debug("escrow locked",
		"escrow", id, "kind", rec.Kind, "held", rec.HeldID, "recipient", rec.Recipient)
	return &settle.DeliverResult{
		Data:   id,
		Events: []*settle.Event{evt},
		Tags:   recordTags(id, rec),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h lockHandler[H, T, M]) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (msg M, held H, err error) {
	msg = M(new(T))
	if err = settle.LoadMsg(tx, msg); err != nil {
		return msg, held, errors.Wrap(err, "load msg")
	}
	id := msg.terms().HeldID
	held, err = h.vault.load(db, id)
	if err != nil {
		return msg, held, errors.Wrapf(err, "%s %s", h.vault.kind(), id)
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return msg, held, errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	if !signer.Address().Equals(h.vault.owner(held)) {
		return msg, held, errors.Wrapf(errors.ErrUnauthorized, "%s %s not owned by the main signer", h.vault.kind(), id)
	}
	return msg, held, nil
}

type claimMsg interface {
	settle.Msg
	claim() claim
}

// claimHandler releases the object of type H held by an escrow record to
// its recipient, paying the price to the creator.
type claimHandler[H any, T any, M interface {
	*T
	claimMsg
}] struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	vault  vault[H]
	cash   cash.Controller
}

func (h claimHandler[H, T, M]) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{GasAllocated: claimEscrowCost}, nil
}

// Deliver returns the id of the released object as data.
func (h claimHandler[H, T, M]) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	c, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if !rec.Price.IsZero() {
		if _, err := h.cash.Split(ctx, db, c.PaymentID, rec.Price.Amount, rec.Creator); err != nil {
			return nil, errors.Wrap(err, "cannot pay the price")
		}
	}
	if c.PaymentID != nil {
		change, err := h.cash.Load(db, c.PaymentID)
		if err != nil {
			return nil, errors.Wrap(err, "payment")
		}
		if change.Balance.IsZero() {
			if _, err := h.cash.Destroy(db, c.PaymentID); err != nil {
				return nil, errors.Wrap(err, "cannot destroy empty payment")
			}
		}
	}
	if err := h.vault.transfer(db, rec.HeldID, rec.Recipient); err != nil {
		return nil, errors.Wrap(err, "cannot release custody")
	}
	if err := h.bucket.Delete(db, c.EscrowID); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}
	evt, err := newClaimEvent(c.EscrowID, rec)
	if err != nil {
		return nil, err
	}

	settle.GetLogger(ctx).Debug("escrow claimed",
		"escrow", c.EscrowID, "held", rec.HeldID, "claimer", rec.Recipient)
	return &settle.DeliverResult{
		Data:   rec.HeldID,
		Events: []*settle.Event{evt},
		Tags:   recordTags(c.EscrowID, rec),
	}, nil
}

// validate checks the claim preconditions in order: recipient, unlock time,
// payment.
func (h claimHandler[H, T, M]) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (claim, *Escrow, error) {
	msg := M(new(T))
	if err := settle.LoadMsg(tx, msg); err != nil {
		return claim{}, nil, errors.Wrap(err, "load msg")
	}
	c := msg.claim()

	var rec Escrow
	if err := h.bucket.One(db, c.EscrowID, &rec); err != nil {
		return c, nil, errors.Wrapf(err, "escrow %s", c.EscrowID)
	}
	if rec.Kind != h.vault.kind() {
		return c, nil, errors.Wrapf(errors.ErrType, "escrow %s holds %s value", c.EscrowID, rec.Kind)
	}

	if signer := x.MainSigner(ctx, h.auth); signer == nil || !signer.Address().Equals(rec.Recipient) {
		return c, nil, errors.Wrapf(errors.ErrNotRecipient, "escrow %s", c.EscrowID)
	}

	if !rec.UnlockTime.IsZero() {
		now, err := settle.BlockUnixTime(ctx)
		if err != nil {
			return c, nil, errors.Wrap(err, "block time")
		}
		if now < rec.UnlockTime {
			return c, nil, errors.Wrapf(errors.ErrNotReadyYet, "unlocks at %s", rec.UnlockTime)
		}
	}

	if err := h.checkPayment(ctx, db, c.PaymentID, rec.Price); err != nil {
		return c, nil, err
	}
	return c, &rec, nil
}

func (h claimHandler[H, T, M]) checkPayment(ctx settle.Context, db settle.KVStore, id settle.ObjectID, price coin.Coin) error {
	if id == nil {
		if price.IsZero() {
			return nil
		}
		return errors.Wrapf(errors.ErrInsufficientPayment, "no payment for price %s", price)
	}
	payment, err := h.cash.Load(db, id)
	if err != nil {
		return errors.Wrapf(err, "payment %s", id)
	}
	if !price.IsZero() {
		if !payment.Balance.SameType(price) {
			return errors.Wrapf(errors.ErrInsufficientPayment, "payment in %s, price in %s", payment.Balance.Ticker, price.Ticker)
		}
		if !payment.Balance.IsGTE(price) {
			return errors.Wrapf(errors.ErrInsufficientPayment, "payment %s below price %s", payment.Balance, price)
		}
	}
	if !h.auth.HasAddress(ctx, payment.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "payment %s owner signature missing", id)
	}
	return nil
}

func recordTags(id settle.ObjectID, rec *Escrow) []common.KVPair {
	return []common.KVPair{
		settle.Tag("escrow.record_id", []byte(id.String())),
		settle.Tag("escrow.creator", []byte(rec.Creator.String())),
		settle.Tag("escrow.recipient", []byte(rec.Recipient.String())),
	}
}
