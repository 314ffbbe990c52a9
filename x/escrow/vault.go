package escrow

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/x/asset"
	"github.com/iov-one/settle/x/cash"
)

// vault moves held objects of type H in and out of custody. One
// implementation exists for every kind of object an escrow can hold, so the
// lock and claim logic is written once.
type vault[H any] interface {
	kind() Kind
	load(db settle.ReadOnlyKVStore, id settle.ObjectID) (H, error)
	owner(held H) settle.Address
	// describe copies the information about the held value that is kept
	// on the record.
	describe(held H, rec *Escrow)
	transfer(db settle.KVStore, id settle.ObjectID, to settle.Address) error
}

type cashVault struct {
	ctrl cash.Controller
}

var _ vault[*cash.Coin] = cashVault{}

func (cashVault) kind() Kind {
	return Fungible
}

func (v cashVault) load(db settle.ReadOnlyKVStore, id settle.ObjectID) (*cash.Coin, error) {
	return v.ctrl.Load(db, id)
}

func (cashVault) owner(c *cash.Coin) settle.Address {
	return c.Owner
}

func (cashVault) describe(c *cash.Coin, rec *Escrow) {
	rec.Amount = c.Balance
}

func (v cashVault) transfer(db settle.KVStore, id settle.ObjectID, to settle.Address) error {
	return v.ctrl.Transfer(db, id, to)
}

type assetVault struct {
	ctrl asset.Controller
}

var _ vault[*asset.Asset] = assetVault{}

func (assetVault) kind() Kind {
	return Unique
}

func (v assetVault) load(db settle.ReadOnlyKVStore, id settle.ObjectID) (*asset.Asset, error) {
	return v.ctrl.Load(db, id)
}

func (assetVault) owner(a *asset.Asset) settle.Address {
	return a.Owner
}

func (assetVault) describe(a *asset.Asset, rec *Escrow) {
	rec.AssetKind = a.Kind
}

func (v assetVault) transfer(db settle.KVStore, id settle.ObjectID, to settle.Address) error {
	return v.ctrl.Transfer(db, id, to)
}
