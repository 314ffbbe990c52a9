package asset

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

// Controller is the functionality needed by other extensions to manipulate
// assets. Ownership is not checked here.
type Controller interface {
	Mint(ctx settle.Context, db settle.KVStore, owner settle.Address, kind, uri string) (settle.ObjectID, error)
	Load(db settle.ReadOnlyKVStore, id settle.ObjectID) (*Asset, error)
	Transfer(db settle.KVStore, id settle.ObjectID, to settle.Address) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a Controller backed by the asset bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Mint(ctx settle.Context, db settle.KVStore, owner settle.Address, kind, uri string) (settle.ObjectID, error) {
	id, err := settle.NewObjectID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "asset id")
	}
	a := Asset{
		Metadata: &settle.Metadata{Schema: 1},
		Owner:    owner,
		Kind:     kind,
		URI:      uri,
	}
	if err := c.bucket.Put(db, id, &a); err != nil {
		return nil, errors.Wrap(err, "cannot store asset")
	}
	return id, nil
}

func (c BaseController) Load(db settle.ReadOnlyKVStore, id settle.ObjectID) (*Asset, error) {
	var a Asset
	if err := c.bucket.One(db, id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c BaseController) Transfer(db settle.KVStore, id settle.ObjectID, to settle.Address) error {
	a, err := c.Load(db, id)
	if err != nil {
		return err
	}
	a.Owner = to
	return c.bucket.Put(db, id, a)
}

// ByOwner returns the ids of all assets owned by given address.
func (c BaseController) ByOwner(db settle.ReadOnlyKVStore, owner settle.Address) ([]settle.ObjectID, error) {
	keys, err := c.bucket.IndexKeys(db, "owner", owner)
	if err != nil {
		return nil, err
	}
	ids := make([]settle.ObjectID, len(keys))
	for i, k := range keys {
		ids[i] = k
	}
	return ids, nil
}
