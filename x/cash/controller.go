package cash

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

// Controller is the functionality needed by other extensions to manipulate
// coin objects. It does not authenticate anyone, callers are expected to
// check ownership first.
type Controller interface {
	// Mint creates a new coin object.
	Mint(ctx settle.Context, db settle.KVStore, owner settle.Address, amount coin.Coin) (settle.ObjectID, error)
	// Load returns the coin object with given id.
	Load(db settle.ReadOnlyKVStore, id settle.ObjectID) (*Coin, error)
	// Transfer changes the owner of a coin object.
	Transfer(db settle.KVStore, id settle.ObjectID, to settle.Address) error
	// Split moves given amount out of a coin object into a new object owned
	// by to. The source keeps the remainder.
	Split(ctx settle.Context, db settle.KVStore, id settle.ObjectID, amount uint64, to settle.Address) (settle.ObjectID, error)
	// Merge moves the whole balance of src into dst and destroys src.
	Merge(db settle.KVStore, dst, src settle.ObjectID) error
	// Destroy deletes a coin object and returns the balance it held.
	Destroy(db settle.KVStore, id settle.ObjectID) (coin.Coin, error)
	// Balance sums all objects of given ticker owned by given address.
	Balance(db settle.ReadOnlyKVStore, owner settle.Address, ticker string) (coin.Coin, error)
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a Controller backed by the coin bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Mint(ctx settle.Context, db settle.KVStore, owner settle.Address, amount coin.Coin) (settle.ObjectID, error) {
	id, err := settle.NewObjectID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "coin id")
	}
	obj := Coin{
		Metadata: &settle.Metadata{Schema: 1},
		Owner:    owner,
		Balance:  amount,
	}
	if err := c.bucket.Put(db, id, &obj); err != nil {
		return nil, errors.Wrap(err, "cannot store coin")
	}
	return id, nil
}

func (c BaseController) Load(db settle.ReadOnlyKVStore, id settle.ObjectID) (*Coin, error) {
	var obj Coin
	if err := c.bucket.One(db, id, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func (c BaseController) Transfer(db settle.KVStore, id settle.ObjectID, to settle.Address) error {
	obj, err := c.Load(db, id)
	if err != nil {
		return err
	}
	obj.Owner = to
	return c.bucket.Put(db, id, obj)
}

func (c BaseController) Split(ctx settle.Context, db settle.KVStore, id settle.ObjectID, amount uint64, to settle.Address) (settle.ObjectID, error) {
	src, err := c.Load(db, id)
	if err != nil {
		return nil, err
	}
	part := coin.NewCoin(amount, src.Balance.Ticker)
	rest, err := src.Balance.Subtract(part)
	if err != nil {
		return nil, errors.Wrap(err, "cannot split")
	}
	src.Balance = rest
	if err := c.bucket.Put(db, id, src); err != nil {
		return nil, err
	}
	return c.Mint(ctx, db, to, part)
}

func (c BaseController) Merge(db settle.KVStore, dst, src settle.ObjectID) error {
	if dst.Equals(src) {
		return errors.Wrap(errors.ErrInput, "cannot merge a coin with itself")
	}
	into, err := c.Load(db, dst)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	from, err := c.Load(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	total, err := into.Balance.Add(from.Balance)
	if err != nil {
		return err
	}
	into.Balance = total
	if err := c.bucket.Delete(db, src); err != nil {
		return err
	}
	return c.bucket.Put(db, dst, into)
}

func (c BaseController) Destroy(db settle.KVStore, id settle.ObjectID) (coin.Coin, error) {
	obj, err := c.Load(db, id)
	if err != nil {
		return coin.Coin{}, err
	}
	if err := c.bucket.Delete(db, id); err != nil {
		return coin.Coin{}, err
	}
	return obj.Balance, nil
}

func (c BaseController) Balance(db settle.ReadOnlyKVStore, owner settle.Address, ticker string) (coin.Coin, error) {
	var objs []*Coin
	if _, err := c.bucket.ByIndex(db, "owner", owner, &objs); err != nil {
		return coin.Coin{}, err
	}
	total := coin.NewCoin(0, ticker)
	for _, o := range objs {
		if o.Balance.Ticker != ticker {
			continue
		}
		sum, err := total.Add(o.Balance)
		if err != nil {
			return coin.Coin{}, err
		}
		total = sum
	}
	return total, nil
}

// ByOwner returns all coin objects owned by given address and their ids.
func (c BaseController) ByOwner(db settle.ReadOnlyKVStore, owner settle.Address) ([]settle.ObjectID, []*Coin, error) {
	var objs []*Coin
	keys, err := c.bucket.ByIndex(db, "owner", owner, &objs)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]settle.ObjectID, len(keys))
	for i, k := range keys {
		ids[i] = k
	}
	return ids, objs, nil
}
