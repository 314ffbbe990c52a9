package escrow

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Load returns the escrow record with given id. A claimed record no longer
// exists and fails with ErrNotFound.
func Load(db settle.ReadOnlyKVStore, id settle.ObjectID) (*Escrow, error) {
	var rec Escrow
	if err := NewBucket().One(db, id, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ByCreator returns all open escrows funded by given address.
func ByCreator(db settle.ReadOnlyKVStore, creator settle.Address) ([]settle.ObjectID, []*Escrow, error) {
	return byIndex(db, "creator", creator)
}

// ByRecipient returns all open escrows claimable by given address.
func ByRecipient(db settle.ReadOnlyKVStore, recipient settle.Address) ([]settle.ObjectID, []*Escrow, error) {
	return byIndex(db, "recipient", recipient)
}

func byIndex(db settle.ReadOnlyKVStore, index string, addr settle.Address) ([]settle.ObjectID, []*Escrow, error) {
	if err := addr.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, index)
	}
	var recs []*Escrow
	keys, err := NewBucket().ByIndex(db, index, addr, &recs)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]settle.ObjectID, len(keys))
	for i, k := range keys {
		ids[i] = k
	}
	return ids, recs, nil
}
