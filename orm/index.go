package orm

import (
	"bytes"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const indexPrefix = "_i."

// index is a secondary index on the models of a bucket. All primary keys
// indexed under the same value are kept as a MultiRef stored under a single
// key, so it should only be used for small collections.
type index struct {
	name    string
	prefix  []byte
	indexer Indexer
	unique  bool
}

func newIndex(bucket, name string, indexer Indexer, unique bool) *index {
	return &index{
		name:    name,
		prefix:  []byte(indexPrefix + bucket + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

// dbKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i *index) dbKey(value []byte) []byte {
	out := make([]byte, len(i.prefix)+len(value))
	copy(out, i.prefix)
	copy(out[len(i.prefix):], value)
	return out
}

// change is a pending move of one primary key within an index.
type change struct {
	idx        *index
	prev, next []byte
}

// plan computes how the reference to the model with given primary key moves
// when prev is replaced by next, without writing anything. A nil change means
// the index is not affected. A unique index already holding another model
// under the next value fails with ErrDuplicate.
//
// prev == nil means insert
// next == nil means delete
func (i *index) plan(db settle.ReadOnlyKVStore, pk []byte, prev, next Model) (*change, error) {
	if prev == nil && next == nil {
		return nil, errors.Wrap(errors.ErrHuman, "update requires at least one non-nil model")
	}

	var prevVal, nextVal []byte
	var err error
	if prev != nil {
		if prevVal, err = i.indexer(prev); err != nil {
			return nil, errors.Wrapf(err, "index %s", i.name)
		}
	}
	if next != nil {
		if nextVal, err = i.indexer(next); err != nil {
			return nil, errors.Wrapf(err, "index %s", i.name)
		}
	}
	if bytes.Equal(prevVal, nextVal) {
		return nil, nil
	}
	if i.unique && nextVal != nil {
		refs, err := i.load(db, nextVal)
		if err != nil {
			return nil, err
		}
		if len(refs.Refs) > 0 {
			return nil, errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
	}
	return &change{idx: i, prev: prevVal, next: nextVal}, nil
}

// apply writes a planned change.
func (c *change) apply(db settle.KVStore, pk []byte) error {
	if c.prev != nil {
		if err := c.idx.remove(db, c.prev, pk); err != nil {
			return err
		}
	}
	if c.next != nil {
		if err := c.idx.insert(db, c.next, pk); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the primary keys of all models indexed under given value.
func (i *index) Keys(db settle.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := i.load(db, value)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

func (i *index) load(db settle.ReadOnlyKVStore, value []byte) (*MultiRef, error) {
	raw, err := db.Get(i.dbKey(value))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load index")
	}
	var refs MultiRef
	if raw == nil {
		return &refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "index %s: %s", i.name, err)
	}
	return &refs, nil
}

func (i *index) insert(db settle.KVStore, value, pk []byte) error {
	refs, err := i.load(db, value)
	if err != nil {
		return err
	}
	if i.unique && len(refs.Refs) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
	}
	if err := refs.Add(pk); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	return i.save(db, value, refs)
}

func (i *index) remove(db settle.KVStore, value, pk []byte) error {
	refs, err := i.load(db, value)
	if err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	if len(refs.Refs) == 0 {
		return db.Delete(i.dbKey(value))
	}
	return i.save(db, value, refs)
}

func (i *index) save(db settle.KVStore, value []byte, refs *MultiRef) error {
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize index")
	}
	return db.Set(i.dbKey(value), raw)
}
