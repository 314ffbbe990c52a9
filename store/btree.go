package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/settle/errors"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree
	DefaultFreeListSize = btree.DefaultFreeListSize

	// degree of every btree used as a cache
	btreeDegree = 2
)

// BTreeCacheable adds a simple btree-based CacheWrap
// strategy to a KVStore
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap places a btree cache over a KVStore. Every write lands in
// the btree (so that reads see it) and in the batch (so that Write can flush
// it to the parent). Nothing reaches the parent before Write is called.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this
// kv store. Use ReadOnlyKVStore to emphasize that all writes
// must go through the Batch.
//
// free may be nil, but set to an existing list to reuse it
// for memory savings
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) *BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return &BTreeCacheWrap{
		bt:    btree.NewWithFreeList(btreeDegree, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another BTree on top of this one.
// The new layer shares the free list of its parent.
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to
// our cachewrap
func (b *BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all pending operations to the underlying store and resets
// the cache.
func (b *BTreeCacheWrap) Write() error {
	if err := b.batch.Write(); err != nil {
		return errors.Wrap(err, "cannot write batch")
	}
	b.Discard()
	return nil
}

// Discard drops all pending operations. The btree nodes are returned to
// the free list.
func (b *BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
	if r, ok := b.batch.(resetter); ok {
		r.Reset()
	}
}

// resetter is implemented by batches that can drop their pending operations.
type resetter interface {
	Reset()
}

// Set writes to the BTree and to the batch
func (b *BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	b.bt.ReplaceOrInsert(setItem{bkey{key}, value})
	return b.batch.Set(key, value)
}

// Delete deletes from the BTree and to the batch
func (b *BTreeCacheWrap) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	b.bt.ReplaceOrInsert(deletedItem{bkey{key}})
	return b.batch.Delete(key)
}

// Get reads from btree if there, else backing store
func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	switch t := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.back.Get(key)
	case setItem:
		return t.value, nil
	case deletedItem:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", t)
	}
}

// Has reads from btree if there, else backing store
func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch t := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.back.Has(key)
	case setItem:
		return true, nil
	case deletedItem:
		return false, nil
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", t)
	}
}

// Iterator over a domain of keys in ascending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer parent.Close()
	models, err := mergeItems(ascendRange(b.bt, start, end), parent, ascending)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(models), nil
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	defer parent.Close()
	items := ascendRange(b.bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	models, err := mergeItems(items, parent, descending)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(models), nil
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

type setItem struct {
	bkey
	value []byte
}
