package store

import (
	"bytes"

	"github.com/google/btree"
)

type direction int

const (
	ascending direction = iota
	descending
)

// ascendRange returns all btree items within [start, end) in ascending
// order. A nil bound means unlimited.
func ascendRange(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// mergeItems combines cached items with the parent iterator into a single
// ordered result. A cached item shadows a parent entry with the same key and
// a deleted item removes it. Both inputs must be ordered in given direction.
func mergeItems(items []btree.Item, parent Iterator, dir direction) ([]Model, error) {
	var res []Model
	// before reports whether a sorts before b in the iteration order.
	before := func(a, b []byte) int {
		cmp := bytes.Compare(a, b)
		if dir == descending {
			return -cmp
		}
		return cmp
	}

	i := 0
	for i < len(items) || parent.Valid() {
		if i == len(items) {
			res = append(res, Model{Key: parent.Key(), Value: parent.Value()})
			if err := parent.Next(); err != nil {
				return nil, err
			}
			continue
		}

		ours := items[i].(keyer).Key()
		if parent.Valid() {
			cmp := before(parent.Key(), ours)
			if cmp < 0 {
				res = append(res, Model{Key: parent.Key(), Value: parent.Value()})
				if err := parent.Next(); err != nil {
					return nil, err
				}
				continue
			}
			if cmp == 0 {
				// shadowed by the cache
				if err := parent.Next(); err != nil {
					return nil, err
				}
			}
		}

		if set, ok := items[i].(setItem); ok {
			res = append(res, Model{Key: set.key, Value: set.value})
		}
		i++
	}
	return res, nil
}
