package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuite runs the checks every CacheableKVStore implementation must pass.
// Only the constructor differs between implementations.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function that releases
// its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite testing stores built by given constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// AtomicWrite checks that a cache wrap is invisible to its parent until it
// is written and that a discarded wrap leaves no trace.
func (s *TestSuite) AtomicWrite(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	held, payment, change := objKey("coin", 1), objKey("coin", 2), objKey("coin", 3)
	require.NoError(t, base.Set(held, []byte("10 IOV")))
	s.AssertGetHas(t, base, held, []byte("10 IOV"), true)

	failed := base.CacheWrap()
	require.NoError(t, failed.Delete(held))
	require.NoError(t, failed.Set(payment, []byte("5 ETH")))
	s.AssertGetHas(t, failed, held, nil, false)
	s.AssertGetHas(t, base, payment, nil, false)
	failed.Discard()
	s.AssertGetHas(t, base, held, []byte("10 IOV"), true)
	s.AssertGetHas(t, base, payment, nil, false)

	ok := base.CacheWrap()
	require.NoError(t, ok.Delete(held))
	require.NoError(t, ok.Set(payment, []byte("5 ETH")))
	require.NoError(t, ok.Set(change, []byte("0 ETH")))
	require.NoError(t, ok.Write())
	s.AssertGetHas(t, base, held, nil, false)
	s.AssertGetHas(t, base, payment, []byte("5 ETH"), true)
	s.AssertGetHas(t, base, change, []byte("0 ETH"), true)
}

// NestedWrap checks a transaction wrap layered on top of a block wrap. Only
// writing both layers reaches the base store.
func (s *TestSuite) NestedWrap(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	key := objKey("escrow", 7)
	block := base.CacheWrap()
	tx := block.CacheWrap()
	require.NoError(t, tx.Set(key, []byte("locked")))

	s.AssertGetHas(t, block, key, nil, false)
	require.NoError(t, tx.Write())
	s.AssertGetHas(t, block, key, []byte("locked"), true)
	s.AssertGetHas(t, base, key, nil, false)

	require.NoError(t, block.Write())
	s.AssertGetHas(t, base, key, []byte("locked"), true)
}

// Conflicts checks that a wrap can overwrite and delete values of its
// parent, and that writing it applies the same view to the parent.
func (s *TestSuite) Conflicts(t *testing.T) {
	a, b, c := objKey("coin", 1), objKey("coin", 2), objKey("coin", 3)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model
		childQueries  []Model
	}{
		"overwrite one, delete another": {
			parentOps:     []Op{SetOp(a, []byte("1")), SetOp(b, []byte("2"))},
			childOps:      []Op{SetOp(a, []byte("11")), DelOp(b), SetOp(c, []byte("3"))},
			parentQueries: []Model{Pair(a, []byte("1")), Pair(b, []byte("2")), Pair(c, nil)},
			childQueries:  []Model{Pair(a, []byte("11")), Pair(b, nil), Pair(c, []byte("3"))},
		},
		"set after delete restores the key": {
			parentOps:     []Op{SetOp(a, []byte("1"))},
			childOps:      []Op{DelOp(a), SetOp(a, []byte("12"))},
			parentQueries: []Model{Pair(a, []byte("1"))},
			childQueries:  []Model{Pair(a, []byte("12"))},
		},
		"delete of a missing key is a no-op": {
			childOps:     []Op{DelOp(c)},
			childQueries: []Model{Pair(c, nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// OrderedIteration checks that iterating a wrap merges it with its parent in
// key order, hides deleted keys and honours the range bounds in both
// directions. Event log keys rely on this ordering.
func (s *TestSuite) OrderedIteration(t *testing.T) {
	var committed, pending []Model
	for h := uint64(1); h <= 6; h++ {
		committed = append(committed, Pair(eventKey(h, 0), []byte(fmt.Sprintf("old %d", h))))
		pending = append(pending, Pair(eventKey(h, 1), []byte(fmt.Sprintf("new %d", h))))
	}
	overwritten := Pair(committed[2].Key, []byte("replaced"))
	deleted := committed[4]

	all := append(append([]Model{}, committed...), pending...)
	all = sortModels(all)
	var merged []Model
	for _, m := range all {
		switch {
		case bytes.Equal(m.Key, deleted.Key):
		case bytes.Equal(m.Key, overwritten.Key):
			merged = append(merged, overwritten)
		default:
			merged = append(merged, m)
		}
	}
	childOps := append(makeSetOps(pending...), SetOp(overwritten.Key, overwritten.Value), DelOp(deleted.Key))

	cases := map[string]iterCase{
		"parent only": {
			pre: makeSetOps(committed...),
			queries: []rangeQuery{
				{nil, nil, false, committed},
				{committed[1].Key, committed[4].Key, false, committed[1:4]},
				{nil, nil, true, reverse(committed)},
			},
		},
		"child only": {
			child: makeSetOps(pending...),
			queries: []rangeQuery{
				{nil, nil, false, pending},
				{pending[2].Key, nil, false, pending[2:]},
				{nil, pending[3].Key, true, reverse(pending[:3])},
			},
		},
		"child shadows parent": {
			pre:   makeSetOps(committed...),
			child: childOps,
			queries: []rangeQuery{
				{nil, nil, false, merged},
				{merged[3].Key, merged[8].Key, false, merged[3:8]},
				{nil, nil, true, reverse(merged)},
				{merged[2].Key, nil, true, reverse(merged[2:])},
				{deleted.Key, pending[4].Key, false, nil},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// AssertGetHas checks that both Get and Has report the expected state of a
// key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func objKey(bucket string, n uint64) []byte {
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], n)
	return append([]byte(bucket+":"), id[:]...)
}

func eventKey(height uint64, n uint32) []byte {
	key := make([]byte, 0, 16)
	key = append(key, "evt:"...)
	key = binary.BigEndian.AppendUint64(key, height)
	return binary.BigEndian.AppendUint32(key, n)
}

type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (i iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	for _, op := range i.pre {
		require.NoError(t, op.Apply(base))
	}
	child := base.CacheWrap()
	for _, op := range i.child {
		require.NoError(t, op.Apply(child))
	}

	for n, q := range i.queries {
		var (
			iter Iterator
			err  error
		)
		if q.reverse {
			iter, err = child.ReverseIterator(q.start, q.end)
		} else {
			iter, err = child.Iterator(q.start, q.end)
		}
		require.NoError(t, err)

		var got []Model
		for ; iter.Valid(); err = iter.Next() {
			require.NoError(t, err)
			got = append(got, Pair(iter.Key(), iter.Value()))
		}
		require.NoError(t, err)
		iter.Close()

		require.Len(t, got, len(q.expected), "query %d", n)
		for k := range q.expected {
			assert.Equal(t, q.expected[k].Key, got[k].Key, "query %d key %d", n, k)
			assert.Equal(t, q.expected[k].Value, got[k].Value, "query %d value %d", n, k)
		}
	}
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}
