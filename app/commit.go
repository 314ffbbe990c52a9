package app

import (
	"encoding/binary"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed settle.CommitKVStore
	deliver   settle.KVCacheWrap
	check     settle.KVCacheWrap
}

// NewCommitStore loads the latest version of given store and sets up the
// deliver and check caches.
func NewCommitStore(store settle.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (settle.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates new deliver/check caches
func (cs *CommitStore) Commit() (settle.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return settle.CommitID{}, err
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// SyncCheck writes the delivered changes to the working state and rebuilds
// the check cache on top of it. Changes accumulated by checks are dropped.
func (cs *CommitStore) SyncCheck() error {
	if err := cs.deliver.Write(); err != nil {
		return err
	}
	cs.check.Discard()
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() settle.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() settle.CacheableKVStore {
	return cs.deliver
}

// _st: is a prefix for ledger internal data
const (
	chainIDKey = "_st:chainID"
	heightKey  = "_st:height"
)

func loadChainID(kv settle.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv settle.KVStore, chainID string) error {
	if !settle.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}

// loadHeight returns the height of the last delivered block, or zero.
func loadHeight(kv settle.ReadOnlyKVStore) (int64, error) {
	v, err := kv.Get([]byte(heightKey))
	if err != nil {
		return 0, errors.Wrap(err, "load height")
	}
	if v == nil {
		return 0, nil
	}
	if len(v) != 8 {
		return 0, errors.Wrapf(errors.ErrState, "height of %d bytes", len(v))
	}
	return int64(binary.BigEndian.Uint64(v)), nil
}

func saveHeight(kv settle.KVStore, height int64) error {
	var v [8]byte
	binary.BigEndian.PutUint64(v[:], uint64(height))
	if err := kv.Set([]byte(heightKey), v[:]); err != nil {
		return errors.Wrap(err, "save height")
	}
	return nil
}
