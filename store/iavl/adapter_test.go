package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/settle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// makeBase returns the working tree of a fresh disk backed store.
func makeBase() (store.CacheableKVStore, func()) {
	commit, cleanup := makeCommitStore()
	return commit.Adapter(), cleanup
}

func makeCommitStore() (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }
	commit, err := NewCommitStore(tmpDir, "base")
	if err != nil {
		cleanup()
		panic(err)
	}
	return commit, cleanup
}

func TestCacheAtomicWrite(t *testing.T) {
	store.NewTestSuite(makeBase).AtomicWrite(t)
}

func TestCacheNestedWrap(t *testing.T) {
	store.NewTestSuite(makeBase).NestedWrap(t)
}

func TestCacheConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).Conflicts(t)
}

func TestCacheOrderedIteration(t *testing.T) {
	store.NewTestSuite(makeBase).OrderedIteration(t)
}

func TestCommitStore(t *testing.T) {
	commit := MockCommitStore()

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("coin"), []byte("100 IOV")))
	require.NoError(t, cache.Write())

	// nothing is visible at the committed version yet
	got, err := commit.Get([]byte("coin"))
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get([]byte("coin"))
	require.NoError(t, err)
	assert.Equal(t, []byte("100 IOV"), got)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)

	// a discarded cache does not change the next version
	cache = commit.CacheWrap()
	require.NoError(t, cache.Delete([]byte("coin")))
	cache.Discard()
	next, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.Version)
	assert.Equal(t, id.Hash, next.Hash)
}

func TestLoadLatestVersion(t *testing.T) {
	db := dbm.NewMemDB()

	commit := NewCommitStoreFromDB(db)
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("asset"), []byte("ticket")))
	require.NoError(t, cache.Write())
	id, err := commit.Commit()
	require.NoError(t, err)

	reloaded := NewCommitStoreFromDB(db)
	require.NoError(t, reloaded.LoadLatestVersion())
	latest, err := reloaded.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)

	got, err := reloaded.Get([]byte("asset"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ticket"), got)
}
