package cash

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"cash": [
			{"address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "coins": ["100 IOV", "7 ETH"]},
			{"address": "AA1122334455667788990011223344556677AAAA", "coins": ["1 IOV"]}
		]
	}`
	var opts settle.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	ctx := settletest.Context(time.Now())
	require.NoError(t, Initializer{}.FromGenesis(ctx, opts, db))

	ctrl := NewController()
	first := settletest.ParseAddress(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")
	ids, _, err := ctrl.ByOwner(db, first)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assertBalance(t, ctrl, db, first, "IOV", 100)
	assertBalance(t, ctrl, db, first, "ETH", 7)

	bad := settle.Options{"cash": json.RawMessage(`[{"address": "1234", "coins": ["1 IOV"]}]`)}
	assert.Error(t, Initializer{}.FromGenesis(ctx, bad, store.MemStore()))
}
