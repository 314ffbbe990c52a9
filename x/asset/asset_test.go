package asset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController(t *testing.T) {
	db := store.MemStore()
	ctx := settletest.Context(time.Now())
	ctrl := NewController()
	alice := settletest.NewCondition().Address()
	bob := settletest.NewCondition().Address()

	id, err := ctrl.Mint(ctx, db, alice, "nft.ticket", "https://example.com/seat/12")
	require.NoError(t, err)

	a, err := ctrl.Load(db, id)
	require.NoError(t, err)
	assert.Equal(t, "nft.ticket", a.Kind)
	assert.Equal(t, alice, a.Owner)

	require.NoError(t, ctrl.Transfer(db, id, bob))
	ids, err := ctrl.ByOwner(db, bob)
	require.NoError(t, err)
	assert.Equal(t, []settle.ObjectID{id}, ids)
	ids, err = ctrl.ByOwner(db, alice)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ctrl.Mint(ctx, db, alice, "X", "")
	assert.True(t, errors.ErrInput.Is(err))
	assert.True(t, errors.ErrNotFound.Is(ctrl.Transfer(db, settletest.SequenceID(5), bob)))
}

func TestTransferHandler(t *testing.T) {
	alice := settletest.NewCondition()
	bob := settletest.NewCondition()

	cases := map[string]struct {
		signer    settle.Condition
		wantErr   *errors.Error
		wantOwner settle.Address
	}{
		"owner transfers": {
			signer:    alice,
			wantOwner: bob.Address(),
		},
		"recipient cannot take": {
			signer:    bob,
			wantErr:   errors.ErrUnauthorized,
			wantOwner: alice.Address(),
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := settletest.Context(time.Now())
			ctrl := NewController()
			id, err := ctrl.Mint(ctx, db, alice.Address(), "nft.ticket", "")
			require.NoError(t, err)

			h := NewTransferHandler(&settletest.Auth{Signer: tc.signer}, ctrl)
			tx := &settletest.Tx{Msg: &TransferMsg{
				Metadata:    &settle.Metadata{Schema: 1},
				AssetID:     id,
				Destination: bob.Address(),
			}}
			_, err = h.Check(ctx, db, tx)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			_, err = h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %v", err)
			} else {
				require.NoError(t, err)
			}

			a, err := ctrl.Load(db, id)
			require.NoError(t, err)
			assert.Equal(t, tc.wantOwner, a.Owner)
		})
	}
}

func TestGenesis(t *testing.T) {
	opts := settle.Options{"assets": json.RawMessage(`[
		{"owner": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "kind": "nft.ticket", "uri": "seat 1"},
		{"owner": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "kind": "nft.ticket", "uri": "seat 2"}
	]`)}
	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(settletest.Context(time.Now()), opts, db))

	ids, err := NewController().ByOwner(db, settletest.ParseAddress(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"))
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}
