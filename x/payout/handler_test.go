package payout

import (
	"testing"
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/store"
	"github.com/iov-one/settle/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var meta = &settle.Metadata{Schema: 1}

func deliver(db store.CacheableKVStore, h settle.Handler, msg settle.Msg) (*settle.DeliverResult, error) {
	ctx := settletest.Context(time.Now())
	tx := &settletest.Tx{Msg: msg}
	if _, err := h.Check(ctx, db.CacheWrap(), tx); err != nil {
		return nil, err
	}
	cache := db.CacheWrap()
	res, err := h.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	return res, cache.Write()
}

func TestBatchPay(t *testing.T) {
	a := settletest.NewCondition().Address()
	b := settletest.NewCondition().Address()

	cases := map[string]struct {
		balance    uint64
		recipients []settle.Address
		amounts    []uint64
		// signed by a stranger instead of the payment owner
		stranger   bool
		wantErr    *errors.Error
		wantFee    uint64
		wantPaid   map[string]uint64
		wantChange uint64
	}{
		"two recipients": {
			balance:    500,
			recipients: []settle.Address{a, b},
			amounts:    []uint64{100, 200},
			wantFee:    1,
			wantPaid:   map[string]uint64{a.String(): 100, b.String(): 200},
			wantChange: 199,
		},
		"exact payment": {
			balance:    20100,
			recipients: []settle.Address{a},
			amounts:    []uint64{20000},
			wantFee:    100,
			wantPaid:   map[string]uint64{a.String(): 20000},
			wantChange: 0,
		},
		"duplicate recipient": {
			balance:    30,
			recipients: []settle.Address{a, a},
			amounts:    []uint64{5, 5},
			wantFee:    1,
			wantPaid:   map[string]uint64{a.String(): 10},
			wantChange: 19,
		},
		"zero amounts pay no fee": {
			balance:    3,
			recipients: []settle.Address{a},
			amounts:    []uint64{0},
			wantFee:    0,
			wantPaid:   map[string]uint64{a.String(): 0},
			wantChange: 3,
		},
		"empty payment cannot cover the fee": {
			balance:    0,
			recipients: []settle.Address{a},
			amounts:    []uint64{1},
			wantErr:    errors.ErrInsufficientPayment,
		},
		"payment covers amounts but not the fee": {
			balance:    300,
			recipients: []settle.Address{a, b},
			amounts:    []uint64{100, 200},
			wantErr:    errors.ErrInsufficientPayment,
		},
		"length mismatch": {
			balance:    500,
			recipients: []settle.Address{a, b},
			amounts:    []uint64{100},
			wantErr:    errors.ErrLengthMismatch,
		},
		"payment owner must sign": {
			balance:    500,
			recipients: []settle.Address{a},
			amounts:    []uint64{100},
			stranger:   true,
			wantErr:    errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := cash.NewController()
			sender := settletest.NewCondition()
			owner := settletest.NewCondition().Address()

			payment, err := ctrl.Mint(settletest.Context(time.Now()), db, sender.Address(), coin.NewCoin(tc.balance, "IOV"))
			require.NoError(t, err)

			signer := sender
			if tc.stranger {
				signer = settletest.NewCondition()
			}
			h := NewBatchPayHandler(&settletest.Auth{Signer: signer}, ctrl,
				&StaticConfig{Metadata: meta, Owner: owner})

			res, err := deliver(db, h, &BatchPayMsg{
				Metadata:   meta,
				PaymentID:  payment,
				Recipients: tc.recipients,
				Amounts:    tc.amounts,
			})

			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %v", err)
				assert.Nil(t, res)
				obj, err := ctrl.Load(db, payment)
				require.NoError(t, err)
				assert.Equal(t, tc.balance, obj.Balance.Amount)
				for _, r := range []settle.Address{a, b, owner} {
					ids, _, err := ctrl.ByOwner(db, r)
					require.NoError(t, err)
					assert.Empty(t, ids)
				}
				return
			}
			require.NoError(t, err)

			obj, err := ctrl.Load(db, payment)
			require.NoError(t, err, "payment stays with the sender")
			assert.Equal(t, sender.Address(), obj.Owner)
			assert.Equal(t, tc.wantChange, obj.Balance.Amount)

			var paid uint64
			for addr, want := range tc.wantPaid {
				got, err := ctrl.Balance(db, settletest.ParseAddress(t, addr), "IOV")
				require.NoError(t, err)
				assert.Equal(t, want, got.Amount)
				paid += want
			}
			fee, err := ctrl.Balance(db, owner, "IOV")
			require.NoError(t, err)
			assert.Equal(t, tc.wantFee, fee.Amount)
			assert.Equal(t, tc.balance, obj.Balance.Amount+paid+fee.Amount)

			if tc.wantFee == 0 {
				ids, _, err := ctrl.ByOwner(db, owner)
				require.NoError(t, err)
				assert.Empty(t, ids)
			}

			require.Len(t, res.Events, 1)
			assert.Equal(t, "payout.BatchPayoutEvent<IOV>", res.Events[0].Type)
			var evt BatchPayoutEvent
			require.NoError(t, evt.Unmarshal(res.Events[0].Payload))
			assert.Equal(t, sender.Address(), evt.Sender)
			assert.Equal(t, uint64(len(tc.recipients)), evt.RecipientCount)
			assert.Equal(t, coin.NewCoin(paid, "IOV"), evt.TotalAmount)
			assert.Equal(t, coin.NewCoin(tc.wantFee, "IOV"), evt.FeeAmount)
		})
	}
}

func TestBatchPayDuplicateRecipientGetsSeparateObjects(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController()
	sender := settletest.NewCondition()
	a := settletest.NewCondition().Address()
	payment, err := ctrl.Mint(settletest.Context(time.Now()), db, sender.Address(), coin.NewCoin(100, "IOV"))
	require.NoError(t, err)

	h := NewBatchPayHandler(&settletest.Auth{Signer: sender}, ctrl,
		&StaticConfig{Metadata: meta, Owner: settletest.NewCondition().Address()})
	_, err = deliver(db, h, &BatchPayMsg{
		Metadata:   meta,
		PaymentID:  payment,
		Recipients: []settle.Address{a, a, a},
		Amounts:    []uint64{1, 2, 3},
	})
	require.NoError(t, err)

	_, objs, err := ctrl.ByOwner(db, a)
	require.NoError(t, err)
	require.Len(t, objs, 3)
}

func TestBatchPayWithoutConfiguration(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController()
	sender := settletest.NewCondition()
	payment, err := ctrl.Mint(settletest.Context(time.Now()), db, sender.Address(), coin.NewCoin(100, "IOV"))
	require.NoError(t, err)

	h := NewBatchPayHandler(&settletest.Auth{Signer: sender}, ctrl, StoreConfig{})
	_, err = deliver(db, h, &BatchPayMsg{
		Metadata:   meta,
		PaymentID:  payment,
		Recipients: []settle.Address{settletest.NewCondition().Address()},
		Amounts:    []uint64{10},
	})
	assert.True(t, errors.ErrNotFound.Is(err), "got %v", err)
}

func TestBatchPayMsgEncoding(t *testing.T) {
	msg := &BatchPayMsg{
		Metadata:   meta,
		PaymentID:  settletest.SequenceID(1),
		Recipients: []settle.Address{settletest.NewCondition().Address(), settletest.NewCondition().Address()},
		Amounts:    []uint64{7, 0},
	}
	require.NoError(t, msg.Validate())
	raw, err := msg.Marshal()
	require.NoError(t, err)
	var got BatchPayMsg
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, msg, &got)
}
