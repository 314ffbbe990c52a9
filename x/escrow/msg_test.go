package escrow

import (
	"testing"
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockMsgValidate(t *testing.T) {
	recipient := settletest.NewCondition().Address()
	held := settletest.SequenceID(1)

	cases := map[string]struct {
		msg     settle.Msg
		wantErr *errors.Error
	}{
		"fungible without price": {
			msg: &LockFungibleMsg{Metadata: meta, CoinID: held, Recipient: recipient},
		},
		"asset with price and unlock time": {
			msg: &LockAssetMsg{
				Metadata:   meta,
				AssetID:    held,
				Recipient:  recipient,
				Price:      coin.NewCoin(5, "ETH"),
				UnlockTime: settle.AsUnixTime(genesis),
			},
		},
		"missing metadata": {
			msg:     &LockFungibleMsg{CoinID: held, Recipient: recipient},
			wantErr: errors.ErrMetadata,
		},
		"bad held id": {
			msg:     &LockFungibleMsg{Metadata: meta, CoinID: []byte("short"), Recipient: recipient},
			wantErr: errors.ErrInput,
		},
		"missing recipient": {
			msg:     &LockAssetMsg{Metadata: meta, AssetID: held},
			wantErr: errors.ErrInput,
		},
		"price without ticker": {
			msg:     &LockFungibleMsg{Metadata: meta, CoinID: held, Recipient: recipient, Price: coin.Coin{Amount: 3}},
			wantErr: errors.ErrCurrency,
		},
		"negative unlock time": {
			msg:     &LockFungibleMsg{Metadata: meta, CoinID: held, Recipient: recipient, UnlockTime: -1},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %v", err)
		})
	}
}

func TestClaimMsgValidate(t *testing.T) {
	id := settletest.SequenceID(7)

	cases := map[string]struct {
		msg     settle.Msg
		wantErr *errors.Error
	}{
		"without payment": {
			msg: &ClaimFungibleMsg{Metadata: meta, EscrowID: id},
		},
		"with payment": {
			msg: &ClaimAssetMsg{Metadata: meta, EscrowID: id, PaymentID: settletest.SequenceID(8)},
		},
		"bad payment id": {
			msg:     &ClaimAssetMsg{Metadata: meta, EscrowID: id, PaymentID: []byte{1}},
			wantErr: errors.ErrInput,
		},
		"missing escrow id": {
			msg:     &ClaimFungibleMsg{Metadata: meta},
			wantErr: errors.ErrInput,
		},
		"missing metadata": {
			msg:     &ClaimFungibleMsg{EscrowID: id},
			wantErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %v", err)
		})
	}
}

func TestMsgEncoding(t *testing.T) {
	lock := &LockAssetMsg{
		Metadata:   meta,
		AssetID:    settletest.SequenceID(3),
		Recipient:  settletest.NewCondition().Address(),
		Price:      coin.NewCoin(12, "ETH"),
		UnlockTime: settle.AsUnixTime(genesis.Add(time.Minute)),
	}
	raw, err := lock.Marshal()
	require.NoError(t, err)
	var gotLock LockAssetMsg
	require.NoError(t, gotLock.Unmarshal(raw))
	assert.Equal(t, lock, &gotLock)

	claim := &ClaimFungibleMsg{Metadata: meta, EscrowID: settletest.SequenceID(4)}
	raw, err = claim.Marshal()
	require.NoError(t, err)
	var gotClaim ClaimFungibleMsg
	require.NoError(t, gotClaim.Unmarshal(raw))
	assert.Equal(t, claim, &gotClaim)
}

func TestLockMessagesShareLayout(t *testing.T) {
	recipient := settletest.NewCondition().Address()
	fungible := &LockFungibleMsg{
		Metadata:   meta,
		CoinID:     settletest.SequenceID(5),
		Recipient:  recipient,
		Price:      coin.NewCoin(1, "ETH"),
		UnlockTime: settle.AsUnixTime(genesis),
	}
	raw, err := fungible.Marshal()
	require.NoError(t, err)

	asset := &LockAssetMsg{
		Metadata:   meta,
		AssetID:    settletest.SequenceID(5),
		Recipient:  recipient,
		Price:      coin.NewCoin(1, "ETH"),
		UnlockTime: settle.AsUnixTime(genesis),
	}
	assetRaw, err := asset.Marshal()
	require.NoError(t, err)
	assert.Equal(t, raw, assetRaw)

	var decoded LockAssetMsg
	require.NoError(t, decoded.Unmarshal(raw))
	assert.Equal(t, asset, &decoded)
}
