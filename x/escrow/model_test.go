package escrow

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEscrow() *Escrow {
	id := settletest.SequenceID(1)
	return &Escrow{
		Metadata:  meta,
		Creator:   settletest.NewCondition().Address(),
		Recipient: settletest.NewCondition().Address(),
		Kind:      Fungible,
		HeldID:    settletest.SequenceID(2),
		Amount:    coin.NewCoin(10, "IOV"),
		Address:   Condition(id).Address(),
	}
}

func TestEscrowValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Escrow)
		wantErr *errors.Error
	}{
		"fungible": {
			mutate: func(*Escrow) {},
		},
		"empty amount": {
			mutate: func(e *Escrow) { e.Amount = coin.NewCoin(0, "IOV") },
		},
		"unique": {
			mutate: func(e *Escrow) {
				e.Kind = Unique
				e.Amount = coin.Coin{}
				e.AssetKind = "nft.ticket"
			},
		},
		"unique without asset kind": {
			mutate: func(e *Escrow) {
				e.Kind = Unique
				e.AssetKind = ""
			},
			wantErr: errors.ErrInput,
		},
		"unknown kind": {
			mutate:  func(e *Escrow) { e.Kind = 9 },
			wantErr: errors.ErrState,
		},
		"missing address": {
			mutate:  func(e *Escrow) { e.Address = nil },
			wantErr: errors.ErrInput,
		},
		"missing metadata": {
			mutate:  func(e *Escrow) { e.Metadata = nil },
			wantErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := validEscrow()
			tc.mutate(e)
			err := e.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %v", err)
		})
	}
}

func TestEscrowEncoding(t *testing.T) {
	e := validEscrow()
	e.Price = coin.NewCoin(3, "ETH")
	e.UnlockTime = settle.UnixTime(1554379200000)

	raw, err := e.Marshal()
	require.NoError(t, err)
	var got Escrow
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, e, &got)
	assert.Equal(t, "IOV", got.AssetType())
}

func TestEscrowWireFormat(t *testing.T) {
	e := validEscrow()
	e.Price = coin.NewCoin(3, "ETH")

	raw, err := e.Marshal()
	require.NoError(t, err)
	want, err := proto.Marshal((*escrowPB)(e))
	require.NoError(t, err)
	assert.Equal(t, want, raw)

	// field 1 is the metadata message holding schema 1
	assert.Equal(t, []byte{0x0a, 0x02, 0x08, 0x01}, raw[:4])

	var got Escrow
	require.NoError(t, proto.Unmarshal(raw, (*escrowPB)(&got)))
	assert.Equal(t, e, &got)
}

func TestEscrowConditionIsUnique(t *testing.T) {
	a := Condition(settletest.SequenceID(1)).Address()
	b := Condition(settletest.SequenceID(2)).Address()
	assert.NotEqual(t, a, b)
	assert.NoError(t, a.Validate())
}
