package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/coin"
	"github.com/iov-one/settle/crypto"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/store/iavl"
	"github.com/iov-one/settle/x/asset"
	"github.com/iov-one/settle/x/cash"
	"github.com/iov-one/settle/x/escrow"
	"github.com/iov-one/settle/x/payout"
	"github.com/iov-one/settle/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const testChainID = "settle-ledger"

var (
	meta        = &settle.Metadata{Schema: 1}
	genesisTime = time.Date(2019, 4, 1, 10, 0, 0, 0, time.UTC)
)

type testLedger struct {
	*Ledger
	t *testing.T
}

func newTestLedger(t *testing.T, db settle.CommitKVStore, logs *bytes.Buffer) *testLedger {
	t.Helper()
	logger := log.NewNopLogger()
	if logs != nil {
		logger = log.NewTMLogger(logs)
	}
	l, err := NewLedger(Config{ChainID: testChainID}, db, NewStack(nil), logger)
	require.NoError(t, err)
	return &testLedger{Ledger: l, t: t}
}

func (l *testLedger) signedTx(signer *crypto.PrivateKey, msg settle.Msg) []byte {
	l.t.Helper()
	tx, err := NewTx(msg)
	require.NoError(l.t, err)
	if signer != nil {
		nonce, err := sigs.NextNonce(l.State(), signer.PublicKey().Address())
		require.NoError(l.t, err)
		sig, err := sigs.SignTx(signer, tx, testChainID, nonce)
		require.NoError(l.t, err)
		tx.Signatures = []*sigs.StdSignature{sig}
	}
	raw, err := tx.Marshal()
	require.NoError(l.t, err)
	return raw
}

func (l *testLedger) deliver(signer *crypto.PrivateKey, msg settle.Msg) abci.ResponseDeliverTx {
	l.t.Helper()
	return l.DeliverTx(l.signedTx(signer, msg))
}

func (l *testLedger) coins(owner settle.Address, ticker string) []settle.ObjectID {
	l.t.Helper()
	ids, objs, err := cash.NewController().ByOwner(l.State(), owner)
	require.NoError(l.t, err)
	var res []settle.ObjectID
	for i, o := range objs {
		if o.Balance.Ticker == ticker {
			res = append(res, ids[i])
		}
	}
	return res
}

func (l *testLedger) balance(owner settle.Address, ticker string) uint64 {
	l.t.Helper()
	c, err := cash.NewController().Balance(l.State(), owner, ticker)
	require.NoError(l.t, err)
	return c.Amount
}

func requireCode(t *testing.T, want *errors.Error, res abci.ResponseDeliverTx) {
	t.Helper()
	if want == nil {
		require.Equal(t, uint32(0), res.Code, res.Log)
		return
	}
	require.Equal(t, want.ABCICode(), res.Code, res.Log)
}

func testGenesis(alice, bob, collector settle.Address) *Genesis {
	state := fmt.Sprintf(`{
		"cash": [
			{"address": %q, "coins": ["1000 IOV", "500 IOV"]},
			{"address": %q, "coins": ["25 ETH"]}
		],
		"assets": [
			{"owner": %q, "kind": "nft.ticket", "uri": "https://example.com/t/1"}
		],
		"conf": {
			"payout": {"metadata": {"schema": 1}, "owner": %q}
		}
	}`, alice, bob, alice, collector)
	var opts settle.Options
	if err := json.Unmarshal([]byte(state), &opts); err != nil {
		panic(err)
	}
	return &Genesis{ChainID: testChainID, Time: genesisTime, AppState: opts}
}

func TestLedgerSettlement(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	carol := crypto.GenPrivKeyEd25519().PublicKey().Address()
	collector := crypto.GenPrivKeyEd25519().PublicKey().Address()
	aliceAddr, bobAddr := alice.PublicKey().Address(), bob.PublicKey().Address()

	db, cleanup := settletest.CommitKVStore(t)
	defer cleanup()
	var logs bytes.Buffer
	l := newTestLedger(t, db, &logs)
	require.NoError(t, l.InitChain(testGenesis(aliceAddr, bobAddr, collector)))
	assert.True(t, errors.ErrDuplicate.Is(l.InitChain(testGenesis(aliceAddr, bobAddr, collector))))

	aliceIOV := l.coins(aliceAddr, "IOV")
	require.Len(t, aliceIOV, 2)
	var big, small settle.ObjectID
	for _, id := range aliceIOV {
		obj, err := cash.NewController().Load(l.State(), id)
		require.NoError(t, err)
		if obj.Balance.Amount == 1000 {
			big = id
		} else {
			small = id
		}
	}
	bobETH := l.coins(bobAddr, "ETH")
	require.Len(t, bobETH, 1)

	require.NoError(t, l.BeginBlock(1, genesisTime.Add(time.Minute)))

	// Alice locks 1000 IOV for Bob at a price of 10 ETH, claimable in an hour.
	lock := &escrow.LockFungibleMsg{
		Metadata:   meta,
		CoinID:     big,
		Recipient:  bobAddr,
		Price:      coin.NewCoin(10, "ETH"),
		UnlockTime: settle.AsUnixTime(genesisTime.Add(time.Hour)),
	}
	check := l.CheckTx(l.signedTx(alice, lock))
	require.Equal(t, uint32(0), check.Code, check.Log)
	res := l.deliver(alice, lock)
	requireCode(t, nil, res)
	recordID := settle.ObjectID(res.Data)
	assert.Equal(t, uint64(500), l.balance(aliceAddr, "IOV"))

	claim := &escrow.ClaimFungibleMsg{Metadata: meta, EscrowID: recordID, PaymentID: bobETH[0]}

	// Unsigned transactions are rejected.
	requireCode(t, errors.ErrUnauthorized, l.deliver(nil, claim))
	// Only Bob may claim and only after the unlock time.
	requireCode(t, errors.ErrNotRecipient, l.deliver(alice, claim))
	requireCode(t, errors.ErrNotReadyYet, l.deliver(bob, claim))

	require.NoError(t, l.BeginBlock(2, genesisTime.Add(2*time.Hour)))
	res = l.deliver(bob, claim)
	requireCode(t, nil, res)
	assert.Equal(t, []byte(big), res.Data)
	assert.Equal(t, uint64(1000), l.balance(bobAddr, "IOV"))
	assert.Equal(t, uint64(15), l.balance(bobAddr, "ETH"))
	assert.Equal(t, uint64(10), l.balance(aliceAddr, "ETH"))
	requireCode(t, errors.ErrNotFound, l.deliver(bob, claim))

	// Alice pays Bob and Carol out of her 500 IOV coin.
	batch := &payout.BatchPayMsg{
		Metadata:   meta,
		PaymentID:  small,
		Recipients: []settle.Address{bobAddr, carol},
		Amounts:    []uint64{100, 200},
	}
	requireCode(t, nil, l.deliver(alice, batch))
	assert.Equal(t, uint64(199), l.balance(aliceAddr, "IOV"))
	assert.Equal(t, uint64(1100), l.balance(bobAddr, "IOV"))
	assert.Equal(t, uint64(200), l.balance(carol, "IOV"))
	assert.Equal(t, uint64(1), l.balance(collector, "IOV"))

	batch.Amounts = []uint64{1}
	requireCode(t, errors.ErrLengthMismatch, l.deliver(alice, batch))

	// Only successful transactions leave events behind.
	events, err := l.Events("")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "escrow.LockEvent<IOV>", events[0].Event.Type)
	assert.Equal(t, int64(1), events[0].Height)
	assert.Equal(t, "escrow.ClaimEvent<IOV>", events[1].Event.Type)
	assert.Equal(t, int64(2), events[1].Height)
	assert.Equal(t, uint32(0), events[1].TxIndex)
	assert.Equal(t, "payout.BatchPayoutEvent<IOV>", events[2].Event.Type)
	assert.Equal(t, uint32(1), events[2].TxIndex)

	var payoutEvt payout.BatchPayoutEvent
	require.NoError(t, payoutEvt.Unmarshal(events[2].Event.Payload))
	assert.Equal(t, aliceAddr, payoutEvt.Sender)
	assert.Equal(t, uint64(2), payoutEvt.RecipientCount)
	assert.Equal(t, coin.NewCoin(300, "IOV"), payoutEvt.TotalAmount)
	assert.Equal(t, coin.NewCoin(1, "IOV"), payoutEvt.FeeAmount)

	id, err := l.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	assert.Contains(t, logs.String(), "path=escrow/claim_fungible")

	// The committed state survives a restart, but not under another chain id.
	restarted := newTestLedger(t, db, nil)
	assert.Equal(t, uint64(1100), restarted.balance(bobAddr, "IOV"))

	// A restarted ledger resumes after the last delivered block.
	again := &payout.BatchPayMsg{
		Metadata:   meta,
		PaymentID:  small,
		Recipients: []settle.Address{carol},
		Amounts:    []uint64{10},
	}
	requireCode(t, errors.ErrState, restarted.deliver(alice, again))
	assert.Error(t, restarted.BeginBlock(2, genesisTime.Add(3*time.Hour)))
	require.NoError(t, restarted.BeginBlock(3, genesisTime.Add(3*time.Hour)))
	requireCode(t, nil, restarted.deliver(alice, again))
	events, err = restarted.Events("payout.")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(3), events[1].Height)
	assert.Equal(t, uint32(0), events[1].TxIndex)

	_, err = NewLedger(Config{ChainID: "other-chain"}, db, NewStack(nil), nil)
	assert.True(t, errors.ErrState.Is(err))
}

func TestLedgerAssetEscrow(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	aliceAddr, bobAddr := alice.PublicKey().Address(), bob.PublicKey().Address()

	l := newTestLedger(t, iavl.MockCommitStore(), nil)
	require.NoError(t, l.InitChain(testGenesis(aliceAddr, bobAddr, crypto.GenPrivKeyEd25519().PublicKey().Address())))
	require.NoError(t, l.BeginBlock(1, genesisTime))

	tickets, err := asset.NewController().ByOwner(l.State(), aliceAddr)
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	res := l.deliver(alice, &escrow.LockAssetMsg{
		Metadata:  meta,
		AssetID:   tickets[0],
		Recipient: bobAddr,
	})
	requireCode(t, nil, res)

	// Bob claims for free without a payment.
	requireCode(t, nil, l.deliver(bob, &escrow.ClaimAssetMsg{Metadata: meta, EscrowID: res.Data}))
	owned, err := asset.NewController().ByOwner(l.State(), bobAddr)
	require.NoError(t, err)
	assert.Equal(t, tickets, owned)

	events, err := l.Events("escrow.")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "escrow.ClaimEvent<nft.ticket>", events[1].Event.Type)
}

func TestLedgerRejectsUndecodableTx(t *testing.T) {
	l := newTestLedger(t, iavl.MockCommitStore(), nil)

	tx := &Tx{Path: "unknown/msg"}
	raw, err := tx.Marshal()
	require.NoError(t, err)
	requireCode(t, errors.ErrState, l.DeliverTx(raw))
	require.NoError(t, l.BeginBlock(1, genesisTime))
	requireCode(t, errors.ErrNotFound, l.DeliverTx(raw))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), l.CheckTx(raw).Code)

	assert.Error(t, l.BeginBlock(1, genesisTime))
	gen := &Genesis{ChainID: "another-chain"}
	assert.True(t, errors.ErrInput.Is(l.InitChain(gen)))
}
