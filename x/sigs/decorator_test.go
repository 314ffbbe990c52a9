package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/crypto"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := settle.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perms := []settle.Condition{priv.PublicKey().Condition()}

	tx := &StdTx{Payload: []byte("art")}
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec settle.Decorator, my settle.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec settle.Decorator, my settle.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(settle.Decorator, settle.Tx) error{check, deliver} {
		// test with no sigs
		tx.Signatures = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d", i)

		// test with one
		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// test with replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d", i)

		// test allowing none
		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Empty(t, signers.Signers)

		// test allowing, with next sequence
		tx.Signatures = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}
}

func TestDecoratorRejectsForgedSignature(t *testing.T) {
	kv := store.MemStore()
	chainID := "deco-rate"
	ctx := settle.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	signed := &StdTx{Payload: []byte("pay 1")}
	sig, err := SignTx(priv, signed, chainID, 0)
	require.NoError(t, err)

	forged := &StdTx{Payload: []byte("pay 1000"), Signatures: []*StdSignature{sig}}
	_, err = NewDecorator().Deliver(ctx, kv, forged, new(SigCheckHandler))
	assert.True(t, errors.ErrUnauthorized.Is(err))

	other := settle.WithChainID(context.Background(), "other-chain")
	_, err = NewDecorator().Deliver(other, kv, signed, new(SigCheckHandler))
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// Failed verification does not consume the nonce.
	n, err := NextNonce(kv, priv.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCheckChargesGas(t *testing.T) {
	kv := store.MemStore()
	chainID := "deco-rate"
	ctx := settle.WithChainID(context.Background(), chainID)

	a, b := crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519()
	tx := &StdTx{Payload: []byte("multi")}
	sa, err := SignTx(a, tx, chainID, 0)
	require.NoError(t, err)
	sb, err := SignTx(b, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sa, sb}

	res, err := NewDecorator().Check(ctx, kv, tx, new(SigCheckHandler))
	require.NoError(t, err)
	assert.Equal(t, int64(2*signatureVerifyCost), res.GasAllocated)
}

//---------------- helpers --------

// StdTx is a minimal signed transaction.
type StdTx struct {
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ settle.Tx = (*StdTx)(nil)

func (tx *StdTx) GetMsg() (settle.Msg, error)    { return nil, nil }
func (tx *StdTx) Marshal() ([]byte, error)       { return tx.Payload, nil }
func (tx *StdTx) Unmarshal(raw []byte) error     { tx.Payload = raw; return nil }
func (tx *StdTx) GetSignBytes() ([]byte, error)  { return tx.Payload, nil }
func (tx *StdTx) GetSignatures() []*StdSignature { return tx.Signatures }

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []settle.Condition
}

var _ settle.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &settle.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &settle.DeliverResult{}, nil
}
