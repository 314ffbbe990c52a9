package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/crypto"
	"github.com/iov-one/settle/errors"
)

// VerifyTxSignatures checks all the signatures on the tx.
//
// returns list of signer conditions (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(store settle.KVStore, tx SignedTx, chainID string) ([]settle.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()

	signers := make([]settle.Condition, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(store, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against signbytes,
// check chain and updates state in the store
func VerifySignature(db settle.KVStore, sig *StdSignature, signBytes []byte, chainID string) (settle.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	bucket := NewBucket()
	user, err := bucket.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing

	chainID      | 0x00 | signBytes              | nonce
	ascii string | sep  | serialized transaction | int64 (bigendian)

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !settle.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	output := make([]byte, 0, len(chainID)+1+len(signBytes)+8)
	output = append(output, chainID...)
	output = append(output, 0)
	output = append(output, signBytes...)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	output = append(output, nonce[:]...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// BuildSignBytesTx calculates the sign bytes given a tx
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature for the given tx
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(signBytes)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}
