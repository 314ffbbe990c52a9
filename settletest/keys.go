package settletest

import (
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/crypto"
)

func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() settle.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns a deterministic 20 byte object id.
func SequenceID(n uint64) settle.ObjectID {
	id := make(settle.ObjectID, 20)
	for i := 19; i >= 12 && n > 0; i-- {
		id[i] = byte(n)
		n >>= 8
	}
	return id
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) settle.Address {
	t.Helper()

	addr, err := settle.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
