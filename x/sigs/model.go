package sigs

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/crypto"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// UserData is the persistent state of a signer: the public key and the
// nonce expected in the next signature.
type UserData struct {
	Metadata *settle.Metadata  `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Pubkey   *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	if err := u.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if u.Sequence > 0 && u.Pubkey == nil {
		return errors.Wrap(ErrInvalidSequence, "needs pubkey")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// The greatest nonce value a javascript client can represent is
	//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket stores UserData under the address of its public key.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &UserData{}),
	}
}

// GetOrCreate loads the user of given public key, or initializes a new one
// with sequence zero if none was stored yet.
func (b Bucket) GetOrCreate(db settle.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{
			Metadata: &settle.Metadata{Schema: 1},
			Pubkey:   pubkey,
		}, nil
	default:
		return nil, err
	}
}
