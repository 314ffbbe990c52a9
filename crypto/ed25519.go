/*
Package crypto provides the key types used to sign and authenticate
transactions. Only ed25519 keys are supported.
*/
package crypto

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key.
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a settle condition
func (p *PublicKey) Condition() settle.Condition {
	return settle.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the condition of this key.
func (p *PublicKey) Address() settle.Address {
	return p.Condition().Address()
}

// Validate checks the key length.
func (p *PublicKey) Validate() error {
	if p == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "ed25519 public key must be %d bytes", ed25519.PublicKeySize)
	}
	return nil
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
