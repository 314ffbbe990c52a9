package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/codec"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x/sigs"
)

// Tx is the transaction envelope. Payload is the serialized message
// registered for Path.
type Tx struct {
	Signatures []*sigs.StdSignature
	Path       string
	Payload    []byte

	msg settle.Msg
}

// envelope is the wire form of Tx. The decoded message is never serialized.
type envelope struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Path       string               `protobuf:"bytes,2,opt,name=path,proto3" json:"path,omitempty"`
	Payload    []byte               `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *envelope) Reset()         { *m = envelope{} }
func (m *envelope) String() string { return proto.CompactTextString(m) }
func (*envelope) ProtoMessage()    {}

var (
	_ settle.Tx     = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg settle.Msg) (*Tx, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal msg")
	}
	return &Tx{Path: msg.Path(), Payload: raw, msg: msg}, nil
}

// GetMsg returns the message of a transaction created with NewTx or decoded
// by a Router.
func (tx *Tx) GetMsg() (settle.Msg, error) {
	if tx.msg == nil {
		return nil, errors.Wrapf(errors.ErrMsg, "message %q not decoded", tx.Path)
	}
	return tx.msg, nil
}

// GetSignBytes returns path and payload separated by a zero byte.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	if tx.Path == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "path")
	}
	b := make([]byte, 0, len(tx.Path)+1+len(tx.Payload))
	b = append(b, tx.Path...)
	b = append(b, 0)
	return append(b, tx.Payload...), nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

func (tx *Tx) Marshal() ([]byte, error) {
	return codec.Marshal(&envelope{Signatures: tx.Signatures, Path: tx.Path, Payload: tx.Payload})
}

// Unmarshal decodes the envelope only. Use Router.Decode to also decode the
// message.
func (tx *Tx) Unmarshal(raw []byte) error {
	var env envelope
	if err := codec.Unmarshal(raw, &env); err != nil {
		return err
	}
	*tx = Tx{Signatures: env.Signatures, Path: env.Path, Payload: env.Payload}
	return nil
}
