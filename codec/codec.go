/*
Package codec serializes models, messages and events into the protobuf wire
format using gogo protobuf.

Persistent types declare their fields with protobuf struct tags, the same
tags protoc-gen-gogo writes into generated code. Because gogo protobuf calls
the Marshal method of any type that has one, each type is encoded through a
method-free mirror declared with the same underlying struct:

	type coinPB Coin

	func (m *coinPB) Reset()         { *m = coinPB{} }
	func (m *coinPB) String() string { return proto.CompactTextString(m) }
	func (*coinPB) ProtoMessage()    {}

	func (c *Coin) Marshal() ([]byte, error)   { return codec.Marshal((*coinPB)(c)) }
	func (c *Coin) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*coinPB)(c)) }

Zero scalar values are omitted from the output and fields are always written
in field number order, so encoding is deterministic.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/errors"
)

// Marshal serializes a message with protobuf tagged fields.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// Unmarshal resets given message and decodes raw into it. Unknown fields are
// dropped.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
