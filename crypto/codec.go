package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/codec"
)

type (
	publicKeyPB PublicKey
)

func (m *publicKeyPB) Reset()         { *m = publicKeyPB{} }
func (m *publicKeyPB) String() string { return proto.CompactTextString(m) }
func (*publicKeyPB) ProtoMessage()    {}

func (p *PublicKey) Marshal() ([]byte, error)   { return codec.Marshal((*publicKeyPB)(p)) }
func (p *PublicKey) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*publicKeyPB)(p)) }
