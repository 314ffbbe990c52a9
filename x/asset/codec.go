package asset

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/codec"
)

type (
	assetPB       Asset
	transferMsgPB TransferMsg
)

func (m *assetPB) Reset()         { *m = assetPB{} }
func (m *assetPB) String() string { return proto.CompactTextString(m) }
func (*assetPB) ProtoMessage()    {}

func (a *Asset) Marshal() ([]byte, error)   { return codec.Marshal((*assetPB)(a)) }
func (a *Asset) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*assetPB)(a)) }

func (m *transferMsgPB) Reset()         { *m = transferMsgPB{} }
func (m *transferMsgPB) String() string { return proto.CompactTextString(m) }
func (*transferMsgPB) ProtoMessage()    {}

func (m *TransferMsg) Marshal() ([]byte, error)   { return codec.Marshal((*transferMsgPB)(m)) }
func (m *TransferMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*transferMsgPB)(m)) }
