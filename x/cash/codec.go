package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/codec"
)

type (
	coinPB     Coin
	sendMsgPB  SendMsg
	splitMsgPB SplitMsg
	mergeMsgPB MergeMsg
)

func (m *coinPB) Reset()         { *m = coinPB{} }
func (m *coinPB) String() string { return proto.CompactTextString(m) }
func (*coinPB) ProtoMessage()    {}

func (c *Coin) Marshal() ([]byte, error)   { return codec.Marshal((*coinPB)(c)) }
func (c *Coin) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*coinPB)(c)) }

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}

func (m *SendMsg) Marshal() ([]byte, error)   { return codec.Marshal((*sendMsgPB)(m)) }
func (m *SendMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*sendMsgPB)(m)) }

func (m *splitMsgPB) Reset()         { *m = splitMsgPB{} }
func (m *splitMsgPB) String() string { return proto.CompactTextString(m) }
func (*splitMsgPB) ProtoMessage()    {}

func (m *SplitMsg) Marshal() ([]byte, error)   { return codec.Marshal((*splitMsgPB)(m)) }
func (m *SplitMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*splitMsgPB)(m)) }

func (m *mergeMsgPB) Reset()         { *m = mergeMsgPB{} }
func (m *mergeMsgPB) String() string { return proto.CompactTextString(m) }
func (*mergeMsgPB) ProtoMessage()    {}

func (m *MergeMsg) Marshal() ([]byte, error)   { return codec.Marshal((*mergeMsgPB)(m)) }
func (m *MergeMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*mergeMsgPB)(m)) }
