package payout

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/codec"
)

type (
	configurationPB    Configuration
	batchPayMsgPB      BatchPayMsg
	batchPayoutEventPB BatchPayoutEvent
)

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

func (c *Configuration) Marshal() ([]byte, error) { return codec.Marshal((*configurationPB)(c)) }
func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*configurationPB)(c))
}

func (m *batchPayMsgPB) Reset()         { *m = batchPayMsgPB{} }
func (m *batchPayMsgPB) String() string { return proto.CompactTextString(m) }
func (*batchPayMsgPB) ProtoMessage()    {}

func (m *BatchPayMsg) Marshal() ([]byte, error)   { return codec.Marshal((*batchPayMsgPB)(m)) }
func (m *BatchPayMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*batchPayMsgPB)(m)) }

func (m *batchPayoutEventPB) Reset()         { *m = batchPayoutEventPB{} }
func (m *batchPayoutEventPB) String() string { return proto.CompactTextString(m) }
func (*batchPayoutEventPB) ProtoMessage()    {}

func (e *BatchPayoutEvent) Marshal() ([]byte, error) { return codec.Marshal((*batchPayoutEventPB)(e)) }
func (e *BatchPayoutEvent) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*batchPayoutEventPB)(e))
}
