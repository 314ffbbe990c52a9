package coin

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/codec"
)

type (
	coinPB Coin
)

func (m *coinPB) Reset()         { *m = coinPB{} }
func (m *coinPB) String() string { return proto.CompactTextString(m) }
func (*coinPB) ProtoMessage()    {}

func (c *Coin) Marshal() ([]byte, error)   { return codec.Marshal((*coinPB)(c)) }
func (c *Coin) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*coinPB)(c)) }
