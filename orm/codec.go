package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/codec"
)

type (
	multiRefPB MultiRef
)

func (m *multiRefPB) Reset()         { *m = multiRefPB{} }
func (m *multiRefPB) String() string { return proto.CompactTextString(m) }
func (*multiRefPB) ProtoMessage()    {}

func (m *MultiRef) Marshal() ([]byte, error)   { return codec.Marshal((*multiRefPB)(m)) }
func (m *MultiRef) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*multiRefPB)(m)) }
