package settle

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/codec"
)

type (
	metadataPB Metadata
	eventPB    Event
)

func (m *metadataPB) Reset()         { *m = metadataPB{} }
func (m *metadataPB) String() string { return proto.CompactTextString(m) }
func (*metadataPB) ProtoMessage()    {}

func (m *Metadata) Marshal() ([]byte, error)   { return codec.Marshal((*metadataPB)(m)) }
func (m *Metadata) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*metadataPB)(m)) }

func (m *eventPB) Reset()         { *m = eventPB{} }
func (m *eventPB) String() string { return proto.CompactTextString(m) }
func (*eventPB) ProtoMessage()    {}

func (e *Event) Marshal() ([]byte, error)   { return codec.Marshal((*eventPB)(e)) }
func (e *Event) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*eventPB)(e)) }
