package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/codec"
)

// Both lock messages share one field layout, and so do both claim messages.
type (
	escrowPB           Escrow
	lockFungibleMsgPB  LockFungibleMsg
	lockAssetMsgPB     LockAssetMsg
	claimFungibleMsgPB ClaimFungibleMsg
	claimAssetMsgPB    ClaimAssetMsg
	lockEventPB        LockEvent
	claimEventPB       ClaimEvent
)

func (m *escrowPB) Reset()         { *m = escrowPB{} }
func (m *escrowPB) String() string { return proto.CompactTextString(m) }
func (*escrowPB) ProtoMessage()    {}

func (e *Escrow) Marshal() ([]byte, error)   { return codec.Marshal((*escrowPB)(e)) }
func (e *Escrow) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*escrowPB)(e)) }

func (m *lockFungibleMsgPB) Reset()         { *m = lockFungibleMsgPB{} }
func (m *lockFungibleMsgPB) String() string { return proto.CompactTextString(m) }
func (*lockFungibleMsgPB) ProtoMessage()    {}

func (m *LockFungibleMsg) Marshal() ([]byte, error) { return codec.Marshal((*lockFungibleMsgPB)(m)) }
func (m *LockFungibleMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*lockFungibleMsgPB)(m))
}

func (m *lockAssetMsgPB) Reset()         { *m = lockAssetMsgPB{} }
func (m *lockAssetMsgPB) String() string { return proto.CompactTextString(m) }
func (*lockAssetMsgPB) ProtoMessage()    {}

func (m *LockAssetMsg) Marshal() ([]byte, error)   { return codec.Marshal((*lockAssetMsgPB)(m)) }
func (m *LockAssetMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*lockAssetMsgPB)(m)) }

func (m *claimFungibleMsgPB) Reset()         { *m = claimFungibleMsgPB{} }
func (m *claimFungibleMsgPB) String() string { return proto.CompactTextString(m) }
func (*claimFungibleMsgPB) ProtoMessage()    {}

func (m *ClaimFungibleMsg) Marshal() ([]byte, error) { return codec.Marshal((*claimFungibleMsgPB)(m)) }
func (m *ClaimFungibleMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*claimFungibleMsgPB)(m))
}

func (m *claimAssetMsgPB) Reset()         { *m = claimAssetMsgPB{} }
func (m *claimAssetMsgPB) String() string { return proto.CompactTextString(m) }
func (*claimAssetMsgPB) ProtoMessage()    {}

func (m *ClaimAssetMsg) Marshal() ([]byte, error) { return codec.Marshal((*claimAssetMsgPB)(m)) }
func (m *ClaimAssetMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*claimAssetMsgPB)(m))
}

func (m *lockEventPB) Reset()         { *m = lockEventPB{} }
func (m *lockEventPB) String() string { return proto.CompactTextString(m) }
func (*lockEventPB) ProtoMessage()    {}

func (e *LockEvent) Marshal() ([]byte, error)   { return codec.Marshal((*lockEventPB)(e)) }
func (e *LockEvent) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*lockEventPB)(e)) }

func (m *claimEventPB) Reset()         { *m = claimEventPB{} }
func (m *claimEventPB) String() string { return proto.CompactTextString(m) }
func (*claimEventPB) ProtoMessage()    {}

func (e *ClaimEvent) Marshal() ([]byte, error)   { return codec.Marshal((*claimEventPB)(e)) }
func (e *ClaimEvent) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*claimEventPB)(e)) }
