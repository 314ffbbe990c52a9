package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/codec"
)

type (
	stdSignaturePB StdSignature
	userDataPB     UserData
)

func (m *stdSignaturePB) Reset()         { *m = stdSignaturePB{} }
func (m *stdSignaturePB) String() string { return proto.CompactTextString(m) }
func (*stdSignaturePB) ProtoMessage()    {}

func (s *StdSignature) Marshal() ([]byte, error)   { return codec.Marshal((*stdSignaturePB)(s)) }
func (s *StdSignature) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*stdSignaturePB)(s)) }

func (m *userDataPB) Reset()         { *m = userDataPB{} }
func (m *userDataPB) String() string { return proto.CompactTextString(m) }
func (*userDataPB) ProtoMessage()    {}

func (u *UserData) Marshal() ([]byte, error)   { return codec.Marshal((*userDataPB)(u)) }
func (u *UserData) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*userDataPB)(u)) }
