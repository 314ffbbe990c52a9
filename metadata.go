package settle

import "github.com/iov-one/settle/errors"

// Metadata is the header carried by every message and every model. It
// describes the schema version the value was serialized with.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// Validate returns an error if the metadata is missing or declares an
// unknown schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
