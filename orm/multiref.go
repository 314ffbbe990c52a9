package orm

import (
	"bytes"

	"github.com/iov-one/settle/errors"
)

// MultiRef is the stored value of a secondary index entry: the ordered set
// of primary keys indexed under the same value.
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

// Add inserts this reference in the multiref, sorted by order.
// Returns an error if already there
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove removes this reference from the multiref.
// Returns an error if not there
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// returns (index, found) where found is true if
// the ref was in the set, index is where it is
// (or where it should be)
func (m *MultiRef) findRef(ref []byte) (int, bool) {
	for i, r := range m.Refs {
		switch bytes.Compare(ref, r) {
		case -1:
			return i, false
		case 0:
			return i, true
		}
	}
	return len(m.Refs), false
}
