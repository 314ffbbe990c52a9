package orm

import (
	"testing"

	"github.com/iov-one/settle/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiRef(t *testing.T) {
	var m MultiRef
	require.NoError(t, m.Add([]byte("b")))
	require.NoError(t, m.Add([]byte("a")))
	require.NoError(t, m.Add([]byte("c")))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.Refs)

	err := m.Add([]byte("a"))
	assert.True(t, errors.ErrDuplicate.Is(err))

	require.NoError(t, m.Remove([]byte("b")))
	err = m.Remove([]byte("b"))
	assert.True(t, errors.ErrNotFound.Is(err))

	raw, err := m.Marshal()
	require.NoError(t, err)
	var got MultiRef
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, m.Refs, got.Refs)
}
