package settletest

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/settle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()
	auth := &Auth{Signer: a, Signers: []settle.Condition{b}}
	ctx := context.Background()

	assert.Equal(t, []settle.Condition{a, b}, auth.GetConditions(ctx))
	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, c.Address()))

	cauth := &CtxAuth{Key: "auth"}
	assert.Empty(t, cauth.GetConditions(ctx))
	ctx = cauth.SetConditions(ctx, c)
	assert.True(t, cauth.HasAddress(ctx, c.Address()))
	assert.False(t, cauth.HasAddress(ctx, a.Address()))
}

func TestContextHasUniqueTxHash(t *testing.T) {
	now := time.Now()
	id1, err := settle.NewObjectID(Context(now))
	require.NoError(t, err)
	id2, err := settle.NewObjectID(Context(now))
	require.NoError(t, err)
	assert.False(t, id1.Equals(id2))

	assert.NoError(t, SequenceID(1).Validate())
	assert.False(t, SequenceID(1).Equals(SequenceID(2)))
}
