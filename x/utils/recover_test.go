package utils

import (
	"context"
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/store"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { h.Check(ctx, s, nil) })
	assert.Panics(t, func() { h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

type panicHandler struct{}

var _ settle.Handler = panicHandler{}

func (p panicHandler) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	panic("check panic")
}

func (p panicHandler) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	panic("deliver panic")
}
