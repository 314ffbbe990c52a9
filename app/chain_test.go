package app

import (
	"context"
	"testing"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/settletest"
	"github.com/iov-one/settle/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	d1 := &settletest.Decorator{}
	d2 := &settletest.Decorator{}
	h := &settletest.Handler{}

	var nilDecorator *settletest.Decorator
	stack := ChainDecorators(
		d1,
		utils.NewLogging(),
		nilDecorator,
		utils.NewRecovery(),
	).Chain(d2).WithHandler(h)

	ctx := settle.WithHeight(context.Background(), 4)
	tx := &settletest.Tx{Msg: &settletest.Msg{RoutePath: "test/msg"}}
	_, err := stack.Check(ctx, nil, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, tx)
	require.NoError(t, err)

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	d2.DeliverErr = errors.ErrUnauthorized.New("stop")
	_, err = stack.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 3, d1.CallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	d := &settletest.Decorator{}
	stack := ChainDecorators(d, utils.NewRecovery()).
		WithHandler(settletest.PanicHandler{Value: "boom"})

	_, err := stack.Check(context.Background(), nil, nil)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(context.Background(), nil, nil)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 2, d.CallCount())
}
