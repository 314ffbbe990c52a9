package app

import (
	"reflect"

	"github.com/iov-one/settle"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []settle.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

	app.ChainDecorators(
	  utils.NewLogging(),
	  utils.NewRecovery(),
	  sigs.NewDecorator(),
	).WithHandler(
	  router,
	)
*/
func ChainDecorators(chain ...settle.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...settle.Decorator) Decorators {
	newChain := make([]settle.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	newChain = append(newChain, cutoffNil(chain)...)
	return Decorators{newChain}
}

// cutoffNil returns a copy of ds without nil values.
func cutoffNil(ds []settle.Decorator) []settle.Decorator {
	res := make([]settle.Decorator, 0, len(ds))
	for _, d := range ds {
		if d == nil {
			continue
		}
		if v := reflect.ValueOf(d); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		res = append(res, d)
	}
	return res
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h settle.Handler) settle.Handler {
	// start wrapping the handler from last decorator to first one
	// as the top of the chain is understood to be executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler.
type step struct {
	d    settle.Decorator
	next settle.Handler
}

var _ settle.Handler = step{}

func (s step) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
