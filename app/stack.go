package app

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/x"
	"github.com/iov-one/settle/x/asset"
	"github.com/iov-one/settle/x/cash"
	"github.com/iov-one/settle/x/escrow"
	"github.com/iov-one/settle/x/payout"
	"github.com/iov-one/settle/x/sigs"
	"github.com/iov-one/settle/x/utils"
)

// Stack is everything a ledger executes: the router decoding and
// dispatching messages, the decorated handler and the genesis initializer.
type Stack struct {
	Router  *Router
	Handler settle.Handler
	Init    settle.Initializer
}

// NewStack registers all extensions behind signature verification. Metrics
// are optional.
func NewStack(metrics *utils.Metrics) Stack {
	auth := x.ChainAuth(sigs.Authenticate{})
	cashCtrl := cash.NewController()
	assetCtrl := asset.NewController()

	r := NewRouter()
	cash.RegisterRoutes(r, auth, cashCtrl)
	asset.RegisterRoutes(r, auth, assetCtrl)
	escrow.RegisterRoutes(r, auth, cashCtrl, assetCtrl)
	payout.RegisterRoutes(r, auth, cashCtrl, payout.StoreConfig{})

	h := ChainDecorators(
		utils.NewLogging(),
		metrics,
		utils.NewRecovery(),
		sigs.NewDecorator(),
	).WithHandler(r)

	return Stack{
		Router:  r,
		Handler: h,
		Init: ChainInitializers(
			cash.Initializer{},
			asset.Initializer{},
			payout.Initializer{},
		),
	}
}
