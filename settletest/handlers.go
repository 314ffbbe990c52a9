package settletest

import "github.com/iov-one/settle"

// Handler is a mock implementation of the settle.Handler interface.
// Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult settle.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult settle.DeliverResult
	DeliverErr    error
}

var _ settle.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// PanicHandler panics with given value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ settle.Handler = PanicHandler{}

func (h PanicHandler) Check(settle.Context, settle.KVStore, settle.Tx) (*settle.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(settle.Context, settle.KVStore, settle.Tx) (*settle.DeliverResult, error) {
	panic(h.Value)
}
