package app

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path of
// its message. It also knows how to decode every registered message.
type Router struct {
	handlers map[string]settle.Handler
	msgs     map[string]reflect.Type
}

var (
	_ settle.Registry = (*Router)(nil)
	_ settle.Handler  = (*Router)(nil)
)

// NewRouter returns a router without any routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]settle.Handler),
		msgs:     make(map[string]reflect.Type),
	}
}

// Handle registers h for the path of msg. Registering an invalid or an
// already used path panics.
func (r *Router) Handle(msg settle.Msg, h settle.Handler) {
	path := msg.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid message path %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("message path %q already registered", path))
	}
	t := reflect.TypeOf(msg)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("message %T must be a pointer", msg))
	}
	r.handlers[path] = h
	r.msgs[path] = t.Elem()
}

func (r *Router) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (r *Router) handler(tx settle.Tx) (settle.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h, ok := r.handlers[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h, nil
}

// Decode parses a transaction envelope together with its message.
func (r *Router) Decode(raw []byte) (*Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "envelope")
	}
	t, ok := r.msgs[tx.Path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no message for path %q", tx.Path)
	}
	msg := reflect.New(t).Interface().(settle.Msg)
	if err := msg.Unmarshal(tx.Payload); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "payload of %q: %s", tx.Path, err)
	}
	tx.msg = msg
	return &tx, nil
}
