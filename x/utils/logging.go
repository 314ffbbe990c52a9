package utils

import (
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ settle.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Checker) (*settle.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Deliverer) (*settle.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx settle.Context, tx settle.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := settle.GetLogger(ctx).With(
		"path", settle.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		code, _ := errors.ABCIInfo(err, false)
		logger.Error(msg, "err", err, "code", code)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
