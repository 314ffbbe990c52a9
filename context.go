package settle

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/iov-one/settle/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extract/set info on the context.
type Context = context.Context

type contextKey int // local to the settle package

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyBlockTime
	contextKeyLogger
	contextKeyObjectIDs
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight sets the block height for the context.
// May panic if height is already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Block height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height. If the height was not set, it
// returns false.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id for the Context.
// Panics if the chain id is not valid or already set.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("Invalid chain ID: %q", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id. Empty string when not set.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}

// WithBlockTime sets the time of the block that is processed.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyBlockTime, t)
}

// BlockTime returns the time of the block that is processed. It fails when
// the time was not set, which is always a setup error.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in context")
	}
	return t, nil
}

// BlockUnixTime returns the block time with millisecond precision.
func BlockUnixTime(ctx Context) (UnixTime, error) {
	t, err := BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return AsUnixTime(t), nil
}

// WithLogger sets the logger for this Context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
