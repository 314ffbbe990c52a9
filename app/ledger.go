package app

import (
	"context"
	"crypto/sha256"
	"sort"
	"sync"
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger executes transactions against a commit store, one at a time.
type Ledger struct {
	mu     sync.Mutex
	conf   Config
	store  *CommitStore
	stack  Stack
	events EventLog
	logger log.Logger

	initialized bool
	inBlock     bool
	height      int64
	blockTime   time.Time
	txIndex     uint32
}

// NewLedger loads the latest state of db. A ledger that finds a chain id in
// the store that differs from the configured one refuses to start.
func NewLedger(conf Config, db settle.CommitKVStore, stack Stack, logger log.Logger) (*Ledger, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	cs, err := NewCommitStore(db)
	if err != nil {
		return nil, err
	}
	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	if chainID != "" && chainID != conf.ChainID {
		return nil, errors.Wrapf(errors.ErrState, "store belongs to chain %q", chainID)
	}
	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	height, err := loadHeight(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = logger.With("module", "ledger")
	logger.Info("ledger loaded", "version", settle.Version(), "chain_id", conf.ChainID, "commit", info.Version, "height", height)
	return &Ledger{
		conf:        conf,
		store:       cs,
		stack:       stack,
		logger:      logger,
		initialized: chainID != "",
		height:      height,
	}, nil
}

// InitChain saves the chain id and runs every extension initializer with
// the genesis application state. It can be called once per chain.
func (l *Ledger) InitChain(gen *Genesis) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.initialized {
		return errors.Wrap(errors.ErrDuplicate, "chain already initialized")
	}
	if gen.ChainID != l.conf.ChainID {
		return errors.Wrapf(errors.ErrInput, "genesis chain id %q, configured %q", gen.ChainID, l.conf.ChainID)
	}

	cache := l.store.DeliverStore().CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	ctx := l.context(settle.WithTxHash(settle.WithBlockTime(l.baseContext(), gen.Time), genesisHash(gen)))
	if err := l.stack.Init.FromGenesis(ctx, gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := l.store.SyncCheck(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	l.initialized = true
	l.blockTime = gen.Time
	l.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// genesisHash seeds object ids created at genesis.
func genesisHash(gen *Genesis) []byte {
	keys := make([]string, 0, len(gen.AppState))
	for k := range gen.AppState {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(gen.ChainID))
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write(gen.AppState[k])
	}
	return h.Sum(nil)
}

// BeginBlock starts a new block. Every transaction delivered until the next
// commit executes at given height and block time. DeliverTx is rejected
// outside of a block.
func (l *Ledger) BeginBlock(height int64, blockTime time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if height <= l.height {
		return errors.Wrapf(errors.ErrState, "height %d not above %d", height, l.height)
	}
	if err := saveHeight(l.store.DeliverStore(), height); err != nil {
		return err
	}
	l.height = height
	l.blockTime = blockTime
	l.txIndex = 0
	l.inBlock = true
	return nil
}

// CheckTx validates a transaction against the check state. Effects of
// successful checks accumulate until the next commit.
func (l *Ledger) CheckTx(raw []byte) abci.ResponseCheckTx {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.stack.Router.Decode(raw)
	if err != nil {
		return settle.CheckTxError(err, l.conf.Debug)
	}
	ctx := settle.WithLogInfo(l.txContext(raw), "call", "check_tx", "path", tx.Path)

	cache := l.store.CheckStore().CacheWrap()
	res, err := l.stack.Handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return settle.CheckTxError(err, l.conf.Debug)
	}
	if err := cache.Write(); err != nil {
		return settle.CheckTxError(errors.Wrap(errors.ErrDatabase, err.Error()), l.conf.Debug)
	}
	return res.ToABCI()
}

// DeliverTx executes a transaction. The transaction and the events it
// emits are written together or not at all.
func (l *Ledger) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.inBlock {
		return settle.DeliverTxError(errors.Wrap(errors.ErrState, "no block started"), l.conf.Debug)
	}
	tx, err := l.stack.Router.Decode(raw)
	if err != nil {
		return settle.DeliverTxError(err, l.conf.Debug)
	}
	ctx := settle.WithLogInfo(l.txContext(raw), "call", "deliver_tx", "path", tx.Path)

	cache := l.store.DeliverStore().CacheWrap()
	res, err := l.deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return settle.DeliverTxError(err, l.conf.Debug)
	}
	if err := cache.Write(); err != nil {
		return settle.DeliverTxError(errors.Wrap(errors.ErrDatabase, err.Error()), l.conf.Debug)
	}
	l.txIndex++
	return res.ToABCI()
}

func (l *Ledger) deliver(ctx settle.Context, db settle.KVCacheWrap, tx *Tx) (*settle.DeliverResult, error) {
	res, err := l.stack.Handler.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := l.events.Append(db, l.height, l.txIndex, res.Events); err != nil {
		return nil, errors.Wrap(err, "cannot record events")
	}
	return res, nil
}

// Commit persists all delivered transactions.
func (l *Ledger) Commit() (settle.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := l.store.Commit()
	if err != nil {
		return id, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	l.inBlock = false
	l.logger.Debug("committed", "height", l.height, "version", id.Version, "hash", id.Hash)
	return id, nil
}

// Events returns all events in the delivered state whose type starts with
// given prefix.
func (l *Ledger) Events(typePrefix string) ([]*LoggedEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events.List(l.store.DeliverStore(), typePrefix)
}

// State returns the delivered state for queries. It must not be used
// concurrently with DeliverTx.
func (l *Ledger) State() settle.ReadOnlyKVStore {
	return l.store.DeliverStore()
}

func (l *Ledger) baseContext() settle.Context {
	ctx := settle.WithChainID(context.Background(), l.conf.ChainID)
	return settle.WithLogger(ctx, l.logger)
}

func (l *Ledger) context(ctx settle.Context) settle.Context {
	return settle.WithHeight(ctx, l.height)
}

func (l *Ledger) txContext(raw []byte) settle.Context {
	hash := sha256.Sum256(raw)
	ctx := settle.WithBlockTime(l.baseContext(), l.blockTime)
	ctx = settle.WithTxHash(ctx, hash[:])
	return settle.WithLogInfo(l.context(ctx), "height", l.height)
}
