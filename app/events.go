package app

import (
	"encoding/binary"
	"strings"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const eventPrefix = "evt:"

// EventLog is the append only log of events emitted by successful
// transactions. Records are ordered by height, transaction index within the
// block and position within the transaction.
type EventLog struct{}

// LoggedEvent is an event together with its position in the log.
type LoggedEvent struct {
	Height  int64
	TxIndex uint32
	Index   uint32
	Event   *settle.Event
}

func eventKey(height int64, txIndex, n uint32) []byte {
	k := make([]byte, len(eventPrefix)+16)
	copy(k, eventPrefix)
	binary.BigEndian.PutUint64(k[len(eventPrefix):], uint64(height))
	binary.BigEndian.PutUint32(k[len(eventPrefix)+8:], txIndex)
	binary.BigEndian.PutUint32(k[len(eventPrefix)+12:], n)
	return k
}

// Append records all events of one transaction. Events are never
// overwritten.
func (EventLog) Append(db settle.KVStore, height int64, txIndex uint32, events []*settle.Event) error {
	for n, e := range events {
		key := eventKey(height, txIndex, uint32(n))
		if ok, err := db.Has(key); err != nil {
			return errors.Wrap(err, "event log")
		} else if ok {
			return errors.Wrapf(errors.ErrDuplicate, "event %d of tx %d at height %d", n, txIndex, height)
		}
		raw, err := e.Marshal()
		if err != nil {
			return errors.Wrap(err, "marshal event")
		}
		if err := db.Set(key, raw); err != nil {
			return errors.Wrap(err, "event log")
		}
	}
	return nil
}

// List returns in log order all events whose type starts with typePrefix.
// An empty prefix matches every event.
func (EventLog) List(db settle.ReadOnlyKVStore, typePrefix string) ([]*LoggedEvent, error) {
	start := []byte(eventPrefix)
	end := []byte(eventPrefix)
	end[len(end)-1]++

	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "event log")
	}
	defer it.Close()

	var res []*LoggedEvent
	for ; it.Valid(); err = it.Next() {
		key := it.Key()[len(eventPrefix):]
		if len(key) != 16 {
			return nil, errors.Wrapf(errors.ErrState, "malformed event key %X", it.Key())
		}
		var e settle.Event
		if err := e.Unmarshal(it.Value()); err != nil {
			return nil, errors.Wrap(err, "unmarshal event")
		}
		if !strings.HasPrefix(e.Type, typePrefix) {
			continue
		}
		res = append(res, &LoggedEvent{
			Height:  int64(binary.BigEndian.Uint64(key)),
			TxIndex: binary.BigEndian.Uint32(key[8:]),
			Index:   binary.BigEndian.Uint32(key[12:]),
			Event:   &e,
		})
	}
	if err != nil {
		return nil, errors.Wrap(err, "event log")
	}
	return res, nil
}
