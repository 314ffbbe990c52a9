package orm

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type under a prefixed subspace of
// the database, keyed by primary key, and keeps its secondary indexes up to
// date.
type ModelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]*index
}

// NewModelBucket returns a bucket storing models of the same type as given
// prototype. Panics on an invalid name.
func NewModelBucket(name string, proto Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	t := reflect.TypeOf(proto)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model %T must be a pointer", proto))
	}
	return ModelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   t.Elem(),
		indexes: map[string]*index{},
	}
}

// WithIndex returns a copy of this bucket with given index,
// panics if it an index with that name is already registered.
//
// Designed to be chained.
func (b ModelBucket) WithIndex(name string, indexer Indexer, unique bool) ModelBucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %s registered twice", name))
	}
	indexes := make(map[string]*index, len(b.indexes)+1)
	for n, i := range b.indexes {
		indexes[n] = i
	}
	indexes[name] = newIndex(b.name, name, indexer, unique)
	b.indexes = indexes
	return b
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
func (b ModelBucket) DBKey(key []byte) []byte {
	out := make([]byte, len(b.prefix)+len(key))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], key)
	return out
}

// One query the database for a single model instance. Lookup is done by the
// primary key. Result is loaded into given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
// If given model type cannot be used to contain stored entity, ErrType is
// returned.
func (b ModelBucket) One(db settle.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(b.model) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, b.model)
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot deserialize %s: %s", b.name, err)
	}
	return nil
}

// Has returns nil if a model with given primary key exists, ErrNotFound
// otherwise.
func (b ModelBucket) Has(db settle.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return nil
}

// Put saves given model in the database under given primary key.
func (b ModelBucket) Put(db settle.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != reflect.PtrTo(b.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, b.name)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "primary key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize model")
	}
	if err := b.updateIndexes(db, key, m); err != nil {
		return err
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db settle.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

// IndexKeys returns the primary keys of all models indexed under given value
// by the named index.
func (b ModelBucket) IndexKeys(db settle.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, ok := b.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown index %q", indexName)
	}
	return idx.Keys(db, value)
}

// ByIndex loads all models indexed under given value by the named index.
// Destination must be a pointer to a slice of model pointers. Primary keys
// of the loaded models are returned in the same order.
func (b ModelBucket) ByIndex(db settle.ReadOnlyKVStore, indexName string, value []byte, dest interface{}) ([][]byte, error) {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.Elem().Kind() != reflect.Slice || dv.Elem().Type().Elem() != reflect.PtrTo(b.model) {
		return nil, errors.Wrapf(errors.ErrType, "%T cannot hold %s models", dest, b.name)
	}
	keys, err := b.IndexKeys(db, indexName, value)
	if err != nil {
		return nil, err
	}
	slice := dv.Elem()
	for _, key := range keys {
		m := reflect.New(b.model)
		if err := b.One(db, key, m.Interface().(Model)); err != nil {
			return nil, errors.Wrapf(err, "index %s", indexName)
		}
		slice = reflect.Append(slice, m)
	}
	dv.Elem().Set(slice)
	return keys, nil
}

func (b ModelBucket) updateIndexes(db settle.KVStore, key []byte, next Model) error {
	if len(b.indexes) == 0 {
		return nil
	}
	var prev Model
	if err := b.Has(db, key); err == nil {
		prev = reflect.New(b.model).Interface().(Model)
		if err := b.One(db, key, prev); err != nil {
			return err
		}
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	// All constraints are checked before the first index is written.
	changes := make([]*change, 0, len(b.indexes))
	for _, name := range b.indexNames() {
		c, err := b.indexes[name].plan(db, key, prev, next)
		if err != nil {
			return err
		}
		if c != nil {
			changes = append(changes, c)
		}
	}
	for _, c := range changes {
		if err := c.apply(db, key); err != nil {
			return err
		}
	}
	return nil
}

func (b ModelBucket) indexNames() []string {
	names := make([]string, 0, len(b.indexes))
	for n := range b.indexes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
