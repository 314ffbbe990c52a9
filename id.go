package settle

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/iov-one/settle/errors"
)

// ObjectIDLength is the length of every ledger object identifier.
const ObjectIDLength = 20

// ObjectID identifies a ledger object (coin, asset, escrow record). It is
// derived from the hash of the transaction that created the object and the
// creation index within that transaction, which makes it globally unique
// without a shared counter.
type ObjectID []byte

// Validate returns an error if the identifier is not of the valid size.
func (id ObjectID) Validate() error {
	if len(id) != ObjectIDLength {
		return errors.ErrInput.Newf("object id: %X", []byte(id))
	}
	return nil
}

// Equals checks if two identifiers are the same.
func (id ObjectID) Equals(other ObjectID) bool {
	return string(id) == string(other)
}

func (id ObjectID) String() string {
	if len(id) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(id))
}

func (id ObjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *ObjectID) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if enc == "" {
		*id = nil
		return nil
	}
	val, err := hex.DecodeString(enc)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	*id = val
	return id.Validate()
}

// objectIDs hands out identifiers for objects created by a single
// transaction.
type objectIDs struct {
	mu     sync.Mutex
	txHash []byte
	n      uint64
}

// WithTxHash binds an object identifier source to the context. All objects
// created while processing the transaction with given hash receive their
// identifiers from it.
func WithTxHash(ctx Context, txHash []byte) Context {
	ids := &objectIDs{txHash: append([]byte(nil), txHash...)}
	return context.WithValue(ctx, contextKeyObjectIDs, ids)
}

// NewObjectID returns the next unused object identifier of the transaction
// bound to the context.
func NewObjectID(ctx Context) (ObjectID, error) {
	ids, ok := ctx.Value(contextKeyObjectIDs).(*objectIDs)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "transaction hash not present in context")
	}
	ids.mu.Lock()
	defer ids.mu.Unlock()

	ids.n++
	raw := make([]byte, len(ids.txHash)+8)
	copy(raw, ids.txHash)
	binary.BigEndian.PutUint64(raw[len(ids.txHash):], ids.n)
	h := sha256.Sum256(raw)
	return ObjectID(h[:ObjectIDLength]), nil
}
