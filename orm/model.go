package orm

import (
	"github.com/iov-one/settle"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	settle.Persistent
	Validate() error
}

// Indexer calculates the secondary index key for a given model. Returning
// a nil key means the model is not indexed.
type Indexer func(Model) ([]byte, error)
