package asset

import (
	"regexp"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

// BucketName is where assets are stored.
const BucketName = "asset"

const maxURILength = 256

// IsKind checks the asset type name.
var IsKind = regexp.MustCompile(`^[a-z0-9][a-z0-9_.\-]{2,31}$`).MatchString

// Asset is a uniquely owned non fungible object.
type Asset struct {
	Metadata *settle.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    settle.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Kind     string           `protobuf:"bytes,3,opt,name=kind,proto3" json:"kind,omitempty"`
	URI      string           `protobuf:"bytes,4,opt,name=uri,proto3" json:"uri,omitempty"`
}

var _ orm.Model = (*Asset)(nil)

func (a *Asset) Validate() error {
	if err := a.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !IsKind(a.Kind) {
		return errors.Wrapf(errors.ErrInput, "invalid asset kind %q", a.Kind)
	}
	if len(a.URI) > maxURILength {
		return errors.Wrap(errors.ErrInput, "uri too long")
	}
	return nil
}

func ownerIndexer(m orm.Model) ([]byte, error) {
	a, ok := m.(*Asset)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return a.Owner, nil
}

// NewBucket returns a bucket for assets, indexed by owner.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Asset{}).
		WithIndex("owner", ownerIndexer, false)
}
