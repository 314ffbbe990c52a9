package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/codec"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type myConfig struct {
	Owner settle.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Text  string         `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
}

type myConfigPB myConfig

func (m *myConfigPB) Reset()         { *m = myConfigPB{} }
func (m *myConfigPB) String() string { return proto.CompactTextString(m) }
func (*myConfigPB) ProtoMessage()    {}

func (c *myConfig) Marshal() ([]byte, error)   { return codec.Marshal((*myConfigPB)(c)) }
func (c *myConfig) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*myConfigPB)(c)) }

func (c *myConfig) Validate() error {
	return c.Owner.Validate()
}

func TestSaveLoad(t *testing.T) {
	owner := settle.NewAddress([]byte("owner"))

	cases := map[string]struct {
		conf        *myConfig
		wantSaveErr *errors.Error
	}{
		"valid configuration": {
			conf: &myConfig{Owner: owner, Text: "fee collector"},
		},
		"invalid address cannot be saved": {
			conf:        &myConfig{Owner: settle.Address("too short")},
			wantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.conf); !tc.wantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			var got myConfig
			err := Load(db, "mypkg", &got)
			if tc.wantSaveErr != nil {
				assert.True(t, errors.ErrNotFound.Is(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.conf, &got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	const genesis = `{
		"conf": {
			"mypkg": {
				"owner": "cond:sigs/ed25519/0102030405",
				"text": "hello"
			}
		}
	}`
	var opts settle.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var conf myConfig
	require.NoError(t, InitConfig(db, opts, "mypkg", &conf))

	var got myConfig
	require.NoError(t, Load(db, "mypkg", &got))
	assert.Equal(t, "hello", got.Text)
	want := settle.NewCondition("sigs", "ed25519", []byte{1, 2, 3, 4, 5}).Address()
	assert.Equal(t, want, got.Owner)

	// written exactly once
	err := InitConfig(db, opts, "mypkg", &myConfig{})
	assert.True(t, errors.ErrDuplicate.Is(err))

	err = InitConfig(db, opts, "otherpkg", &myConfig{})
	assert.True(t, errors.ErrNotFound.Is(err))
}
