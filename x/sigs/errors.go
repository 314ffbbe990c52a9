package sigs

import "github.com/iov-one/settle/errors"

// ErrInvalidSequence is returned when a signature sequence does not match
// the expected nonce of the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
