package payout

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/settle/errors"
)

const (
	// FeeBPS is the protocol fee rate in basis points.
	FeeBPS = 50
	// BPSDenominator is the number of basis points in a whole.
	BPSDenominator = 10000
)

// Fee returns the protocol fee due for a batch of given total.
// Any non zero total pays at least one unit.
func Fee(total uint64) uint64 {
	if total == 0 {
		return 0
	}
	f := new(uint256.Int).SetUint64(total)
	f.Mul(f, uint256.NewInt(FeeBPS))
	f.Div(f, uint256.NewInt(BPSDenominator))
	fee := f.Uint64()
	if fee == 0 {
		return 1
	}
	return fee
}

// Total returns the sum of all amounts. It fails with ErrOverflow if the sum
// does not fit in uint64.
func Total(amounts []uint64) (uint64, error) {
	sum := new(uint256.Int)
	for _, a := range amounts {
		sum.Add(sum, uint256.NewInt(a))
	}
	if !sum.IsUint64() {
		return 0, errors.Wrapf(errors.ErrOverflow, "total of %d amounts", len(amounts))
	}
	return sum.Uint64(), nil
}

// required returns total plus the fee on it.
func required(total uint64) (uint64, error) {
	sum, overflow := new(uint256.Int).AddOverflow(
		uint256.NewInt(total), uint256.NewInt(Fee(total)))
	if overflow || !sum.IsUint64() {
		return 0, errors.Wrap(errors.ErrOverflow, "total with fee")
	}
	return sum.Uint64(), nil
}
