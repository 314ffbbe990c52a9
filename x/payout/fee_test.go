package payout

import (
	"math"
	"testing"

	"github.com/iov-one/settle/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFee(t *testing.T) {
	cases := map[string]struct {
		total uint64
		want  uint64
	}{
		"empty batch":              {total: 0, want: 0},
		"smallest batch":           {total: 1, want: 1},
		"rounds to zero":           {total: 199, want: 1},
		"exactly one unit":         {total: 200, want: 1},
		"rounds down":              {total: 399, want: 1},
		"two units":                {total: 400, want: 2},
		"half a percent":           {total: 10000, want: 50},
		"no overflow on large sum": {total: math.MaxUint64, want: 92233720368547758},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, Fee(tc.total))
		})
	}
}

func TestFeeFormula(t *testing.T) {
	for total := uint64(1); total < 50000; total += 7 {
		want := total * FeeBPS / BPSDenominator
		if want == 0 {
			want = 1
		}
		require.Equal(t, want, Fee(total), "total %d", total)
	}
}

func TestTotal(t *testing.T) {
	total, err := Total([]uint64{100, 200, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(303), total)

	total, err = Total(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)

	_, err = Total([]uint64{math.MaxUint64, 1})
	assert.True(t, errors.ErrOverflow.Is(err))

	_, err = required(math.MaxUint64)
	assert.True(t, errors.ErrOverflow.Is(err))
}
