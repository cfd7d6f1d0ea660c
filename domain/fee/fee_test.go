package fee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrow/domain"
)

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		amount   int64
		rate     Rate
		fee      int64
		proceeds int64
	}{
		{1000, 2, 20, 980},
		{49, 2, 0, 49},
		{50, 2, 1, 49},
		{999, 99, 989, 10},
		{1, 0, 0, 1},
		{0, 50, 0, 0},
	}
	for _, tt := range tests {
		fee, proceeds := ComputeSplit(decimal.NewFromInt(tt.amount), tt.rate)
		require.True(t, decimal.NewFromInt(tt.fee).Equal(fee), "fee of %d at %d", tt.amount, tt.rate)
		require.True(t, decimal.NewFromInt(tt.proceeds).Equal(proceeds), "proceeds of %d at %d", tt.amount, tt.rate)
	}
}

func TestComputeSplitConservesValue(t *testing.T) {
	maxUint256, err := decimal.NewFromString("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	require.NoError(t, err)

	amounts := []decimal.Decimal{maxUint256, decimal.NewFromInt(7), decimal.NewFromInt(101), decimal.NewFromInt(123456789)}
	for _, amount := range amounts {
		for rate := Rate(0); rate < MaxRate; rate++ {
			fee, proceeds := ComputeSplit(amount, rate)
			require.True(t, amount.Equal(fee.Add(proceeds)))
			require.True(t, fee.IsInteger())
			require.False(t, fee.IsNegative())
			require.True(t, fee.LessThanOrEqual(amount))
		}
	}
}

func TestRateValidate(t *testing.T) {
	require.NoError(t, Rate(0).Validate())
	require.NoError(t, Rate(99).Validate())
	require.ErrorIs(t, Rate(100).Validate(), domain.ErrInvalidConfiguration)
	require.ErrorIs(t, Rate(150).Validate(), domain.ErrInvalidConfiguration)
	require.ErrorIs(t, Rate(-1).Validate(), domain.ErrInvalidConfiguration)
}
