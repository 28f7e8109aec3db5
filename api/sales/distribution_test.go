package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributeQuantityExactSum(t *testing.T) {
	totals := []int{1, 7, 31, 100, 277, 999, 12345}
	for _, totalDays := range []int{28, 29, 30, 31} {
		for _, total := range totals {
			sum := 0
			for day := 1; day <= totalDays; day++ {
				sum += DistributeQuantity(total, day, totalDays)
			}
			assert.Equalf(t, total, sum, "total %d over %d days must re-sum exactly", total, totalDays)
		}
	}
}

func TestDistributeQuantity277Over31(t *testing.T) {
	// 277/31 = 8 remainder 29: days 1-29 get 9, days 30-31 get 8
	for day := 1; day <= 29; day++ {
		require.Equal(t, 9, DistributeQuantity(277, day, 31))
	}
	require.Equal(t, 8, DistributeQuantity(277, 30, 31))
	require.Equal(t, 8, DistributeQuantity(277, 31, 31))
}

func TestDistributeQuantityMonotonic(t *testing.T) {
	// earlier days never receive less than later days
	for day := 2; day <= 30; day++ {
		prev := DistributeQuantity(100, day-1, 30)
		cur := DistributeQuantity(100, day, 30)
		assert.GreaterOrEqual(t, prev, cur)
	}
}

func TestDistributeQuantityNonPositive(t *testing.T) {
	assert.Equal(t, 0, DistributeQuantity(0, 1, 31))
	assert.Equal(t, 0, DistributeQuantity(-5, 15, 31))
}

func TestDivideAmountUniform(t *testing.T) {
	amount := decimal.RequireFromString("45250.75")
	first := DivideAmount(amount, 31)
	for day := 2; day <= 31; day++ {
		assert.True(t, first.Equal(DivideAmount(amount, 31)), "every day gets the same share")
	}
	assert.True(t, first.Equal(amount.Div(decimal.NewFromInt(31))))
}
