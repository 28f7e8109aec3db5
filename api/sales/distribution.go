package sales

import "github.com/shopspring/decimal"

// DistributeQuantity apportions an integer monthly total across the days of the
// month without losing a single unit: days 1..remainder get base+1, the rest get
// base, so summing over day = 1..totalDays always reproduces total exactly.
//
// Example: total 277 over 31 days gives base 8, remainder 29; days 1-29 receive 9
// and days 30-31 receive 8, and 29×9 + 2×8 = 277.
func DistributeQuantity(total, day, totalDays int) int {
	if total <= 0 {
		return 0
	}
	base := total / totalDays
	remainder := total % totalDays
	if day <= remainder {
		return base + 1
	}
	return base
}

// DivideAmount splits a monetary monthly total uniformly: every day gets
// amount/totalDays in exact decimal arithmetic. Unlike DistributeQuantity the
// per-day values may not re-total to the original down to the last digit; that
// discrepancy is accepted for money and must not be compensated.
func DivideAmount(amount decimal.Decimal, totalDays int) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(int64(totalDays)))
}
