package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodValidateDaily(t *testing.T) {
	p := Period{Branch: "Centro", Year: 2025, Month: 3, Day: 14}
	require.NoError(t, p.Validate(ModeDaily))

	assert.Error(t, Period{Year: 2025, Month: 3, Day: 14}.Validate(ModeDaily), "missing branch")
	assert.Error(t, Period{Branch: "Centro", Year: 2019, Month: 3, Day: 14}.Validate(ModeDaily), "year below range")
	assert.Error(t, Period{Branch: "Centro", Year: 2025, Month: 13, Day: 14}.Validate(ModeDaily), "month out of range")
	assert.Error(t, Period{Branch: "Centro", Year: 2025, Month: 3}.Validate(ModeDaily), "daily mode needs a day")
	assert.Error(t, Period{Branch: "Centro", Year: 2025, Month: 3, Day: 32}.Validate(ModeDaily), "day too large")
}

func TestPeriodValidateMonthly(t *testing.T) {
	p := Period{Branch: "Centro", Year: 2025, Month: 2, TotalDays: 28}
	require.NoError(t, p.Validate(ModeMonthly))

	assert.Error(t, Period{Branch: "Centro", Year: 2025, Month: 2}.Validate(ModeMonthly), "monthly mode needs total days")
	assert.Error(t, Period{Branch: "Centro", Year: 2025, Month: 2, TotalDays: 27}.Validate(ModeMonthly))
	assert.Error(t, Period{Branch: "Centro", Year: 2025, Month: 2, TotalDays: 32}.Validate(ModeMonthly))
}

func TestPeriodValidateUnknownMode(t *testing.T) {
	p := Period{Branch: "Centro", Year: 2025, Month: 3, Day: 14}
	assert.Error(t, p.Validate("semanal"))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 28, DaysInMonth(2025, 2))
	assert.Equal(t, 30, DaysInMonth(2025, 4))
	assert.Equal(t, 31, DaysInMonth(2025, 12))
}
