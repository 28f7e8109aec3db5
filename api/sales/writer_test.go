package sales

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow feeds a canned COUNT(*) result to the duplicate guard.
type fakeRow struct {
	count int
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int)) = r.count
	return nil
}

// fakeTx implements salesTx in memory and records everything written through it.
type fakeTx struct {
	existing  int
	execCount map[string]int
	copied    map[string]int
	copiedRaw map[string][][]any
	failTable string
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		execCount: map[string]int{},
		copied:    map[string]int{},
		copiedRaw: map[string][][]any{},
	}
}

func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{count: f.existing}
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	table := tableOfStatement(sql)
	if table == f.failTable {
		return pgconn.CommandTag{}, errors.New("deadlock detected")
	}
	f.execCount[table]++
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	table := tableName[1]
	if table == f.failTable {
		return 0, errors.New("deadlock detected")
	}
	var n int64
	for rowSrc.Next() {
		vals, err := rowSrc.Values()
		if err != nil {
			return n, err
		}
		f.copiedRaw[table] = append(f.copiedRaw[table], vals)
		n++
	}
	f.copied[table] = int(n)
	return n, nil
}

func tableOfStatement(sql string) string {
	for _, table := range []string{
		TableGroupType, TablePayment, TableModifier, TableCashier,
		TableServer, TableGroup, TableDish, TableHourly,
	} {
		if strings.Contains(sql, table) {
			return table
		}
	}
	return ""
}

func testSummaryData() *SummaryData {
	money := decimal.RequireFromString
	size := "Grande"
	return &SummaryData{
		HourlySales: []HourlySale{
			{Hour: "13:00", Amount: money("1500.50")},
			{Hour: "14:00", Amount: money("2100.00")},
		},
		DishSales: []DishSale{
			{DishCode: "P001", DishName: "Latte", Group: "Bebidas",
				Quantity: 277, Subtotal: money("540.00"), Percentage: money("4.5")},
		},
		GroupSales: []GroupSale{{Group: "Bebidas", Subtotal: money("1200.00")}},
		GroupTypes: []GroupTypeSale{
			{Group: "Alimentos", Quantity: 30, Subtotal: money("900.00"),
				Tax: money("144.00"), Total: money("1044.00"), Percentage: money("12.5")},
		},
		PaymentTypes: []PaymentTypeSale{
			{PaymentType: "Efectivo", Total: money("2500.00"), Percentage: decimal.Zero},
		},
		ServerSales: []ServerSale{
			{Server: "Laura", Subtotal: money("800.00"), Tax: money("128.00"), Total: money("928.00"),
				AccountCount: 10, AverageTicket: money("92.80"), GuestCount: 18,
				AveragePerGuest: money("51.56"), Percentage: money("40.0")},
		},
		CashierSales: []CashierSale{
			{Cashier: "Caja 1", Subtotal: money("2000.00"), Tax: money("320.00"), Total: money("2320.00"),
				TransactionCount: 55, Percentage: money("100.0")},
		},
		Modifiers: []ModifierSale{
			{Group: "Extras", DishCode: "M01", DishName: "Leche deslactosada",
				Size: &size, Quantity: 7, Subtotal: money("70.00")},
		},
	}
}

func TestWriteDailyInsertsEveryTable(t *testing.T) {
	tx := newFakeTx()
	p := Period{Branch: "Centro", Year: 2025, Month: 3, Day: 14}

	counts, err := writeDaily(context.Background(), tx, testSummaryData(), p, "ana")
	require.NoError(t, err)

	assert.Equal(t, 2, counts[TableHourly])
	assert.Equal(t, 1, counts[TableDish])
	assert.Equal(t, 1, counts[TableModifier])
	assert.Equal(t, 2, tx.execCount[TableHourly])
	assert.Len(t, counts, 8)
}

func TestWriteDailyDuplicateBlocksInsideTx(t *testing.T) {
	tx := newFakeTx()
	tx.existing = 5
	p := Period{Branch: "Centro", Year: 2025, Month: 3, Day: 14}

	_, err := writeDaily(context.Background(), tx, testSummaryData(), p, "ana")
	require.ErrorIs(t, err, ErrDuplicatePeriod)
	assert.Empty(t, tx.execCount, "nothing may be written once the guard fires")
}

func TestWriteDailyFailureReportsTable(t *testing.T) {
	tx := newFakeTx()
	tx.failTable = TableCashier
	p := Period{Branch: "Centro", Year: 2025, Month: 3, Day: 14}

	counts, err := writeDaily(context.Background(), tx, testSummaryData(), p, "ana")
	require.Error(t, err)
	assert.Nil(t, counts)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, TableCashier, we.Table)
	assert.Empty(t, tx.execCount[TableModifier], "tables after the failed one are never reached")
}

func TestWriteMonthlyExpandsAcrossDays(t *testing.T) {
	tx := newFakeTx()
	p := Period{Branch: "Centro", Year: 2025, Month: 3, TotalDays: 31}

	counts, err := writeMonthly(context.Background(), tx, testSummaryData(), p, "ana")
	require.NoError(t, err)

	assert.Equal(t, 31*2, counts[TableHourly])
	assert.Equal(t, 31, counts[TableDish])
	assert.Equal(t, 31, counts[TableServer])
}

func TestWriteMonthlyDuplicateBlocksInsideTx(t *testing.T) {
	tx := newFakeTx()
	tx.existing = 1
	p := Period{Branch: "Centro", Year: 2025, Month: 3, TotalDays: 31}

	_, err := writeMonthly(context.Background(), tx, testSummaryData(), p, "ana")
	require.ErrorIs(t, err, ErrDuplicatePeriod)
	assert.Empty(t, tx.copied)
}

func TestWriteMonthlyFailureLeavesNoPartialTables(t *testing.T) {
	tx := newFakeTx()
	tx.failTable = TableCashier // seventh of the eight tables
	p := Period{Branch: "Centro", Year: 2025, Month: 3, TotalDays: 31}

	counts, err := writeMonthly(context.Background(), tx, testSummaryData(), p, "ana")
	require.Error(t, err)
	assert.Nil(t, counts, "a failed table invalidates the whole load")

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, TableCashier, we.Table)
	assert.NotContains(t, tx.copied, TableModifier)
}

func TestMonthlySectionsQuantitiesResum(t *testing.T) {
	p := Period{Branch: "Centro", Year: 2025, Month: 3, TotalDays: 31}
	sections := monthlySections(testSummaryData(), p, "ana")

	var dishes tableRows
	for _, s := range sections {
		if s.table == TableDish {
			dishes = s
		}
	}
	require.Len(t, dishes.rows, 31)

	// dishCols: sucursal, anio, mes, dia, clave, nombre, grupo, cantidad, ...
	qtySum := 0
	for i, row := range dishes.rows {
		qty := row[7].(int)
		qtySum += qty
		if i < 29 {
			assert.Equal(t, 9, qty)
		} else {
			assert.Equal(t, 8, qty)
		}
	}
	assert.Equal(t, 277, qtySum, "per-day quantities re-sum to the monthly total")
}

func TestMonthlySectionsMoneyDividedUniformly(t *testing.T) {
	p := Period{Branch: "Centro", Year: 2025, Month: 3, TotalDays: 31}
	sections := monthlySections(testSummaryData(), p, "ana")

	var hourly tableRows
	for _, s := range sections {
		if s.table == TableHourly {
			hourly = s
		}
	}
	require.Len(t, hourly.rows, 31*2)

	want := decimal.RequireFromString("1500.50").Div(decimal.NewFromInt(31)).String()
	for day := 0; day < 31; day++ {
		row := hourly.rows[day*2] // first hourly record of each day
		assert.Equal(t, day+1, row[3], "day column advances")
		assert.Equal(t, want, row[5], "every day carries the same uniform share")
	}
}

func TestDailySectionsSizeNull(t *testing.T) {
	data := testSummaryData()
	data.Modifiers[0].Size = nil
	p := Period{Branch: "Centro", Year: 2025, Month: 3, Day: 14}

	sections := dailySections(data, p, "ana")
	for _, s := range sections {
		if s.table == TableModifier {
			require.Len(t, s.rows, 1)
			assert.Nil(t, s.rows[0][7], "absent size maps to SQL NULL")
		}
	}
}

func TestInsertStatement(t *testing.T) {
	sql := insertStatement(TableGroup, groupCols)
	assert.Contains(t, sql, `"LealSilver".ventas_por_grupo`)
	assert.Contains(t, sql, "$7")
	assert.NotContains(t, sql, "$8")
}
