package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGrid builds an empty grid with the given dimensions.
func newTestGrid(rows, cols int) [][]string {
	g := make([][]string, rows)
	for i := range g {
		g[i] = make([]string, cols)
	}
	return g
}

// validSummaryGrid builds a 95-column grid shaped like one "Resumen de Ventas"
// export: header labels on row 8, the reported total next to the "Ventas" label,
// and one data row per section.
func validSummaryGrid() [][]string {
	g := newTestGrid(12, 95)

	g[1][1] = "Ventas"
	g[1][2] = "$45,250.75"

	g[headerRowIndex][2] = "Hora"
	g[headerRowIndex][3] = "Monto"

	// hourly
	g[8][2], g[8][3] = "13:00", "1,500.50"
	g[9][2], g[9][3] = "14:00", "2,100.00"
	// dish
	g[8][6], g[8][7], g[8][8] = "P001", "Latte", "Bebidas"
	g[8][9], g[8][10], g[8][11] = "12", "540.00", "4.5"
	// group
	g[8][24], g[8][25] = "Bebidas", "1200.00"
	// group type
	g[8][38], g[8][39], g[8][40] = "Alimentos", "30", "900.00"
	g[8][41], g[8][42], g[8][43] = "144.00", "1044.00", "12.5"
	// payment type, percentage cell left blank on purpose
	g[8][47], g[8][48] = "Efectivo", "2500.00"
	// server
	g[8][53], g[8][54], g[8][55], g[8][56] = "Laura", "800.00", "128.00", "928.00"
	g[8][57], g[8][58], g[8][59], g[8][60], g[8][61] = "10", "92.80", "18", "51.56", "40.0"
	// cashier
	g[8][65], g[8][66], g[8][67], g[8][68] = "Caja 1", "2000.00", "320.00", "2320.00"
	g[8][69], g[8][70] = "55", "100.0"
	// modifier, size cell blank
	g[8][74], g[8][75], g[8][76] = "Extras", "M01", "Leche deslactosada"
	g[8][78], g[8][79] = "7", "70.00"

	return g
}

func TestExtractSummaryHappyPath(t *testing.T) {
	data, err := ExtractSummary(validSummaryGrid(), "resumen_marzo.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "resumen_marzo.xlsx", data.Metadata.FileName)
	assert.Equal(t, "45250.75", data.Metadata.TotalSales.String())
	assert.Equal(t, 95, data.Metadata.Columns)

	require.Len(t, data.HourlySales, 2)
	assert.Equal(t, "13:00", data.HourlySales[0].Hour)
	assert.Equal(t, "1500.5", data.HourlySales[0].Amount.String())

	require.Len(t, data.DishSales, 1)
	assert.Equal(t, "P001", data.DishSales[0].DishCode)
	assert.Equal(t, 12, data.DishSales[0].Quantity)

	require.Len(t, data.GroupSales, 1)
	require.Len(t, data.GroupTypes, 1)
	assert.Equal(t, 30, data.GroupTypes[0].Quantity)

	require.Len(t, data.PaymentTypes, 1)
	assert.True(t, data.PaymentTypes[0].Percentage.IsZero(), "blank percentage parses as zero")

	require.Len(t, data.ServerSales, 1)
	assert.Equal(t, 10, data.ServerSales[0].AccountCount)
	assert.Equal(t, 18, data.ServerSales[0].GuestCount)

	require.Len(t, data.CashierSales, 1)
	assert.Equal(t, 55, data.CashierSales[0].TransactionCount)

	require.Len(t, data.Modifiers, 1)
	assert.Nil(t, data.Modifiers[0].Size, "blank size becomes NULL")
	assert.Equal(t, 7, data.Modifiers[0].Quantity)

	assert.Empty(t, data.Warnings)
}

func TestExtractSummaryRejectsNarrowGrid(t *testing.T) {
	g := newTestGrid(12, 85)
	g[headerRowIndex][2] = "Hora"
	g[headerRowIndex][3] = "Monto"

	_, err := ExtractSummary(g, "otro_reporte.xlsx")
	require.ErrorIs(t, err, ErrSummaryStructure)
}

func TestExtractSummaryRejectsMissingHeaders(t *testing.T) {
	g := newTestGrid(12, 95)
	g[1][1] = "Ventas"
	g[1][2] = "45250.75"

	_, err := ExtractSummary(g, "resumen.xlsx")
	require.ErrorIs(t, err, ErrSummaryStructure)
}

func TestExtractSummaryTotalNotFound(t *testing.T) {
	g := validSummaryGrid()
	g[1][1] = ""
	g[1][2] = ""

	_, err := ExtractSummary(g, "resumen.xlsx")
	require.ErrorIs(t, err, ErrTotalNotFound)
}

func TestExtractSummaryIgnoresSmallNumbersNearAnchor(t *testing.T) {
	g := validSummaryGrid()
	// a row counter sits between the label and the real total
	g[1][2] = "31"
	g[1][3] = "$45,250.75"

	data, err := ExtractSummary(g, "resumen.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "45250.75", data.Metadata.TotalSales.String())
}

func TestExtractSummarySkipsUnparseableRow(t *testing.T) {
	g := validSummaryGrid()
	g[10][2], g[10][3] = "15:00", "no-es-numero"

	data, err := ExtractSummary(g, "resumen.xlsx")
	require.NoError(t, err, "a bad row never aborts the extraction")

	assert.Len(t, data.HourlySales, 2, "the bad row is dropped, the good ones survive")
	require.Len(t, data.Warnings, 1)
	assert.Contains(t, data.Warnings[0], "ventas por hora")
	assert.Contains(t, data.Warnings[0], "fila 11")
}

func TestExtractSummaryBlankAnchorSkipsRow(t *testing.T) {
	g := validSummaryGrid()
	// amount without an hour label is filler, not data
	g[10][3] = "999.00"

	data, err := ExtractSummary(g, "resumen.xlsx")
	require.NoError(t, err)
	assert.Len(t, data.HourlySales, 2)
	assert.Empty(t, data.Warnings)
}

func TestSectionCounts(t *testing.T) {
	data, err := ExtractSummary(validSummaryGrid(), "resumen.xlsx")
	require.NoError(t, err)

	counts := data.SectionCounts()
	assert.Equal(t, 2, counts[TableHourly])
	assert.Equal(t, 1, counts[TableDish])
	assert.Equal(t, 1, counts[TableModifier])
}

func TestParseMoney(t *testing.T) {
	v, err := parseMoney("$1,234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", v.String())

	_, err = parseMoney("")
	assert.Error(t, err)
	_, err = parseMoney("abc")
	assert.Error(t, err)
}

func TestParseCount(t *testing.T) {
	n, err := parseCount("1,250")
	require.NoError(t, err)
	assert.Equal(t, 1250, n)

	n, err = parseCount("9.0")
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	_, err = parseCount("x")
	assert.Error(t, err)
}
