package sales

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// LoadSummaryGrid reads the "Resumen de Ventas" sheet of an uploaded workbook into
// a raw cell grid. Modern workbooks go through excelize; legacy .xls files from the
// older POS terminals go through extrame/xls.
func LoadSummaryGrid(file io.ReadSeeker, fileName string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSummaryLoad, err)
		}
		defer f.Close()
		rows, err := f.GetRows(summarySheetName)
		if err != nil {
			return nil, fmt.Errorf("%w: hoja %q no encontrada: %v", ErrSummaryLoad, summarySheetName, err)
		}
		return rows, nil
	case ".xls":
		wb, err := xls.OpenReader(file, "utf-8")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSummaryLoad, err)
		}
		for i := 0; i < wb.NumSheets(); i++ {
			sheet := wb.GetSheet(i)
			if sheet == nil || sheet.Name != summarySheetName {
				continue
			}
			grid := make([][]string, 0, int(sheet.MaxRow)+1)
			for r := 0; r <= int(sheet.MaxRow); r++ {
				row := sheet.Row(r)
				if row == nil {
					grid = append(grid, nil)
					continue
				}
				cells := make([]string, row.LastCol()+1)
				for c := row.FirstCol(); c <= row.LastCol(); c++ {
					cells[c] = row.Col(c)
				}
				grid = append(grid, cells)
			}
			return grid, nil
		}
		return nil, fmt.Errorf("%w: hoja %q no encontrada", ErrSummaryLoad, summarySheetName)
	}
	return nil, fmt.Errorf("%w: extensión no soportada %q", ErrSummaryLoad, filepath.Ext(fileName))
}

// ExtractSummary runs structural validation, grand-total lookup and the eight
// section extractors over a loaded grid. Rows that fail to parse are dropped from
// their section and reported in Warnings; they never abort the extraction.
func ExtractSummary(grid [][]string, fileName string) (*SummaryData, error) {
	ex := &summaryExtractor{grid: grid}

	if err := ex.validateStructure(); err != nil {
		return nil, err
	}
	total, err := ex.findGrandTotal()
	if err != nil {
		return nil, err
	}

	data := &SummaryData{
		Metadata: SummaryMetadata{
			FileName:   filepath.Base(fileName),
			LoadedAt:   time.Now(),
			TotalSales: total,
			Rows:       len(grid),
			Columns:    ex.width(),
		},
		HourlySales:  ex.extractHourly(),
		DishSales:    ex.extractDishes(),
		GroupSales:   ex.extractGroups(),
		GroupTypes:   ex.extractGroupTypes(),
		PaymentTypes: ex.extractPaymentTypes(),
		ServerSales:  ex.extractServers(),
		CashierSales: ex.extractCashiers(),
		Modifiers:    ex.extractModifiers(),
	}
	data.Warnings = ex.warnings
	return data, nil
}

type summaryExtractor struct {
	grid     [][]string
	warnings []string
}

// width is the widest row of the grid; excelize returns ragged rows.
func (e *summaryExtractor) width() int {
	w := 0
	for _, row := range e.grid {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

func (e *summaryExtractor) cell(row, col int) string {
	if row < 0 || row >= len(e.grid) {
		return ""
	}
	r := e.grid[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// validateStructure guards against the caller pointing the pipeline at the wrong
// report type: the template always lands near 95 columns and row 8 carries the
// "Hora" and "Monto" headers of the first section.
func (e *summaryExtractor) validateStructure() error {
	w := e.width()
	if w < minSummaryColumns || w > maxSummaryColumns {
		return fmt.Errorf("%w: columnas esperadas ~95, encontradas %d", ErrSummaryStructure, w)
	}
	hourFound, amountFound := false, false
	for col := 0; col < 5; col++ {
		v := strings.ToLower(e.cell(headerRowIndex, col))
		if strings.Contains(v, "hora") {
			hourFound = true
		}
		if strings.Contains(v, "monto") {
			amountFound = true
		}
	}
	if !hourFound {
		return fmt.Errorf("%w: no se encontró el encabezado 'Hora'", ErrSummaryStructure)
	}
	if !amountFound {
		return fmt.Errorf("%w: no se encontró el encabezado 'Monto'", ErrSummaryStructure)
	}
	return nil
}

// grandTotalFloor filters out small numbers near the anchor (row counters, column
// indexes) that are not the reported sales figure.
var grandTotalFloor = decimal.NewFromInt(1000)

// findGrandTotal locates the "Ventas" label in the sheet header and takes the
// first numeric value above the floor in its neighborhood as the reported period
// total. The heuristic is fuzzy on purpose: the label drifts a cell or two between
// template exports.
func (e *summaryExtractor) findGrandTotal() (decimal.Decimal, error) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 10; j++ {
			if !strings.EqualFold(e.cell(i, j), "ventas") {
				continue
			}
			for k := i; k <= i+2 && k < len(e.grid); k++ {
				for m := j - 2; m <= j+4; m++ {
					v, err := parseMoney(e.cell(k, m))
					if err == nil && v.GreaterThan(grandTotalFloor) {
						return v, nil
					}
				}
			}
		}
	}
	return decimal.Zero, ErrTotalNotFound
}

func (e *summaryExtractor) skip(section string, row int) {
	e.warnings = append(e.warnings, fmt.Sprintf("%s: fila %d omitida, valor no interpretable", section, row+1))
}

func (e *summaryExtractor) extractHourly() []HourlySale {
	lay := summaryLayout[TableHourly]
	out := []HourlySale{}
	for idx := dataStartRow; idx < len(e.grid); idx++ {
		hour := e.cell(idx, lay.Cols["hora"])
		if hour == "" {
			continue
		}
		amount, err := parseMoney(e.cell(idx, lay.Cols["monto"]))
		if err != nil {
			e.skip(lay.Name, idx)
			continue
		}
		out = append(out, HourlySale{Hour: hour, Amount: amount})
	}
	return out
}

func (e *summaryExtractor) extractDishes() []DishSale {
	lay := summaryLayout[TableDish]
	out := []DishSale{}
	for idx := dataStartRow; idx < len(e.grid); idx++ {
		code := e.cell(idx, lay.Cols["clave_platillo"])
		if code == "" {
			continue
		}
		qty, errQ := parseCount(e.cell(idx, lay.Cols["cantidad"]))
		subtotal, errS := parseMoney(e.cell(idx, lay.Cols["subtotal"]))
		pct, errP := parseMoney(e.cell(idx, lay.Cols["porcentaje"]))
		if errQ != nil || errS != nil || errP != nil {
			e.skip(lay.Name, idx)
			continue
		}
		out = append(out, DishSale{
			DishCode:   code,
			DishName:   e.cell(idx, lay.Cols["nombre_platillo"]),
			Group:      e.cell(idx, lay.Cols["grupo"]),
			Quantity:   qty,
			Subtotal:   subtotal,
			Percentage: pct,
		})
	}
	return out
}

func (e *summaryExtractor) extractGroups() []GroupSale {
	lay := summaryLayout[TableGroup]
	out := []GroupSale{}
	for idx := dataStartRow; idx < len(e.grid); idx++ {
		group := e.cell(idx, lay.Cols["grupo"])
		if group == "" {
			continue
		}
		subtotal, err := parseMoney(e.cell(idx, lay.Cols["subtotal"]))
		if err != nil {
			e.skip(lay.Name, idx)
			continue
		}
		out = append(out, GroupSale{Group: group, Subtotal: subtotal})
	}
	return out
}

func (e *summaryExtractor) extractGroupTypes() []GroupTypeSale {
	lay := summaryLayout[TableGroupType]
	out := []GroupTypeSale{}
	for idx := dataStartRow; idx < len(e.grid); idx++ {
		group := e.cell(idx, lay.Cols["grupo"])
		if group == "" {
			continue
		}
		qty, errQ := parseCount(e.cell(idx, lay.Cols["cantidad"]))
		subtotal, errS := parseMoney(e.cell(idx, lay.Cols["subtotal"]))
		tax, errI := parseMoney(e.cell(idx, lay.Cols["iva"]))
		total, errT := parseMoney(e.cell(idx, lay.Cols["total"]))
		pct, errP := parseMoney(e.cell(idx, lay.Cols["porcentaje"]))
		if errQ != nil || errS != nil || errI != nil || errT != nil || errP != nil {
			e.skip(lay.Name, idx)
			continue
		}
		out = append(out, GroupTypeSale{
			Group: group, Quantity: qty, Subtotal: subtotal,
			Tax: tax, Total: total, Percentage: pct,
		})
	}
	return out
}

func (e *summaryExtractor) extractPaymentTypes() []PaymentTypeSale {
	lay := summaryLayout[TablePayment]
	out := []PaymentTypeSale{}
	for idx := dataStartRow; idx < len(e.grid); idx++ {
		payType := e.cell(idx, lay.Cols["tipo_pago"])
		if payType == "" {
			continue
		}
		total, err := parseMoney(e.cell(idx, lay.Cols["total"]))
		if err != nil {
			e.skip(lay.Name, idx)
			continue
		}
		// percentage is blank for some payment rows on the template
		pct := decimal.Zero
		if raw := e.cell(idx, lay.Cols["porcentaje"]); raw != "" {
			v, err := parseMoney(raw)
			if err != nil {
				e.skip(lay.Name, idx)
				continue
			}
			pct = v
		}
		out = append(out, PaymentTypeSale{PaymentType: payType, Total: total, Percentage: pct})
	}
	return out
}

func (e *summaryExtractor) extractServers() []ServerSale {
	lay := summaryLayout[TableServer]
	out := []ServerSale{}
	for idx := dataStartRow; idx < len(e.grid); idx++ {
		server := e.cell(idx, lay.Cols["usuario"])
		if server == "" {
			continue
		}
		subtotal, errS := parseMoney(e.cell(idx, lay.Cols["subtotal"]))
		tax, errI := parseMoney(e.cell(idx, lay.Cols["iva"]))
		total, errT := parseMoney(e.cell(idx, lay.Cols["total"]))
		accounts, errA := parseCount(e.cell(idx, lay.Cols["num_cuentas"]))
		avgTicket, errK := parseMoney(e.cell(idx, lay.Cols["ticket_promedio"]))
		guests, errG := parseCount(e.cell(idx, lay.Cols["num_personas"]))
		avgGuest, errV := parseMoney(e.cell(idx, lay.Cols["promedio_por_persona"]))
		pct, errP := parseMoney(e.cell(idx, lay.Cols["porcentaje"]))
		if errS != nil || errI != nil || errT != nil || errA != nil ||
			errK != nil || errG != nil || errV != nil || errP != nil {
			e.skip(lay.Name, idx)
			continue
		}
		out = append(out, ServerSale{
			Server: server, Subtotal: subtotal, Tax: tax, Total: total,
			AccountCount: accounts, AverageTicket: avgTicket,
			GuestCount: guests, AveragePerGuest: avgGuest, Percentage: pct,
		})
	}
	return out
}

func (e *summaryExtractor) extractCashiers() []CashierSale {
	lay := summaryLayout[TableCashier]
	out := []CashierSale{}
	for idx := dataStartRow; idx < len(e.grid); idx++ {
		cashier := e.cell(idx, lay.Cols["cajero"])
		if cashier == "" {
			continue
		}
		subtotal, errS := parseMoney(e.cell(idx, lay.Cols["subtotal"]))
		tax, errI := parseMoney(e.cell(idx, lay.Cols["iva"]))
		total, errT := parseMoney(e.cell(idx, lay.Cols["total"]))
		txCount, errC := parseCount(e.cell(idx, lay.Cols["cantidad_transacciones"]))
		pct, errP := parseMoney(e.cell(idx, lay.Cols["porcentaje"]))
		if errS != nil || errI != nil || errT != nil || errC != nil || errP != nil {
			e.skip(lay.Name, idx)
			continue
		}
		out = append(out, CashierSale{
			Cashier: cashier, Subtotal: subtotal, Tax: tax, Total: total,
			TransactionCount: txCount, Percentage: pct,
		})
	}
	return out
}

func (e *summaryExtractor) extractModifiers() []ModifierSale {
	lay := summaryLayout[TableModifier]
	out := []ModifierSale{}
	for idx := dataStartRow; idx < len(e.grid); idx++ {
		group := e.cell(idx, lay.Cols["grupo"])
		if group == "" {
			continue
		}
		qty, errQ := parseCount(e.cell(idx, lay.Cols["cantidad"]))
		subtotal, errS := parseMoney(e.cell(idx, lay.Cols["subtotal"]))
		if errQ != nil || errS != nil {
			e.skip(lay.Name, idx)
			continue
		}
		var size *string
		if raw := e.cell(idx, lay.Cols["tamano"]); raw != "" {
			size = &raw
		}
		out = append(out, ModifierSale{
			Group:    group,
			DishCode: e.cell(idx, lay.Cols["clave_platillo"]),
			DishName: e.cell(idx, lay.Cols["nombre_platillo"]),
			Size:     size,
			Quantity: qty,
			Subtotal: subtotal,
		})
	}
	return out
}

// parseMoney parses a cell into an exact decimal, tolerating thousand separators
// and a currency sign.
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("celda vacía")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	return decimal.NewFromString(s)
}

// parseCount parses an integer cell. The POS exports whole counts as "9" or
// "9.0" depending on the terminal; fractional text is truncated the same way the
// template's own totals page does.
func parseCount(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("celda vacía")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
