package sales

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Load modes accepted by upload-preview and confirm-save.
const (
	ModeDaily   = "diario"
	ModeMonthly = "mensual"
)

// HourlySale is one row of the "Ventas por hora" section.
type HourlySale struct {
	Hour   string          `json:"hora"`
	Amount decimal.Decimal `json:"monto"`
}

// DishSale is one row of the "Ventas por platillo" section.
type DishSale struct {
	DishCode   string          `json:"clave_platillo"`
	DishName   string          `json:"nombre_platillo"`
	Group      string          `json:"grupo"`
	Quantity   int             `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Percentage decimal.Decimal `json:"porcentaje"`
}

// GroupSale is one row of the "Ventas por grupo" section.
type GroupSale struct {
	Group    string          `json:"grupo"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// GroupTypeSale is one row of the "Ventas por tipo de grupo" section.
type GroupTypeSale struct {
	Group      string          `json:"grupo"`
	Quantity   int             `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"iva"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"porcentaje"`
}

// PaymentTypeSale is one row of the "Ventas por tipo de pago" section.
type PaymentTypeSale struct {
	PaymentType string          `json:"tipo_pago"`
	Total       decimal.Decimal `json:"total"`
	Percentage  decimal.Decimal `json:"porcentaje"`
}

// ServerSale is one row of the "Ventas por usuario" (mesero) section.
type ServerSale struct {
	Server          string          `json:"usuario"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"iva"`
	Total           decimal.Decimal `json:"total"`
	AccountCount    int             `json:"num_cuentas"`
	AverageTicket   decimal.Decimal `json:"ticket_promedio"`
	GuestCount      int             `json:"num_personas"`
	AveragePerGuest decimal.Decimal `json:"promedio_por_persona"`
	Percentage      decimal.Decimal `json:"porcentaje"`
}

// CashierSale is one row of the "Ventas por cajero" section.
type CashierSale struct {
	Cashier          string          `json:"cajero"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"iva"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"cantidad_transacciones"`
	Percentage       decimal.Decimal `json:"porcentaje"`
}

// ModifierSale is one row of the "Ventas por modificador" section.
type ModifierSale struct {
	Group    string          `json:"grupo"`
	DishCode string          `json:"clave_platillo"`
	DishName string          `json:"nombre_platillo"`
	Size     *string         `json:"tamano"`
	Quantity int             `json:"cantidad"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// SummaryMetadata describes the parsed workbook, returned alongside the sections.
// TotalSales is the figure reported on the sheet header; it is advisory and is
// never reconciled against the section sums.
type SummaryMetadata struct {
	FileName   string          `json:"archivo"`
	LoadedAt   time.Time       `json:"fecha_carga"`
	TotalSales decimal.Decimal `json:"total_ventas"`
	Rows       int             `json:"filas"`
	Columns    int             `json:"columnas"`
}

// SummaryData is the full result of extracting one "Resumen de Ventas" workbook:
// the eight independent sections plus metadata and per-row parse warnings.
type SummaryData struct {
	Metadata     SummaryMetadata   `json:"metadata"`
	HourlySales  []HourlySale      `json:"ventas_por_hora"`
	DishSales    []DishSale        `json:"ventas_por_platillo"`
	GroupSales   []GroupSale       `json:"ventas_por_grupo"`
	GroupTypes   []GroupTypeSale   `json:"ventas_por_tipo_grupo"`
	PaymentTypes []PaymentTypeSale `json:"ventas_por_tipo_pago"`
	ServerSales  []ServerSale      `json:"ventas_por_usuario"`
	CashierSales []CashierSale     `json:"ventas_por_cajero"`
	Modifiers    []ModifierSale    `json:"ventas_por_modificador"`
	Warnings     []string          `json:"warnings"`
}

// SectionCounts returns how many rows each section extracted, keyed by table name.
func (d *SummaryData) SectionCounts() map[string]int {
	return map[string]int{
		TableHourly:    len(d.HourlySales),
		TableDish:      len(d.DishSales),
		TableGroup:     len(d.GroupSales),
		TableGroupType: len(d.GroupTypes),
		TablePayment:   len(d.PaymentTypes),
		TableServer:    len(d.ServerSales),
		TableCashier:   len(d.CashierSales),
		TableModifier:  len(d.Modifiers),
	}
}

// Period identifies the scope of one ingestion: one branch plus either a single
// calendar day (daily mode) or a whole month (monthly mode, apportioned across
// every day 1..TotalDays).
type Period struct {
	Branch    string `json:"sucursal"`
	Year      int    `json:"anio"`
	Month     int    `json:"mes"`
	Day       int    `json:"dia,omitempty"`
	TotalDays int    `json:"dias_en_mes,omitempty"`
}

// Validate checks the period against the given load mode.
func (p Period) Validate(mode string) error {
	if p.Branch == "" {
		return fmt.Errorf("sucursal es obligatoria")
	}
	if p.Year < 2020 || p.Year > 2100 {
		return fmt.Errorf("anio fuera de rango: %d", p.Year)
	}
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("mes fuera de rango: %d", p.Month)
	}
	switch mode {
	case ModeDaily:
		if p.Day < 1 || p.Day > 31 {
			return fmt.Errorf("en modo diario el dia es obligatorio (1-31)")
		}
	case ModeMonthly:
		if p.TotalDays < 28 || p.TotalDays > 31 {
			return fmt.Errorf("en modo mensual dias_en_mes es obligatorio (28-31)")
		}
	default:
		return fmt.Errorf("modo_carga desconocido: %s", mode)
	}
	return nil
}

// DaysInMonth returns how many days the given month has.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
