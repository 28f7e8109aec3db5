package sales

// Destination table names in the LealSilver schema. The hourly table doubles as
// the representative table for duplicate checks.
const (
	SchemaName = "LealSilver"

	TableHourly    = "ventas_por_hora"
	TableDish      = "ventas_por_platillo"
	TableGroup     = "ventas_por_grupo"
	TableGroupType = "ventas_por_tipo_grupo"
	TablePayment   = "ventas_por_tipo_pago"
	TableServer    = "ventas_por_usuario"
	TableCashier   = "ventas_por_cajero"
	TableModifier  = "ventas_por_modificador"
)

// sectionLayout maps one section of the "Resumen de Ventas" template to its fixed
// column offsets. Anchor is the column holding the section's key field; a data row
// belongs to the section only when its anchor cell is non-blank.
//
// The offsets are a contract with one specific version of the POS report template.
// A template revision means editing this table, not the extraction code.
type sectionLayout struct {
	Name   string
	Anchor int
	Cols   map[string]int
}

var summaryLayout = map[string]sectionLayout{
	TableHourly: {
		Name:   "ventas por hora",
		Anchor: 2,
		Cols:   map[string]int{"hora": 2, "monto": 3},
	},
	TableDish: {
		Name:   "ventas por platillo",
		Anchor: 6,
		Cols: map[string]int{
			"clave_platillo": 6, "nombre_platillo": 7, "grupo": 8,
			"cantidad": 9, "subtotal": 10, "porcentaje": 11,
		},
	},
	TableGroup: {
		Name:   "ventas por grupo",
		Anchor: 24,
		Cols:   map[string]int{"grupo": 24, "subtotal": 25},
	},
	TableGroupType: {
		Name:   "ventas por tipo de grupo",
		Anchor: 38,
		Cols: map[string]int{
			"grupo": 38, "cantidad": 39, "subtotal": 40,
			"iva": 41, "total": 42, "porcentaje": 43,
		},
	},
	TablePayment: {
		Name:   "ventas por tipo de pago",
		Anchor: 47,
		Cols:   map[string]int{"tipo_pago": 47, "total": 48, "porcentaje": 49},
	},
	TableServer: {
		Name:   "ventas por usuario",
		Anchor: 53,
		Cols: map[string]int{
			"usuario": 53, "subtotal": 54, "iva": 55, "total": 56,
			"num_cuentas": 57, "ticket_promedio": 58, "num_personas": 59,
			"promedio_por_persona": 60, "porcentaje": 61,
		},
	},
	TableCashier: {
		Name:   "ventas por cajero",
		Anchor: 65,
		Cols: map[string]int{
			"cajero": 65, "subtotal": 66, "iva": 67, "total": 68,
			"cantidad_transacciones": 69, "porcentaje": 70,
		},
	},
	TableModifier: {
		Name:   "ventas por modificador",
		Anchor: 74,
		Cols: map[string]int{
			"grupo": 74, "clave_platillo": 75, "nombre_platillo": 76,
			"tamano": 77, "cantidad": 78, "subtotal": 79,
		},
	},
}

// Structural bounds of the template.
const (
	summarySheetName = "Resumen de Ventas"

	minSummaryColumns = 90
	maxSummaryColumns = 100

	headerRowIndex = 7 // row 8 on the sheet, holds "Hora" / "Monto"
	dataStartRow   = 8 // first data row for every section
)
