package constants

// ============================================================================
// UPLOAD & EXTRACTION ERRORS
// ============================================================================

const (
	ErrUnsupportedFileType = "Formato de archivo no permitido. Solo .xlsx o .xls"
	ErrEmptyFileName       = "Nombre de archivo vacío"
	ErrFileTooLarge        = "El archivo excede el tamaño máximo permitido (16 MB)"
)

// ============================================================================
// MONTHLY GOAL ERRORS
// ============================================================================

const (
	ErrGoalPeriodRequired = "Se requieren anio (2020-2100) y mes (1-12) válidos"
	ErrGoalAmountInvalid  = "El monto de la meta debe ser mayor a cero"
	ErrGoalCreateFailed   = "No se pudo crear la meta mensual"
)
