package sales

import (
	"errors"
	"fmt"
)

// Extraction failures. All three are terminal for the invocation: the caller must
// supply a corrected file, there is nothing to retry.
var (
	// ErrSummaryLoad: the workbook could not be opened or the named sheet is missing.
	ErrSummaryLoad = errors.New("no se pudo cargar el archivo de resumen de ventas")

	// ErrSummaryStructure: column count outside the expected band or the header row
	// is missing its "Hora" / "Monto" tokens. Usually the wrong report was uploaded.
	ErrSummaryStructure = errors.New("la estructura del archivo no corresponde al resumen de ventas")

	// ErrTotalNotFound: no "Ventas" anchor with a nearby numeric value was found.
	ErrTotalNotFound = errors.New("no se encontró el total de ventas en el archivo")
)

// ErrDuplicatePeriod trips when the duplicate guard finds rows already loaded for
// the target day or month. Overwriting goes through a separate CRUD flow, never
// through this pipeline.
var ErrDuplicatePeriod = errors.New("ya existen datos cargados para el periodo indicado")

// WriteError wraps the failure of any of the eight table writes. By the time the
// caller sees it the transaction has been rolled back and nothing was persisted.
type WriteError struct {
	Table string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error insertando en %s: %v", e.Table, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
