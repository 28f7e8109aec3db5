package sales

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// rowQuerier is the slice of pgx used by the duplicate guard. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so the same check runs as a pre-write gate and again
// inside the write transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ventas_por_hora is the representative table: every load writes it, so counting
// it answers "was anything loaded for this period" for all eight tables.
const (
	existsDayQuery = `SELECT COUNT(*) FROM "LealSilver".ventas_por_hora
		WHERE sucursal = $1 AND anio = $2 AND mes = $3 AND dia = $4`
	existsMonthQuery = `SELECT COUNT(*) FROM "LealSilver".ventas_por_hora
		WHERE sucursal = $1 AND anio = $2 AND mes = $3`
)

// ExistsForDay reports whether any data was already loaded for the exact
// (branch, year, month, day). Used as the duplicate gate in daily mode.
func ExistsForDay(ctx context.Context, db rowQuerier, branch string, year, month, day int) (bool, error) {
	var count int
	if err := db.QueryRow(ctx, existsDayQuery, branch, year, month, day).Scan(&count); err != nil {
		return false, fmt.Errorf("verificando existencia de día: %w", err)
	}
	return count > 0, nil
}

// ExistsForMonth reports whether any day of (branch, year, month) has data. A
// single loaded day blocks a whole-month load.
func ExistsForMonth(ctx context.Context, db rowQuerier, branch string, year, month int) (bool, error) {
	var count int
	if err := db.QueryRow(ctx, existsMonthQuery, branch, year, month).Scan(&count); err != nil {
		return false, fmt.Errorf("verificando existencia de mes: %w", err)
	}
	return count > 0, nil
}
