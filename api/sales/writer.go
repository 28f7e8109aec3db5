package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// salesTx is the slice of pgx.Tx the writer needs. Narrowed so the all-or-nothing
// behavior can be exercised with a fake transaction.
type salesTx interface {
	rowQuerier
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// InsertDailySales persists the eight sections for one specific day. All eight
// tables are written in a single transaction; any failure rolls everything back.
// The duplicate check runs again inside the transaction, so two concurrent loads
// of the same day cannot both land.
func InsertDailySales(ctx context.Context, pool *pgxpool.Pool, data *SummaryData, p Period, createdBy string) (map[string]int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("iniciando transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	counts, err := writeDaily(ctx, tx, data, p, createdBy)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("confirmando transacción: %w", err)
	}
	return counts, nil
}

// InsertMonthlySales persists one month's aggregate figures apportioned across
// every day 1..p.TotalDays: integer quantities through DistributeQuantity (exact
// sum), money through DivideAmount (uniform division), percentages carried as-is.
// Each table's expanded rows go in through one bulk COPY, all inside a single
// transaction.
func InsertMonthlySales(ctx context.Context, pool *pgxpool.Pool, data *SummaryData, p Period, createdBy string) (map[string]int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("iniciando transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	counts, err := writeMonthly(ctx, tx, data, p, createdBy)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("confirmando transacción: %w", err)
	}
	return counts, nil
}

func writeDaily(ctx context.Context, tx salesTx, data *SummaryData, p Period, createdBy string) (map[string]int, error) {
	exists, err := ExistsForDay(ctx, tx, p.Branch, p.Year, p.Month, p.Day)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePeriod
	}

	counts := map[string]int{}
	for _, section := range dailySections(data, p, createdBy) {
		if len(section.rows) == 0 {
			continue
		}
		sql := insertStatement(section.table, section.cols)
		for _, row := range section.rows {
			if _, err := tx.Exec(ctx, sql, row...); err != nil {
				return nil, &WriteError{Table: section.table, Err: err}
			}
		}
		counts[section.table] = len(section.rows)
	}
	return counts, nil
}

func writeMonthly(ctx context.Context, tx salesTx, data *SummaryData, p Period, createdBy string) (map[string]int, error) {
	exists, err := ExistsForMonth(ctx, tx, p.Branch, p.Year, p.Month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePeriod
	}

	counts := map[string]int{}
	for _, section := range monthlySections(data, p, createdBy) {
		if len(section.rows) == 0 {
			continue
		}
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{SchemaName, section.table},
			section.cols,
			pgx.CopyFromRows(section.rows),
		)
		if err != nil {
			return nil, &WriteError{Table: section.table, Err: err}
		}
		counts[section.table] = int(n)
	}
	return counts, nil
}

func insertStatement(table string, cols []string) string {
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(`INSERT INTO %q.%s (%s) VALUES (%s)`,
		SchemaName, table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
}
