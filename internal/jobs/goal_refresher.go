package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"LealCafeBackOffice/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

type GoalRefresherConfig struct {
	Schedule string
	TimeZone string
}

// refreshGoalsSQL snapshots each active monthly goal's actual sales from the
// loaded hourly rows. The dashboards read the snapshot instead of re-summing on
// every page view.
const refreshGoalsSQL = `
	UPDATE "LealSilver".metas_mensuales m
	SET ventas_reales = COALESCE(v.total, 0),
	    fecha_modificacion = now()
	FROM (
		SELECT sucursal, anio, mes, SUM(monto) AS total
		FROM "LealSilver".ventas_por_hora
		GROUP BY sucursal, anio, mes
	) v
	WHERE m.activa = TRUE
	  AND m.sucursal = v.sucursal AND m.anio = v.anio AND m.mes = v.mes`

// RunGoalRefresher schedules the nightly goal-progress snapshot.
func RunGoalRefresher(cfg GoalRefresherConfig, db *pgxpool.Pool) error {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %v", cfg.TimeZone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Schedule, func() {
		if err := RefreshGoalProgress(context.Background(), db); err != nil {
			log.Printf("[ERROR] goal refresher run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule goal refresher: %v", err)
	}
	c.Start()
	return nil
}

// RefreshGoalProgress executes one snapshot pass.
func RefreshGoalProgress(ctx context.Context, db *pgxpool.Pool) error {
	tag, err := db.Exec(ctx, refreshGoalsSQL)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Goal refresher updated %d monthly goals", tag.RowsAffected())
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(msg)
	} else {
		log.Println(msg)
	}
	return nil
}
