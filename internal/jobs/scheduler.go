package jobs

import (
	"fmt"
	"log"

	"LealCafeBackOffice/internal/config"
	"LealCafeBackOffice/internal/logger"
	"LealCafeBackOffice/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	refresher := GoalRefresherConfig{
		Schedule: config.DefaultGoalRefreshSchedule,
		TimeZone: config.DefaultTimeZone,
	}
	if s.config != nil {
		if schedule, ok := s.config["goal_refresh_schedule"].(string); ok && schedule != "" {
			refresher.Schedule = schedule
		}
		if tz, ok := s.config["timezone"].(string); ok && tz != "" {
			refresher.TimeZone = tz
		}
	}

	if err := RunGoalRefresher(refresher, s.db); err != nil {
		return fmt.Errorf("failed to start goal refresher: %v", err)
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Cron service started with goal refresher")
	}
	log.Println("Cron service started — goal refresher scheduled")
	return nil
}

func (s *CronService) Stop() error {
	log.Println("Cron service stopped.")
	return nil
}
