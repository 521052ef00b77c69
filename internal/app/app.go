package app

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/control-room-cisa/server-planillero-sub000/internal/attendance"
	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
	"github.com/control-room-cisa/server-planillero-sub000/internal/employee"
	"github.com/control-room-cisa/server-planillero-sub000/internal/holiday"
	"github.com/control-room-cisa/server-planillero-sub000/internal/shared/connection"
)

// outboxTableDDL backs the raw-SQL outbox repository; the gorm entities
// migrate themselves.
const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
    id            uuid PRIMARY KEY,
    request_id    text,
    aggregate_type text NOT NULL,
    aggregate_id  text NOT NULL,
    event_type    text NOT NULL,
    topic         text NOT NULL,
    payload       jsonb NOT NULL,
    status        text NOT NULL DEFAULT 'pending',
    retry_count   int NOT NULL DEFAULT 0,
    last_error    text,
    next_retry_at timestamptz,
    sent_at       timestamptz,
    created_at    timestamptz NOT NULL DEFAULT now()
)`

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&holiday.Holiday{},
		&attendance.AttendanceRecord{},
		&attendance.Activity{},
	); err != nil {
		return err
	}
	if err := gormDB.Exec(outboxTableDDL).Error; err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	zone, cfg, err := engineSettings()
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient, zone, cfg)
}

// engineSettings reads the classification tunables from the environment.
// Attendance timestamps are stored in UTC and interpreted in TIME_ZONE.
func engineSettings() (*time.Location, classify.Config, error) {
	tz := os.Getenv("TIME_ZONE")
	if tz == "" {
		tz = "America/Tegucigalpa"
	}
	zone, err := time.LoadLocation(tz)
	if err != nil {
		return nil, classify.Config{}, err
	}

	cfg := classify.DefaultConfig()
	if v := os.Getenv("STREAK_LOOKBACK_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, classify.Config{}, err
		}
		cfg.LookbackDays = days
	}
	if v := os.Getenv("ROLLOVER_WEEKDAY"); v != "" {
		wd, err := strconv.Atoi(v)
		if err != nil || wd < 0 || wd > 6 {
			zap.L().Warn("invalid ROLLOVER_WEEKDAY, using default", zap.String("value", v))
		} else {
			cfg.RolloverWeekday = time.Weekday(wd)
		}
	}
	return zone, cfg, nil
}
