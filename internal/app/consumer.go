package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/control-room-cisa/server-planillero-sub000/internal/attendance"
	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
	"github.com/control-room-cisa/server-planillero-sub000/internal/employee"
	"github.com/control-room-cisa/server-planillero-sub000/internal/events"
	"github.com/control-room-cisa/server-planillero-sub000/internal/holiday"
	"github.com/control-room-cisa/server-planillero-sub000/internal/messaging/kafka"
	"github.com/control-room-cisa/server-planillero-sub000/internal/messaging/kafka/consumer"
	"github.com/control-room-cisa/server-planillero-sub000/internal/schedule"
	"github.com/control-room-cisa/server-planillero-sub000/internal/shared/connection"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	zone, cfg, err := engineSettings()
	if err != nil {
		return err
	}

	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	holidayService := holiday.NewService(sqlDB, holidayRepo, redisClient)

	deps := classify.Deps{
		Records:  attendance.NewSource(attendanceRepo, zone),
		Holidays: holiday.NewCalendar(holidayService),
		Config:   cfg,
	}
	scheduleService := schedule.NewService(sqlDB, employee.NewDirectory(employeeRepo), deps, outboxRepo, redisClient)

	attendanceReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.AttendanceUpsertedTopic,
		GroupID:        "planillero-schedule-cache",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer attendanceReader.Close()

	reportReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.RangeReportRequestedTopic,
		GroupID:        "planillero-range-report",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reportReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeAttendanceUpserted(ctx, attendanceReader, scheduleService, logger)
	go consumer.ConsumeRangeReportRequested(ctx, reportReader, scheduleService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
